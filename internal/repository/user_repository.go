package repository

import (
	"encoding/json"
	"fmt"

	"sebbi-server/internal/domain"
)

// SupabaseUserRepository implements the domain.UserRepository interface
// against the users table.
type SupabaseUserRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseUserRepository creates a new Supabase user repository
func NewSupabaseUserRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.UserRepository {
	return &SupabaseUserRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// GetByEmail returns the user row for an email, or (nil, nil) when absent.
// Email matching is case-sensitive, as stored.
func (r *SupabaseUserRepository) GetByEmail(email string) (*domain.UserRecord, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("users").
		Select("*", "", false).
		Eq("email", email).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var users []domain.UserRecord
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// Create inserts a new user row. The created_at timestamp is assigned by
// the store.
func (r *SupabaseUserRepository) Create(name, email, hashedPassword string) (*domain.UserRecord, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"name":       name,
		"email":      email,
		"password":   hashedPassword,
		"created_at": "now()",
	}

	resp, _, err := client.From("users").Insert(data, false, "", "", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	var users []domain.UserRecord
	if err := json.Unmarshal(resp, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("insert returned no row")
	}

	r.logger.Info("User created", "user_id", users[0].ID, "email", email)
	return &users[0], nil
}
