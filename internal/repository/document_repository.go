package repository

import (
	"encoding/json"
	"fmt"

	"sebbi-server/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseDocumentRepository implements the domain.DocumentRepository
// interface against the documents table.
type SupabaseDocumentRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseDocumentRepository creates a new Supabase document repository
func NewSupabaseDocumentRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.DocumentRepository {
	return &SupabaseDocumentRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Insert creates a document row with store-assigned timestamps.
func (r *SupabaseDocumentRepository) Insert(content string, ownerID int64) (*domain.Document, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"content":    content,
		"owner_id":   ownerID,
		"created_at": "now()",
		"updated_at": "now()",
	}

	resp, _, err := client.From("documents").Insert(data, false, "", "", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	var docs []domain.Document
	if err := json.Unmarshal(resp, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("insert returned no row")
	}

	r.logger.Info("Document created", "id", docs[0].ID, "owner_id", ownerID)
	return &docs[0], nil
}

// GetByID returns the document with the given id, or (nil, nil) when absent.
func (r *SupabaseDocumentRepository) GetByID(id int64) (*domain.Document, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("documents").
		Select("*", "", false).
		Eq("id", fmt.Sprint(id)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// ListByOwner returns all documents for an owner, oldest first.
func (r *SupabaseDocumentRepository) ListByOwner(ownerID int64) ([]*domain.Document, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("documents").
		Select("*", "", false).
		Eq("owner_id", fmt.Sprint(ownerID)).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}

	var docs []*domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return docs, nil
}

// UpdateContent replaces a document's content and refreshes updated_at.
func (r *SupabaseDocumentRepository) UpdateContent(id int64, content string) (*domain.Document, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"content":    content,
		"updated_at": "now()",
	}

	resp, _, err := client.From("documents").
		Update(data, "", "").
		Eq("id", fmt.Sprint(id)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	var docs []domain.Document
	if err := json.Unmarshal(resp, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("update returned no row")
	}
	return &docs[0], nil
}

// Delete removes a document row by id.
func (r *SupabaseDocumentRepository) Delete(id int64) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From("documents").
		Delete("", "").
		Eq("id", fmt.Sprint(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
