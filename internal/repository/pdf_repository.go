package repository

import (
	"encoding/json"
	"fmt"

	"sebbi-server/internal/domain"
)

// SupabasePdfRepository implements the domain.PdfRepository interface
// against the pdf_documents table.
type SupabasePdfRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabasePdfRepository creates a new Supabase PDF repository
func NewSupabasePdfRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.PdfRepository {
	return &SupabasePdfRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Insert creates a PDF record and returns the confirmed row.
func (r *SupabasePdfRepository) Insert(link string, ownerID int64, bucketPath string) (*domain.PdfRecord, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"link":        link,
		"owner_id":    ownerID,
		"bucket_path": bucketPath,
		"created_at":  "now()",
	}

	resp, _, err := client.From("pdf_documents").Insert(data, false, "", "", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf record: %w", err)
	}

	var records []domain.PdfRecord
	if err := json.Unmarshal(resp, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("insert returned no row")
	}

	r.logger.Info("PDF record created", "id", records[0].ID, "owner_id", ownerID)
	return &records[0], nil
}

// ListByOwner returns all PDF records for an owner in store order.
func (r *SupabasePdfRepository) ListByOwner(ownerID int64) ([]*domain.PdfRecord, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("pdf_documents").
		Select("*", "", false).
		Eq("owner_id", fmt.Sprint(ownerID)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get pdf records: %w", err)
	}

	var records []*domain.PdfRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return records, nil
}

// GetByID returns the record with the given id regardless of owner, or
// (nil, nil) when absent.
func (r *SupabasePdfRepository) GetByID(id int64) (*domain.PdfRecord, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("pdf_documents").
		Select("*", "", false).
		Eq("id", fmt.Sprint(id)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get pdf record: %w", err)
	}

	return firstRecord(data)
}

// GetByIDAndOwner returns the record matching both id and owner, or
// (nil, nil) when absent. Ownership is part of the fetch predicate.
func (r *SupabasePdfRepository) GetByIDAndOwner(id, ownerID int64) (*domain.PdfRecord, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("pdf_documents").
		Select("*", "", false).
		Eq("id", fmt.Sprint(id)).
		Eq("owner_id", fmt.Sprint(ownerID)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get pdf record: %w", err)
	}

	return firstRecord(data)
}

// DeleteByIDAndOwner removes the record matching both id and owner.
func (r *SupabasePdfRepository) DeleteByIDAndOwner(id, ownerID int64) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From("pdf_documents").
		Delete("", "").
		Eq("id", fmt.Sprint(id)).
		Eq("owner_id", fmt.Sprint(ownerID)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete pdf record: %w", err)
	}
	return nil
}

func firstRecord(data []byte) (*domain.PdfRecord, error) {
	var records []domain.PdfRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}
