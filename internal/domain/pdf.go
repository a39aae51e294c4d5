package domain

import "context"

// PdfRecord is the database row for an uploaded PDF. Link is the public
// storage URL; BucketPath is the internal storage key. BucketPath is nil
// for legacy rows created before paths were recorded.
type PdfRecord struct {
	ID         int64   `json:"id"`
	Link       string  `json:"link"`
	OwnerID    int64   `json:"owner_id"`
	BucketPath *string `json:"bucket_path,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// PdfRepository defines persistence operations for PDF records.
// Lookups return (nil, nil) when no row matches.
type PdfRepository interface {
	Insert(link string, ownerID int64, bucketPath string) (*PdfRecord, error)
	ListByOwner(ownerID int64) ([]*PdfRecord, error)
	GetByID(id int64) (*PdfRecord, error)
	GetByIDAndOwner(id, ownerID int64) (*PdfRecord, error)
	DeleteByIDAndOwner(id, ownerID int64) error
}

// PDFService defines PDF storage and AI operations. Record operations are
// scoped to the caller identified by email.
type PDFService interface {
	Upload(ctx context.Context, file []byte, filename, contentType, email string) (*PdfRecord, error)
	List(email string) ([]*PdfRecord, error)
	Get(id int64, email string) (*PdfRecord, error)
	Delete(ctx context.Context, id int64, email string) (*PdfRecord, error)
	AskAboutPDF(ctx context.Context, pdfURL, prompt string) (string, error)
	CiteAPA(ctx context.Context, pdfURL string) (string, error)
}
