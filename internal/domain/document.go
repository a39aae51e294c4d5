package domain

// Document represents a text document owned by a user. Timestamps are kept
// as strings in the ISO 8601 form Supabase returns them.
type Document struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	OwnerID   int64  `json:"owner_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// DocumentRepository defines persistence operations for documents.
// Lookups return (nil, nil) when no row matches.
type DocumentRepository interface {
	Insert(content string, ownerID int64) (*Document, error)
	GetByID(id int64) (*Document, error)
	ListByOwner(ownerID int64) ([]*Document, error)
	UpdateContent(id int64, content string) (*Document, error)
	Delete(id int64) error
}

// DocumentService defines the use-case operations for documents. Every
// operation is scoped to the caller identified by email.
type DocumentService interface {
	Create(content, email string) (*Document, error)
	List(email string) ([]*Document, error)
	Get(id int64, email string) (*Document, error)
	Update(id int64, content, email string) (*Document, error)
	Delete(id int64, email string) (*Document, error)
}
