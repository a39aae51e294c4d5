package service

import (
	"sebbi-server/internal/domain"
	apperrors "sebbi-server/pkg/errors"
)

type DocumentService struct {
	users  domain.UserRepository
	docs   domain.DocumentRepository
	logger domain.Logger
}

func NewDocumentService(
	users domain.UserRepository,
	docs domain.DocumentRepository,
	logger domain.Logger,
) *DocumentService {
	return &DocumentService{
		users:  users,
		docs:   docs,
		logger: logger,
	}
}

func (s *DocumentService) resolveOwner(email string) (int64, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindInternal, "failed to look up user", err)
	}
	if user == nil {
		return 0, apperrors.NotFound("user not found")
	}
	return user.ID, nil
}

// Create inserts a new document for the user identified by email.
func (s *DocumentService) Create(content, email string) (*domain.Document, error) {
	ownerID, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.Insert(content, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInsertFailed, "failed to create document", err)
	}
	return doc, nil
}

// List returns all documents owned by the user identified by email.
func (s *DocumentService) List(email string) ([]*domain.Document, error) {
	ownerID, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}

	docs, err := s.docs.ListByOwner(ownerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list documents", err)
	}
	return docs, nil
}

// Get fetches a document by id and verifies the caller owns it.
func (s *DocumentService) Get(id int64, email string) (*domain.Document, error) {
	ownerID, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.GetByID(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get document", err)
	}
	if doc == nil {
		return nil, apperrors.NotFound("document not found")
	}
	if doc.OwnerID != ownerID {
		return nil, apperrors.Forbidden("you do not have permission to access this document")
	}
	return doc, nil
}

// Update re-validates existence and ownership, then replaces the content
// and refreshes the updated timestamp.
func (s *DocumentService) Update(id int64, content, email string) (*domain.Document, error) {
	if _, err := s.Get(id, email); err != nil {
		return nil, err
	}

	updated, err := s.docs.UpdateContent(id, content)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update document", err)
	}
	return updated, nil
}

// Delete re-validates existence and ownership, removes the document, and
// returns the pre-deletion snapshot.
func (s *DocumentService) Delete(id int64, email string) (*domain.Document, error) {
	doc, err := s.Get(id, email)
	if err != nil {
		return nil, err
	}

	if err := s.docs.Delete(id); err != nil {
		return nil, apperrors.Wrap(apperrors.KindDeleteFailed, "failed to delete document", err)
	}

	s.logger.Info("Document deleted", "id", id, "owner_id", doc.OwnerID)
	return doc, nil
}
