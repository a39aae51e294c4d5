package service

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"sebbi-server/internal/domain"
	apperrors "sebbi-server/pkg/errors"
)

const pdfMIMEType = "application/pdf"

const apaCitationPrompt = "Generate an APA 7th edition citation for the attached document. " +
	"Return only the citation itself, with no introduction, explanation, or formatting around it."

var storageFolderSanitizer = regexp.MustCompile(`[^A-Za-z0-9._-]`)

type PdfService struct {
	users     domain.UserRepository
	records   domain.PdfRepository
	storage   domain.ObjectStorage
	generator domain.TextGenerator
	fetcher   domain.Fetcher
	logger    domain.Logger
}

func NewPdfService(
	users domain.UserRepository,
	records domain.PdfRepository,
	storage domain.ObjectStorage,
	generator domain.TextGenerator,
	fetcher domain.Fetcher,
	logger domain.Logger,
) *PdfService {
	return &PdfService{
		users:     users,
		records:   records,
		storage:   storage,
		generator: generator,
		fetcher:   fetcher,
		logger:    logger,
	}
}

func (s *PdfService) resolveOwner(email string) (int64, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindInternal, "failed to look up user", err)
	}
	if user == nil {
		return 0, apperrors.NotFound("user not found")
	}
	return user.ID, nil
}

// storageFolderForEmail derives a per-user storage folder from the email's
// local part plus a short domain tag. Characters outside [A-Za-z0-9._-]
// are replaced with underscores.
func storageFolderForEmail(email string) string {
	local, domainPart, _ := strings.Cut(email, "@")
	tag, _, _ := strings.Cut(domainPart, ".")

	local = storageFolderSanitizer.ReplaceAllString(local, "_")
	tag = storageFolderSanitizer.ReplaceAllString(tag, "_")
	if local == "" {
		local = "user"
	}
	if tag == "" {
		return local
	}
	return local + "_" + tag
}

// Upload stores the file in the blob store and inserts the database record
// as a two-phase saga. If the insert fails, the just-uploaded object is
// removed best-effort so storage is never left orphaned without a cleanup
// attempt.
func (s *PdfService) Upload(ctx context.Context, file []byte, filename, contentType, email string) (*domain.PdfRecord, error) {
	ownerID, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = pdfMIMEType
	}
	path := storageFolderForEmail(email) + "/" + filename

	var record *domain.PdfRecord
	sg := newSaga("pdf-upload", s.logger)
	sg.add(sagaStep{
		name: "store-object",
		run: func() error {
			if err := s.storage.Upload(ctx, path, bytes.NewReader(file), contentType); err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "failed to store pdf", err)
			}
			return nil
		},
		compensate: func() error {
			return s.storage.Remove(ctx, path)
		},
	})
	sg.add(sagaStep{
		name: "insert-record",
		run: func() error {
			link := s.storage.PublicURL(path)
			rec, err := s.records.Insert(link, ownerID, path)
			if err != nil {
				return apperrors.Wrap(apperrors.KindInsertFailed, "failed to save pdf record", err)
			}
			record = rec
			return nil
		},
	})
	if err := sg.run(); err != nil {
		return nil, err
	}

	s.logger.Info("PDF uploaded", "id", record.ID, "path", path, "owner_id", ownerID)
	return record, nil
}

// List returns the caller's PDF records in store order.
func (s *PdfService) List(email string) ([]*domain.PdfRecord, error) {
	ownerID, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListByOwner(ownerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list pdf records", err)
	}
	return records, nil
}

// Get fetches a record by id with ownership enforced in the fetch
// predicate: a record owned by someone else reads as not found.
func (s *PdfService) Get(id int64, email string) (*domain.PdfRecord, error) {
	ownerID, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}

	record, err := s.records.GetByIDAndOwner(id, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get pdf record", err)
	}
	if record == nil {
		return nil, apperrors.NotFound("pdf not found")
	}
	return record, nil
}

// Delete removes the storage object first and the database row second.
// A storage deletion failure aborts the operation and leaves the row
// intact, so a live row never points at a silently vanished file. Records
// without a bucket path skip the storage phase with a logged caveat.
func (s *PdfService) Delete(ctx context.Context, id int64, email string) (*domain.PdfRecord, error) {
	ownerID, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}

	record, err := s.records.GetByID(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get pdf record", err)
	}
	if record == nil {
		return nil, apperrors.NotFound("pdf not found")
	}
	if record.OwnerID != ownerID {
		return nil, apperrors.Forbidden("you do not have permission to delete this pdf")
	}

	if record.BucketPath != nil && *record.BucketPath != "" {
		if err := s.storage.Remove(ctx, *record.BucketPath); err != nil {
			return nil, apperrors.Wrap(apperrors.KindStorageDeleteFailed, "failed to delete pdf from storage", err)
		}
	} else {
		s.logger.Warn("PDF record has no bucket path, skipping storage deletion", "id", id)
	}

	if err := s.records.DeleteByIDAndOwner(id, ownerID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindDeleteFailed, "failed to delete pdf record", err)
	}

	s.logger.Info("PDF deleted", "id", id, "owner_id", ownerID)
	return record, nil
}

// AskAboutPDF fetches the PDF behind the URL and answers the prompt
// grounded in its content.
func (s *PdfService) AskAboutPDF(ctx context.Context, pdfURL, prompt string) (string, error) {
	data, err := s.fetcher.Fetch(ctx, pdfURL)
	if err != nil {
		return "", err
	}

	return s.generator.Generate(ctx, []domain.GenerationPart{
		domain.BlobPart(data, pdfMIMEType),
		domain.TextPart(prompt),
	})
}

// CiteAPA fetches the PDF behind the URL and produces an APA-7 citation.
func (s *PdfService) CiteAPA(ctx context.Context, pdfURL string) (string, error) {
	data, err := s.fetcher.Fetch(ctx, pdfURL)
	if err != nil {
		return "", err
	}

	citation, err := s.generator.Generate(ctx, []domain.GenerationPart{
		domain.BlobPart(data, pdfMIMEType),
		domain.TextPart(apaCitationPrompt),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(citation), nil
}
