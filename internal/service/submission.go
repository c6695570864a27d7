package service

import (
	"context"
	"errors"
	"strings"

	"regapi/internal/model"
	"regapi/internal/repository"
	"regapi/internal/storage"
	"regapi/internal/validation"
)

// ErrNotFound is returned when no submission exists for the given id.
var ErrNotFound = errors.New("submission not found")

// ValidationError aggregates every failed field rule for a create or
// replace request. All rules are checked; nothing short-circuits.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// PatchInput carries the optional fields of a partial update. Only
// non-nil fields are applied. Patches are deliberately not validated:
// the endpoint trusts the caller with whatever subset it sends.
type PatchInput struct {
	FirstName *string           `json:"firstName"`
	LastName  *string           `json:"lastName"`
	Email     *string           `json:"email"`
	Phone     *string           `json:"phone"`
	Age       *model.FlexInt    `json:"age"`
	Country   *string           `json:"country"`
	Gender    *string           `json:"gender"`
	Interests *model.StringList `json:"interests"`
	Bio       *string           `json:"bio"`
}

// ListParams is the service-level query for the submissions collection.
// Page is 1-indexed.
type ListParams struct {
	Page   int
	Limit  int
	Filter repository.Filter
}

// ListResult is the service-level DTO for a paginated, filtered page of
// submissions. Total counts every record matching the filter, not just
// the returned page.
type ListResult struct {
	Items      []model.Submission
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// ExportResult describes a CSV snapshot written to object storage.
type ExportResult struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
	URL   string `json:"url,omitempty"`
}

// SubmissionService defines the use cases for handling registration
// submissions.
type SubmissionService interface {
	// Create validates the input and stores a new submission.
	// Returns *ValidationError when any field rule fails.
	Create(ctx context.Context, in validation.SubmissionInput) (*model.Submission, error)

	// Get returns a single submission by its id.
	Get(ctx context.Context, id int64) (*model.Submission, error)

	// List returns a filtered, paginated page of submissions.
	List(ctx context.Context, p ListParams) (*ListResult, error)

	// Replace revalidates the input and overwrites every mutable field
	// of an existing submission. Existence is checked before
	// validation, so an unknown id yields ErrNotFound even for an
	// invalid payload.
	Replace(ctx context.Context, id int64, in validation.SubmissionInput) (*model.Submission, error)

	// Patch merges the provided fields into an existing submission
	// without validating them.
	Patch(ctx context.Context, id int64, in PatchInput) (*model.Submission, error)

	// Delete removes a submission and returns the removed record.
	Delete(ctx context.Context, id int64) (*model.Submission, error)

	// BulkDelete removes every listed id that exists and returns how
	// many records were actually removed. Unknown ids are skipped.
	BulkDelete(ctx context.Context, ids []int64) (int, error)

	// Stats recomputes aggregate statistics over the full store.
	Stats(ctx context.Context) (*Stats, error)

	// Export writes a CSV snapshot of all submissions to object
	// storage. Returns ErrExportUnavailable when no storage backend is
	// configured.
	Export(ctx context.Context) (*ExportResult, error)
}

// submissionService is a concrete implementation of SubmissionService.
type submissionService struct {
	repo         repository.SubmissionRepository
	store        storage.Storage // nil when object storage is not configured
	exportPrefix string
}

// NewSubmissionService constructs a new SubmissionService. store may be
// nil; only the Export use case needs it.
func NewSubmissionService(repo repository.SubmissionRepository, store storage.Storage, exportPrefix string) SubmissionService {
	return &submissionService{repo: repo, store: store, exportPrefix: exportPrefix}
}

// normalize builds the canonical stored form of a validated input:
// trimmed names and phone, trimmed lower-cased email, parsed age,
// non-nil interests, trimmed bio.
func normalize(in validation.SubmissionInput) *model.Submission {
	return &model.Submission{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Age:       in.Age.Value,
		Country:   in.Country,
		Gender:    in.Gender,
		Interests: in.Interests.Slice(),
		Bio:       strings.TrimSpace(in.Bio),
	}
}

func (s *submissionService) Create(ctx context.Context, in validation.SubmissionInput) (*model.Submission, error) {
	if errs := validation.Validate(in); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return s.repo.Insert(ctx, normalize(in))
}

func (s *submissionService) Get(ctx context.Context, id int64) (*model.Submission, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *submissionService) List(ctx context.Context, p ListParams) (*ListResult, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}

	res, err := s.repo.List(ctx, p.Filter, repository.PageQuery{
		Limit:  p.Limit,
		Offset: (p.Page - 1) * p.Limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := res.Total / p.Limit
	if res.Total%p.Limit != 0 {
		totalPages++
	}

	return &ListResult{
		Items:      res.Items,
		Total:      res.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *submissionService) Replace(ctx context.Context, id int64, in validation.SubmissionInput) (*model.Submission, error) {
	// Existence first: an unknown id is reported as not found even
	// when the payload would also fail validation.
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if errs := validation.Validate(in); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	sub := normalize(in)
	sub.ID = id
	updated, err := s.repo.Update(ctx, sub)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *submissionService) Patch(ctx context.Context, id int64, in PatchInput) (*model.Submission, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Provided fields are applied verbatim: no validation, no trimming,
	// no lower-casing. A non-numeric age cannot live in the typed model
	// and decodes to zero, but the patch still succeeds.
	merged := *current
	if in.FirstName != nil {
		merged.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		merged.LastName = *in.LastName
	}
	if in.Email != nil {
		merged.Email = *in.Email
	}
	if in.Phone != nil {
		merged.Phone = *in.Phone
	}
	if in.Age != nil {
		merged.Age = in.Age.Value
	}
	if in.Country != nil {
		merged.Country = *in.Country
	}
	if in.Gender != nil {
		merged.Gender = *in.Gender
	}
	if in.Interests != nil {
		merged.Interests = in.Interests.Slice()
	}
	if in.Bio != nil {
		merged.Bio = *in.Bio
	}

	updated, err := s.repo.Update(ctx, &merged)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *submissionService) Delete(ctx context.Context, id int64) (*model.Submission, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return removed, nil
}

func (s *submissionService) BulkDelete(ctx context.Context, ids []int64) (int, error) {
	count := 0
	for _, id := range ids {
		if _, err := s.repo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *submissionService) Stats(ctx context.Context) (*Stats, error) {
	subs, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(subs), nil
}
