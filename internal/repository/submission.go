package repository

import (
	"context"
	"errors"

	"regapi/internal/model"
)

// ErrNotFound is returned by implementations when no submission exists
// for the given id.
var ErrNotFound = errors.New("submission not found")

// SubmissionRepository defines data access for submissions.
// No business logic here — strictly storage operations. Implementations
// live in subpackages (memory, postgres) inside this directory.
type SubmissionRepository interface {
	// Insert stores a new submission. The implementation assigns the
	// next id (monotonic from 1, never reused after deletion) and
	// stamps CreatedAt/UpdatedAt. Returns the stored record.
	Insert(ctx context.Context, sub *model.Submission) (*model.Submission, error)

	// FindByID returns a submission by its id.
	FindByID(ctx context.Context, id int64) (*model.Submission, error)

	// Update overwrites the stored record carrying sub.ID with sub's
	// mutable fields and refreshes UpdatedAt. CreatedAt and ID are
	// preserved. Returns the stored record.
	Update(ctx context.Context, sub *model.Submission) (*model.Submission, error)

	// Delete removes a submission by id and returns the removed record.
	Delete(ctx context.Context, id int64) (*model.Submission, error)

	// List returns a filtered, paginated page of submissions in
	// insertion order plus the total count matching the filter.
	List(ctx context.Context, f Filter, pq PageQuery) (*PageResult[model.Submission], error)

	// All returns every submission in insertion order.
	All(ctx context.Context) ([]model.Submission, error)
}

// Filter holds the optional list filters; zero values mean "no filter".
// All set filters combine with logical AND.
type Filter struct {
	// Country and Gender are case-insensitive exact matches.
	Country string
	Gender  string
	// MinAge and MaxAge are inclusive bounds.
	MinAge *int
	MaxAge *int
	// Search is a case-insensitive substring match against first name,
	// last name, or email.
	Search string
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
