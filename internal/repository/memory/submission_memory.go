package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"regapi/internal/model"
	"regapi/internal/repository"
)

// SubmissionMemory is an in-memory implementation of
// repository.SubmissionRepository. Records live in an insertion-ordered
// slice guarded by an RWMutex; ids come from a counter that only ever
// increments, so deleted ids are never reused. All state is lost on
// restart.
type SubmissionMemory struct {
	mu     sync.RWMutex
	subs   []model.Submission
	nextID int64
}

// NewSubmissionMemory creates an empty in-memory submission store.
func NewSubmissionMemory() *SubmissionMemory {
	return &SubmissionMemory{nextID: 1}
}

var _ repository.SubmissionRepository = (*SubmissionMemory)(nil)

func (r *SubmissionMemory) Insert(_ context.Context, sub *model.Submission) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *sub
	stored.ID = r.nextID
	r.nextID++
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Interests == nil {
		stored.Interests = []string{}
	}

	r.subs = append(r.subs, stored)
	out := stored
	return &out, nil
}

func (r *SubmissionMemory) FindByID(_ context.Context, id int64) (*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.subs {
		if r.subs[i].ID == id {
			out := r.subs[i]
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SubmissionMemory) Update(_ context.Context, sub *model.Submission) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.subs {
		if r.subs[i].ID == sub.ID {
			stored := *sub
			stored.CreatedAt = r.subs[i].CreatedAt
			stored.UpdatedAt = time.Now().UTC()
			if stored.Interests == nil {
				stored.Interests = []string{}
			}
			r.subs[i] = stored
			out := stored
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SubmissionMemory) Delete(_ context.Context, id int64) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.subs {
		if r.subs[i].ID == id {
			removed := r.subs[i]
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return &removed, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SubmissionMemory) List(_ context.Context, f repository.Filter, pq repository.PageQuery) (*repository.PageResult[model.Submission], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]model.Submission, 0, len(r.subs))
	for _, sub := range r.subs {
		if matches(sub, f) {
			filtered = append(filtered, sub)
		}
	}

	return &repository.PageResult[model.Submission]{
		Items: page(filtered, pq),
		Total: len(filtered),
	}, nil
}

func (r *SubmissionMemory) All(_ context.Context) ([]model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Submission, len(r.subs))
	copy(out, r.subs)
	return out, nil
}

// matches applies every set filter; filters combine with AND.
func matches(sub model.Submission, f repository.Filter) bool {
	if f.Country != "" && !strings.EqualFold(sub.Country, f.Country) {
		return false
	}
	if f.Gender != "" && !strings.EqualFold(sub.Gender, f.Gender) {
		return false
	}
	if f.MinAge != nil && sub.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && sub.Age > *f.MaxAge {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(sub.FirstName), needle) &&
			!strings.Contains(strings.ToLower(sub.LastName), needle) &&
			!strings.Contains(strings.ToLower(sub.Email), needle) {
			return false
		}
	}
	return true
}

// page slices [offset, offset+limit) out of filtered; a window past the
// end yields an empty page rather than an error.
func page(filtered []model.Submission, pq repository.PageQuery) []model.Submission {
	start := pq.Offset
	if start < 0 {
		start = 0
	}
	if start >= len(filtered) {
		return []model.Submission{}
	}
	end := len(filtered)
	if pq.Limit > 0 && start+pq.Limit < end {
		end = start + pq.Limit
	}
	out := make([]model.Submission, end-start)
	copy(out, filtered[start:end])
	return out
}
