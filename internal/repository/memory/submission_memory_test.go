package memory

import (
	"context"
	"fmt"
	"testing"

	"regapi/internal/model"
	"regapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, r *SubmissionMemory, subs ...model.Submission) []model.Submission {
	t.Helper()
	out := make([]model.Submission, 0, len(subs))
	for i := range subs {
		stored, err := r.Insert(context.Background(), &subs[i])
		require.NoError(t, err)
		out = append(out, *stored)
	}
	return out
}

func TestSubmissionMemory_InsertAssignsMonotonicIDs(t *testing.T) {
	r := NewSubmissionMemory()
	ctx := context.Background()

	first, err := r.Insert(ctx, &model.Submission{FirstName: "Ann"})
	require.NoError(t, err)
	second, err := r.Insert(ctx, &model.Submission{FirstName: "Bob"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.NotNil(t, first.Interests)
}

func TestSubmissionMemory_IDsNeverReused(t *testing.T) {
	r := NewSubmissionMemory()
	ctx := context.Background()

	seed(t, r, model.Submission{}, model.Submission{})

	_, err := r.Delete(ctx, 2)
	require.NoError(t, err)

	third, err := r.Insert(ctx, &model.Submission{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID)
}

func TestSubmissionMemory_FindByID(t *testing.T) {
	r := NewSubmissionMemory()
	stored := seed(t, r, model.Submission{FirstName: "Ann"})[0]

	found, err := r.FindByID(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, *found)

	_, err = r.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmissionMemory_Update(t *testing.T) {
	r := NewSubmissionMemory()
	ctx := context.Background()
	stored := seed(t, r, model.Submission{FirstName: "Ann", Age: 30})[0]

	updated, err := r.Update(ctx, &model.Submission{ID: stored.ID, FirstName: "Anna", Age: 31})
	require.NoError(t, err)

	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, stored.CreatedAt, updated.CreatedAt, "CreatedAt is preserved")
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	_, err = r.Update(ctx, &model.Submission{ID: 99})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmissionMemory_DeleteReturnsRemoved(t *testing.T) {
	r := NewSubmissionMemory()
	ctx := context.Background()
	stored := seed(t, r, model.Submission{FirstName: "Ann"})[0]

	removed, err := r.Delete(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, *removed)

	// Repeating the delete is a clean not-found, not a crash
	_, err = r.Delete(ctx, stored.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testRecords() []model.Submission {
	return []model.Submission{
		{FirstName: "John", LastName: "Smith", Email: "john.smith@example.com", Age: 22, Country: "USA", Gender: "male"},
		{FirstName: "Mary", LastName: "Johnson", Email: "mary@example.com", Age: 34, Country: "UK", Gender: "female"},
		{FirstName: "Johnny", LastName: "Walker", Email: "jw@example.com", Age: 45, Country: "usa", Gender: "male"},
		{FirstName: "Alice", LastName: "Brown", Email: "alice@example.com", Age: 61, Country: "Canada", Gender: "female"},
	}
}

func TestSubmissionMemory_ListFilters(t *testing.T) {
	r := NewSubmissionMemory()
	seed(t, r, testRecords()...)
	ctx := context.Background()

	intPtr := func(n int) *int { return &n }

	tests := []struct {
		name       string
		filter     repository.Filter
		wantEmails []string
	}{
		{
			name:       "no filter returns everything in insertion order",
			filter:     repository.Filter{},
			wantEmails: []string{"john.smith@example.com", "mary@example.com", "jw@example.com", "alice@example.com"},
		},
		{
			name:       "country is case-insensitive exact match",
			filter:     repository.Filter{Country: "USA"},
			wantEmails: []string{"john.smith@example.com", "jw@example.com"},
		},
		{
			name:       "gender filter",
			filter:     repository.Filter{Gender: "FEMALE"},
			wantEmails: []string{"mary@example.com", "alice@example.com"},
		},
		{
			name:       "age bounds are inclusive",
			filter:     repository.Filter{MinAge: intPtr(34), MaxAge: intPtr(45)},
			wantEmails: []string{"mary@example.com", "jw@example.com"},
		},
		{
			name:       "search matches first name, last name, or email",
			filter:     repository.Filter{Search: "john"},
			wantEmails: []string{"john.smith@example.com", "mary@example.com", "jw@example.com"},
		},
		{
			name:       "filters combine with AND",
			filter:     repository.Filter{Country: "usa", Search: "john"},
			wantEmails: []string{"john.smith@example.com", "jw@example.com"},
		},
		{
			name:       "no match",
			filter:     repository.Filter{Country: "France"},
			wantEmails: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.List(ctx, tt.filter, repository.PageQuery{Limit: 10})
			require.NoError(t, err)

			emails := make([]string, 0, len(res.Items))
			for _, sub := range res.Items {
				emails = append(emails, sub.Email)
			}
			assert.Equal(t, tt.wantEmails, emails)
			assert.Equal(t, len(tt.wantEmails), res.Total)
		})
	}
}

func TestSubmissionMemory_ListPagination(t *testing.T) {
	r := NewSubmissionMemory()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		seed(t, r, model.Submission{Email: fmt.Sprintf("u%d@example.com", i)})
	}

	t.Run("pages concatenate to the full filtered set", func(t *testing.T) {
		var all []string
		for offset := 0; offset < 5; offset += 2 {
			res, err := r.List(ctx, repository.Filter{}, repository.PageQuery{Limit: 2, Offset: offset})
			require.NoError(t, err)
			assert.Equal(t, 5, res.Total)
			for _, sub := range res.Items {
				all = append(all, sub.Email)
			}
		}
		assert.Equal(t, []string{"u0@example.com", "u1@example.com", "u2@example.com", "u3@example.com", "u4@example.com"}, all)
	})

	t.Run("offset past the end yields an empty page", func(t *testing.T) {
		res, err := r.List(ctx, repository.Filter{}, repository.PageQuery{Limit: 2, Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.Equal(t, 5, res.Total)
	})
}

func TestSubmissionMemory_All(t *testing.T) {
	r := NewSubmissionMemory()
	stored := seed(t, r, testRecords()...)

	all, err := r.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, all)
}
