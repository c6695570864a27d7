package service

import (
	"context"
	"errors"
	"testing"

	"regapi/internal/model"
	"regapi/internal/repository"
	repoMocks "regapi/internal/repository/mocks"
	"regapi/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validSubmissionInput() validation.SubmissionInput {
	return validation.SubmissionInput{
		FirstName: "  John ",
		LastName:  "Doe",
		Email:     "John.Doe@Example.com",
		Phone:     "+1 555 123 4567",
		Age:       model.FlexInt{Value: 30, Valid: true, Present: true},
		Country:   "USA",
		Gender:    "male",
		Bio:       " hello ",
	}
}

func TestSubmissionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and stores valid input", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		mRepo.On("Insert", ctx, mock.MatchedBy(func(sub *model.Submission) bool {
			return sub.FirstName == "John" &&
				sub.Email == "john.doe@example.com" &&
				sub.Age == 30 &&
				sub.Interests != nil &&
				sub.Bio == "hello"
		})).Return(&model.Submission{ID: 1, FirstName: "John"}, nil)

		created, err := svc.Create(ctx, validSubmissionInput())

		assert.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("returns every failed rule and never touches the store", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		in := validSubmissionInput()
		in.FirstName = "J"
		in.Email = "not-an-email"

		created, err := svc.Create(ctx, in)

		assert.Nil(t, created)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{
			"First name must be at least 2 characters",
			"Invalid email address",
		}, verr.Errors)
		mRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestSubmissionService_Get(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockSubmissionRepository)
	svc := NewSubmissionService(mRepo, nil, "")

	mRepo.On("FindByID", ctx, int64(1)).Return(&model.Submission{ID: 1}, nil)
	mRepo.On("FindByID", ctx, int64(99)).Return(nil, repository.ErrNotFound)

	sub, err := svc.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), sub.ID)

	sub, err = svc.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, sub)
}

func TestSubmissionService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults and computes total pages", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		mRepo.On("List", ctx, repository.Filter{}, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Submission]{Items: make([]model.Submission, 10), Total: 25}, nil)

		res, err := svc.List(ctx, ListParams{})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 10, res.Limit)
		assert.Equal(t, 25, res.Total)
		assert.Equal(t, 3, res.TotalPages)
	})

	t.Run("translates page to offset", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		filter := repository.Filter{Country: "USA"}
		mRepo.On("List", ctx, filter, repository.PageQuery{Limit: 5, Offset: 10}).
			Return(&repository.PageResult[model.Submission]{Items: []model.Submission{}, Total: 11}, nil)

		res, err := svc.List(ctx, ListParams{Page: 3, Limit: 5, Filter: filter})

		assert.NoError(t, err)
		assert.Equal(t, 3, res.Page)
		assert.Equal(t, 3, res.TotalPages)
		mRepo.AssertExpectations(t)
	})
}

func TestSubmissionService_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id is not found even with an invalid payload", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		mRepo.On("FindByID", ctx, int64(99)).Return(nil, repository.ErrNotFound)

		updated, err := svc.Replace(ctx, 99, validation.SubmissionInput{})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, updated)
	})

	t.Run("existing id with invalid payload fails validation", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		mRepo.On("FindByID", ctx, int64(1)).Return(&model.Submission{ID: 1}, nil)

		updated, err := svc.Replace(ctx, 1, validation.SubmissionInput{})

		assert.Nil(t, updated)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("overwrites every mutable field", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		mRepo.On("FindByID", ctx, int64(1)).Return(&model.Submission{ID: 1, FirstName: "Old"}, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(sub *model.Submission) bool {
			return sub.ID == 1 && sub.FirstName == "John"
		})).Return(&model.Submission{ID: 1, FirstName: "John"}, nil)

		updated, err := svc.Replace(ctx, 1, validSubmissionInput())

		assert.NoError(t, err)
		assert.Equal(t, "John", updated.FirstName)
		mRepo.AssertExpectations(t)
	})
}

func TestSubmissionService_Patch(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("merges only the provided fields, verbatim", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		current := &model.Submission{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@example.com", Age: 30}
		mRepo.On("FindByID", ctx, int64(1)).Return(current, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(sub *model.Submission) bool {
			return sub.ID == 1 &&
				sub.FirstName == "  J  " && // no trimming on patch
				sub.LastName == "Doe" &&
				sub.Email == "john@example.com"
		})).Return(&model.Submission{ID: 1, FirstName: "  J  "}, nil)

		updated, err := svc.Patch(ctx, 1, PatchInput{FirstName: strPtr("  J  ")})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), updated.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("non-numeric age patches through as zero", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		age := model.FlexIntFromString("abc")
		mRepo.On("FindByID", ctx, int64(1)).Return(&model.Submission{ID: 1, Age: 30}, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(sub *model.Submission) bool {
			return sub.Age == 0
		})).Return(&model.Submission{ID: 1, Age: 0}, nil)

		updated, err := svc.Patch(ctx, 1, PatchInput{Age: &age})

		assert.NoError(t, err)
		assert.Equal(t, 0, updated.Age)
	})

	t.Run("unknown id", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		mRepo.On("FindByID", ctx, int64(99)).Return(nil, repository.ErrNotFound)

		updated, err := svc.Patch(ctx, 99, PatchInput{})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, updated)
	})
}

func TestSubmissionService_Delete(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockSubmissionRepository)
	svc := NewSubmissionService(mRepo, nil, "")

	mRepo.On("Delete", ctx, int64(1)).Return(&model.Submission{ID: 1}, nil)
	mRepo.On("Delete", ctx, int64(99)).Return(nil, repository.ErrNotFound)

	removed, err := svc.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed.ID)

	removed, err = svc.Delete(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, removed)
}

func TestSubmissionService_BulkDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("skips unknown ids and counts the rest", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		mRepo.On("Delete", ctx, int64(1)).Return(&model.Submission{ID: 1}, nil)
		mRepo.On("Delete", ctx, int64(2)).Return(nil, repository.ErrNotFound)
		mRepo.On("Delete", ctx, int64(3)).Return(&model.Submission{ID: 3}, nil)

		count, err := svc.BulkDelete(ctx, []int64{1, 2, 3})

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("stops on a store failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		svc := NewSubmissionService(mRepo, nil, "")

		mRepo.On("Delete", ctx, int64(1)).Return(&model.Submission{ID: 1}, nil)
		mRepo.On("Delete", ctx, int64(2)).Return(nil, errors.New("store down"))

		count, err := svc.BulkDelete(ctx, []int64{1, 2, 3})

		assert.Error(t, err)
		assert.Equal(t, 1, count)
		mRepo.AssertNotCalled(t, "Delete", ctx, int64(3))
	})
}

func TestSubmissionService_Stats(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockSubmissionRepository)
	svc := NewSubmissionService(mRepo, nil, "")

	mRepo.On("All", ctx).Return([]model.Submission{
		{Country: "USA", Gender: "male", Age: 22},
		{Country: "usa", Gender: "male", Age: 35},
		{Country: "UK", Gender: "female", Age: 61},
	}, nil)

	stats, err := svc.Stats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	// Stored values are counted verbatim: "USA" and "usa" stay separate keys
	assert.Equal(t, map[string]int{"USA": 1, "usa": 1, "UK": 1}, stats.ByCountry)
	assert.Equal(t, map[string]int{"male": 2, "female": 1}, stats.ByGender)
	assert.Equal(t, 39.3, stats.AverageAge)
	assert.Equal(t, map[string]int{"18-25": 1, "26-35": 1, "36-50": 0, "51+": 1}, stats.AgeDistribution)
}

func TestAggregate(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		stats := Aggregate(nil)

		assert.Equal(t, 0, stats.Total)
		assert.Equal(t, float64(0), stats.AverageAge)
		assert.Empty(t, stats.ByCountry)
		// All buckets are present even with no data
		assert.Equal(t, map[string]int{"18-25": 0, "26-35": 0, "36-50": 0, "51+": 0}, stats.AgeDistribution)
	})

	t.Run("bucket boundaries", func(t *testing.T) {
		stats := Aggregate([]model.Submission{
			{Age: 18}, {Age: 25}, {Age: 26}, {Age: 35}, {Age: 36}, {Age: 50}, {Age: 51}, {Age: 120},
		})

		assert.Equal(t, map[string]int{"18-25": 2, "26-35": 2, "36-50": 2, "51+": 2}, stats.AgeDistribution)
	})

	t.Run("ages outside the explicit ranges land in the last bucket", func(t *testing.T) {
		stats := Aggregate([]model.Submission{{Age: 0}, {Age: 17}})

		assert.Equal(t, 2, stats.AgeDistribution["51+"])
	})

	t.Run("average is rounded to one decimal", func(t *testing.T) {
		stats := Aggregate([]model.Submission{{Age: 20}, {Age: 21}, {Age: 21}})

		assert.Equal(t, 20.7, stats.AverageAge)
	})
}
