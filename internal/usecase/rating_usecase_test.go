package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
)

func TestLoadExcludesOwnRatingFromDisplayList(t *testing.T) {
	repo := &fakeRatingRepo{
		ratings: []entity.Rating{
			{ID: 1, Score: 5, UserName: "Mar"},
			{ID: 2, Score: 3, UserName: "Ana"},
		},
		stats:       entity.RatingStats{Total: 2, Average: 4.0},
		eligibility: repository.RatingEligibility{CanRate: true, OwnRating: &entity.Rating{ID: 2, Score: 3}},
	}
	ratings := NewRatingUseCase(repo, loggedInSession(t))

	require.NoError(t, ratings.Load(context.Background(), 42))

	require.Len(t, ratings.Ratings(), 1)
	assert.Equal(t, 1, ratings.Ratings()[0].ID)
	require.NotNil(t, ratings.OwnRating())
	assert.Equal(t, 2, ratings.OwnRating().ID)
	assert.True(t, ratings.CanRate())
}

func TestCreateUpdateDeleteKeepsStatsConsistent(t *testing.T) {
	repo := &fakeRatingRepo{
		ratings: []entity.Rating{
			{ID: 1, Score: 4},
			{ID: 2, Score: 2},
		},
		stats:       entity.RatingStats{Total: 2, Average: 3.0},
		eligibility: repository.RatingEligibility{CanRate: true},
	}
	ratings := NewRatingUseCase(repo, loggedInSession(t))
	require.NoError(t, ratings.Load(context.Background(), 42))

	// Create: scores 4, 2, 5 -> total 3, mean 3.7.
	require.NoError(t, ratings.Create(context.Background(), RateInput{Score: 5, Comment: "genial"}))
	assert.Equal(t, 3, ratings.Stats().Total)
	assert.InDelta(t, 3.7, ratings.Stats().Average, 0.001)

	// Update: scores 4, 2, 1 -> total 3, mean 2.3.
	require.NoError(t, ratings.Update(context.Background(), RateInput{Score: 1, Comment: "se rompió"}))
	assert.Equal(t, 3, ratings.Stats().Total)
	assert.InDelta(t, 2.3, ratings.Stats().Average, 0.001)

	// Delete: scores 4, 2 -> total 2, mean 3.0.
	require.NoError(t, ratings.Delete(context.Background()))
	assert.Equal(t, 2, ratings.Stats().Total)
	assert.InDelta(t, 3.0, ratings.Stats().Average, 0.001)
	assert.Nil(t, ratings.OwnRating())
}

func TestDeleteLastRatingZeroesStats(t *testing.T) {
	repo := &fakeRatingRepo{
		eligibility: repository.RatingEligibility{CanRate: true, OwnRating: &entity.Rating{ID: 1, Score: 5}},
		stats:       entity.RatingStats{Total: 1, Average: 5.0},
		ratings:     []entity.Rating{{ID: 1, Score: 5}},
	}
	ratings := NewRatingUseCase(repo, loggedInSession(t))
	require.NoError(t, ratings.Load(context.Background(), 7))

	require.NoError(t, ratings.Delete(context.Background()))

	assert.Zero(t, ratings.Stats().Total)
	assert.Zero(t, ratings.Stats().Average)
}

func TestCreateRejectsOutOfRangeScore(t *testing.T) {
	ratings := NewRatingUseCase(&fakeRatingRepo{}, loggedInSession(t))

	assert.Error(t, ratings.Create(context.Background(), RateInput{Score: 0}))
	assert.Error(t, ratings.Create(context.Background(), RateInput{Score: 6}))
}

func TestUpdateWithoutOwnRatingFails(t *testing.T) {
	ratings := NewRatingUseCase(&fakeRatingRepo{}, loggedInSession(t))

	assert.Error(t, ratings.Update(context.Background(), RateInput{Score: 3}))
	assert.Error(t, ratings.Delete(context.Background()))
}

func TestLoadWithoutSessionSkipsEligibility(t *testing.T) {
	session := NewSessionUseCase(&fakeAuthRepo{}, newStorage(t))
	repo := &fakeRatingRepo{
		ratings: []entity.Rating{{ID: 1, Score: 4}},
		stats:   entity.RatingStats{Total: 1, Average: 4.0},
	}
	ratings := NewRatingUseCase(repo, session)

	require.NoError(t, ratings.Load(context.Background(), 42))

	assert.False(t, ratings.CanRate())
	assert.Nil(t, ratings.OwnRating())
	assert.Len(t, ratings.Ratings(), 1)
}
