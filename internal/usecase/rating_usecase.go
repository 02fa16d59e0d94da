package usecase

import (
	"context"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/pkg/errors"
)

// RatingUseCase owns a product's rating list, its aggregate statistics
// and the current identity's own rating. Mutations patch local state and
// recompute the aggregates client-side instead of re-fetching. The own
// rating is kept out of the display list so it never renders twice.
type RatingUseCase struct {
	ratingRepo repository.RatingRepository
	session    *SessionUseCase
	validate   *validator.Validate

	mu        sync.RWMutex
	productID int
	ratings   []entity.Rating
	stats     entity.RatingStats
	ownRating *entity.Rating
	canRate   bool
	errMsg    string
}

func NewRatingUseCase(ratingRepo repository.RatingRepository, session *SessionUseCase) *RatingUseCase {
	return &RatingUseCase{
		ratingRepo: ratingRepo,
		session:    session,
		validate:   validator.New(),
	}
}

type RateInput struct {
	Score   int    `validate:"required,gte=1,lte=5"`
	Comment string `validate:"max=1000"`
}

// Load fetches the ratings, the aggregate stats and, when a session is
// active, whether the identity may rate and its existing rating. The two
// backend fetches run concurrently.
func (uc *RatingUseCase) Load(ctx context.Context, productID int) error {
	var (
		ratings     []entity.Rating
		stats       *entity.RatingStats
		eligibility *repository.RatingEligibility
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ratings, stats, err = uc.ratingRepo.List(gctx, productID)
		return err
	})
	if uc.session.Authenticated() {
		g.Go(func() error {
			var err error
			eligibility, err = uc.ratingRepo.Verify(gctx, productID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		uc.mu.Lock()
		uc.errMsg = errors.UserMessage(err)
		uc.mu.Unlock()
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.productID = productID
	uc.stats = *stats
	uc.errMsg = ""
	uc.canRate = false
	uc.ownRating = nil
	if eligibility != nil {
		uc.canRate = eligibility.CanRate
		uc.ownRating = eligibility.OwnRating
	}
	uc.ratings = excludeOwn(ratings, uc.ownRating)
	return nil
}

func excludeOwn(ratings []entity.Rating, own *entity.Rating) []entity.Rating {
	if own == nil {
		return ratings
	}
	kept := ratings[:0]
	for _, rating := range ratings {
		if rating.ID != own.ID {
			kept = append(kept, rating)
		}
	}
	return kept
}

func (uc *RatingUseCase) Create(ctx context.Context, input RateInput) error {
	if err := uc.validate.Struct(input); err != nil {
		return errors.BadRequest("La puntuación debe ser un entero entre 1 y 5", err)
	}
	if !uc.session.Authenticated() {
		return errors.Unauthorized("Inicia sesión para valorar", nil)
	}

	uc.mu.RLock()
	productID := uc.productID
	uc.mu.RUnlock()

	rating, err := uc.ratingRepo.Create(ctx, productID, input.Score, input.Comment)
	if err != nil {
		uc.setError(err)
		return err
	}

	uc.mu.Lock()
	uc.ownRating = rating
	uc.recomputeStats()
	uc.errMsg = ""
	uc.mu.Unlock()
	return nil
}

func (uc *RatingUseCase) Update(ctx context.Context, input RateInput) error {
	if err := uc.validate.Struct(input); err != nil {
		return errors.BadRequest("La puntuación debe ser un entero entre 1 y 5", err)
	}

	uc.mu.RLock()
	own := uc.ownRating
	uc.mu.RUnlock()
	if own == nil {
		return errors.BadRequest("No hay ninguna valoración que actualizar", nil)
	}

	rating, err := uc.ratingRepo.Update(ctx, own.ID, input.Score, input.Comment)
	if err != nil {
		uc.setError(err)
		return err
	}

	uc.mu.Lock()
	uc.ownRating = rating
	uc.recomputeStats()
	uc.errMsg = ""
	uc.mu.Unlock()
	return nil
}

func (uc *RatingUseCase) Delete(ctx context.Context) error {
	uc.mu.RLock()
	own := uc.ownRating
	uc.mu.RUnlock()
	if own == nil {
		return errors.BadRequest("No hay ninguna valoración que eliminar", nil)
	}

	if err := uc.ratingRepo.Delete(ctx, own.ID); err != nil {
		uc.setError(err)
		return err
	}

	uc.mu.Lock()
	uc.ownRating = nil
	uc.recomputeStats()
	uc.errMsg = ""
	uc.mu.Unlock()
	return nil
}

// recomputeStats derives the aggregates from local state: total is the
// count of ratings and the average is the mean score rounded to one
// decimal. Called with uc.mu held.
func (uc *RatingUseCase) recomputeStats() {
	total := len(uc.ratings)
	sum := 0
	for _, rating := range uc.ratings {
		sum += rating.Score
	}
	if uc.ownRating != nil {
		total++
		sum += uc.ownRating.Score
	}

	uc.stats.Total = total
	if total == 0 {
		uc.stats.Average = 0
		return
	}
	uc.stats.Average = math.Round(float64(sum)/float64(total)*10) / 10
}

func (uc *RatingUseCase) Ratings() []entity.Rating {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	list := make([]entity.Rating, len(uc.ratings))
	copy(list, uc.ratings)
	return list
}

func (uc *RatingUseCase) Stats() entity.RatingStats {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.stats
}

func (uc *RatingUseCase) OwnRating() *entity.Rating {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.ownRating == nil {
		return nil
	}
	own := *uc.ownRating
	return &own
}

func (uc *RatingUseCase) CanRate() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.canRate
}

func (uc *RatingUseCase) Error() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.errMsg
}

func (uc *RatingUseCase) setError(err error) {
	uc.mu.Lock()
	uc.errMsg = errors.UserMessage(err)
	uc.mu.Unlock()
}
