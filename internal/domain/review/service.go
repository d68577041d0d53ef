// internal/domain/review/service.go
package review

import (
	"context"

	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// GameLookup resolves catalog games
type GameLookup interface {
	GetGame(ctx context.Context, id uint) (*catalog.Game, error)
}

// Service handles review business logic
type Service struct {
	repo  *Repository
	games GameLookup
	log   logrus.FieldLogger
}

// NewService creates a new review service
func NewService(repo *Repository, games GameLookup, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, games: games, log: log}
}

// Upsert creates the user's review of a game or replaces its rating and comment
func (s *Service) Upsert(ctx context.Context, userID uint, username string, gameID uint, req *UpsertReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.InvalidArgument("rating must be between 1 and 5")
	}
	if _, err := s.games.GetGame(ctx, gameID); err != nil {
		return nil, err
	}

	rv, err := s.repo.FindByUserAndGame(ctx, userID, gameID)
	switch {
	case dbutil.IsNotFound(err):
		rv = &Review{UserID: userID, GameID: gameID}
	case err != nil:
		return nil, apperror.Internal("failed to load review", err)
	}

	rv.Username = username
	rv.Rating = req.Rating
	rv.Comment = req.Comment

	if err := s.repo.Save(ctx, rv); err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, apperror.Conflict("review was submitted concurrently, retry")
		}
		return nil, apperror.Internal("failed to save review", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "game_id": gameID, "rating": rv.Rating}).Debug("review saved")
	return rv, nil
}

// Delete removes the user's review of a game
func (s *Service) Delete(ctx context.Context, userID, gameID uint) error {
	removed, err := s.repo.Delete(ctx, userID, gameID)
	if err != nil {
		return apperror.Internal("failed to delete review", err)
	}
	if !removed {
		return apperror.NotFound("review not found")
	}
	return nil
}

// ListByGame returns the reviews of a game
func (s *Service) ListByGame(ctx context.Context, gameID uint) ([]Review, error) {
	reviews, err := s.repo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, apperror.Internal("failed to load reviews", err)
	}
	return reviews, nil
}

// Summary returns the average rating, count and per-star breakdown of a game
func (s *Service) Summary(ctx context.Context, gameID uint) (*Summary, error) {
	ratings, err := s.repo.RatingsByGame(ctx, gameID)
	if err != nil {
		return nil, apperror.Internal("failed to load review stats", err)
	}

	summary := &Summary{
		GameID:          gameID,
		AverageRating:   decimal.Zero,
		TotalReviews:    int64(len(ratings)),
		RatingBreakdown: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(ratings) == 0 {
		return summary, nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r
		summary.RatingBreakdown[r]++
	}
	summary.AverageRating = decimal.NewFromInt(int64(sum)).
		DivRound(decimal.NewFromInt(int64(len(ratings))), 2)

	return summary, nil
}
