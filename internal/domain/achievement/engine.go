package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"github.com/sirupsen/logrus"
)

// Engine evaluates the achievement rules and records new unlocks
type Engine struct {
	repo      *Repository
	facts     FactSource
	publisher Publisher
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewEngine creates an achievement engine. publisher may be nil.
func NewEngine(repo *Repository, facts FactSource, publisher Publisher, log logrus.FieldLogger) *Engine {
	return &Engine{
		repo:      repo,
		facts:     facts,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate unlocks every achievement whose rule now holds and that the
// user does not have yet, and returns only the new ones.
func (e *Engine) Evaluate(ctx context.Context, userID uint) ([]Achievement, error) {
	facts, err := e.facts.Facts(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load achievement facts", err)
	}

	unlocked := make([]Achievement, 0)
	for _, t := range Candidates(facts) {
		a, err := e.unlock(ctx, userID, t)
		if err != nil {
			return unlocked, apperror.Internal(fmt.Sprintf("failed to unlock %s", t), err)
		}
		if a != nil {
			e.announce(ctx, a)
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked, nil
}

// unlock records t for the user, returning nil when it already exists
func (e *Engine) unlock(ctx context.Context, userID uint, t Type) (*Achievement, error) {
	exists, err := e.repo.Exists(ctx, userID, t)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	def, ok := Lookup(t)
	if !ok {
		return nil, fmt.Errorf("unknown achievement type %q", t)
	}

	a := &Achievement{
		UserID:          userID,
		AchievementType: def.Type,
		AchievementName: def.Name,
		Description:     def.Description,
		Icon:            def.Icon,
		UnlockedAt:      e.now(),
	}
	if err := e.repo.Create(ctx, a); err != nil {
		// a concurrent evaluation got there first
		if dbutil.IsDuplicateKey(err) {
			return nil, nil
		}
		return nil, err
	}

	e.log.WithFields(logrus.Fields{"user_id": userID, "achievement": t}).Info("achievement unlocked")
	return a, nil
}

func (e *Engine) announce(ctx context.Context, a *Achievement) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishUnlocked(ctx, a); err != nil {
		e.log.WithError(err).WithFields(logrus.Fields{
			"user_id":     a.UserID,
			"achievement": a.AchievementType,
		}).Warn("failed to publish achievement unlock")
	}
}

// List returns the user's unlocked achievements
func (e *Engine) List(ctx context.Context, userID uint) ([]Achievement, error) {
	out, err := e.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load achievements", err)
	}
	return out, nil
}
