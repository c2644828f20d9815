// Package planner resolves crafting targets against a recipe book into the
// total quantities of base materials and intermediates required. Resolution
// is a pure function of its inputs: books are lent read-only for the
// duration of a call, results carry no reference back to the book, and no
// state survives between calls except the (content-addressed) plan cache.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/craftplan/craftplan/internal/domain"
	"github.com/craftplan/craftplan/internal/logger"
	"github.com/craftplan/craftplan/internal/metrics"
	"github.com/craftplan/craftplan/internal/recipe"
)

// Default plan cache sizing
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 10 * time.Minute
)

// Request asks for the materials needed to obtain the given targets,
// optionally crediting stock already on hand.
type Request struct {
	Targets []domain.Stack
	Stock   []domain.Stack
}

// Service defines the interface for plan resolution
type Service interface {
	// Plan resolves the request against a validated recipe book.
	Plan(ctx context.Context, book *recipe.Book, req Request) (*domain.Plan, error)

	// PlanScript parses a recipe script (need/have/recipes sections), builds
	// the book it defines and resolves its need entries.
	PlanScript(ctx context.Context, input string) (*domain.Plan, error)
}

type service struct {
	cache *planCache
}

// NewService creates a new planner service with the given cache sizing.
func NewService(cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		cache: newPlanCache(cacheSize, cacheTTL),
	}
}

func (s *service) Plan(ctx context.Context, book *recipe.Book, req Request) (*domain.Plan, error) {
	log := logger.FromContext(ctx)
	log.Info("Plan called", "targets", len(req.Targets), "stock", len(req.Stock), "recipes", book.Len())

	// Normalize up front so equivalent requests share a cache entry and
	// invalid quantities fail before any graph work.
	targets, err := normalizeStacks(req.Targets, false)
	if err != nil {
		metrics.PlansTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}
	stock, err := normalizeStacks(req.Stock, true)
	if err != nil {
		metrics.PlansTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}

	key := cacheKey(book.Fingerprint(), targets, stock)
	if plan, ok := s.cache.Get(key); ok {
		metrics.PlanCacheHits.Inc()
		log.Debug("Plan cache hit", "key", key)
		return plan, nil
	}
	metrics.PlanCacheMisses.Inc()

	start := time.Now()
	plan, err := resolve(book, targets, stock)
	metrics.PlanDuration.Observe(time.Since(start).Seconds())
	metrics.PlansTotal.WithLabelValues(outcomeLabel(err)).Inc()
	if err != nil {
		log.Warn("Plan resolution failed", "error", err)
		return nil, err
	}

	metrics.PlanItemsResolved.Observe(float64(len(plan.Entries)))
	s.cache.Set(key, plan)

	log.Info("Plan resolved", "items", len(plan.Entries), "duration", time.Since(start))
	return plan, nil
}

func (s *service) PlanScript(ctx context.Context, input string) (*domain.Plan, error) {
	log := logger.FromContext(ctx)
	log.Info("PlanScript called", "length", len(input))

	script, err := recipe.ParseScript(input)
	if err != nil {
		metrics.PlansTotal.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return nil, err
	}
	if len(script.Need) == 0 {
		metrics.PlansTotal.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return nil, fmt.Errorf("%w: script has no need entries", domain.ErrInvalidInput)
	}

	book, err := recipe.NewBook(script.Definitions)
	if err != nil {
		metrics.PlansTotal.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return nil, err
	}

	return s.Plan(ctx, book, Request{Targets: script.Need, Stock: script.Have})
}

// outcomeLabel maps a resolution error to its metrics outcome label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrCyclicRecipe):
		return metrics.OutcomeCycle
	case errors.Is(err, domain.ErrInvalidQuantity):
		return metrics.OutcomeInvalidQuantity
	default:
		return metrics.OutcomeInvalidInput
	}
}
