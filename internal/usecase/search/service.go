package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/apunisarkar/sevamcp/internal/domain"
	"github.com/apunisarkar/sevamcp/internal/logger"
)

// DefaultMinScore is the ranking threshold below which matches are dropped.
const DefaultMinScore = 30.0

// Match pairs a service with its relevance score in [0, 100].
type Match struct {
	Service domain.Service
	Score   float64
}

// Service handles fuzzy service search over the cached catalog.
type Service struct {
	catalog  CatalogProvider
	minScore float64
}

// New creates a search service with the default score threshold.
func New(catalog CatalogProvider) *Service {
	return &Service{catalog: catalog, minScore: DefaultMinScore}
}

// WithMinScore overrides the score threshold.
func (s *Service) WithMinScore(minScore float64) *Service {
	s.minScore = minScore
	return s
}

// Search fetches the catalog snapshot and ranks it against the query.
// A catalog fetch failure is an error; no qualifying matches is not —
// it yields an empty slice.
func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]Match, error) {
	services, err := s.catalog.Services(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info("Searching services",
		zap.String("query", query),
		zap.Int("catalog_size", len(services)),
	)

	matches := Rank(query, services, maxResults, s.minScore)

	for _, m := range matches[:min(5, len(matches))] {
		log.Debug("Match",
			zap.Float64("score", m.Score),
			zap.String("service", m.Service.NameEnglish),
		)
	}

	return matches, nil
}

// Rank scores every catalog entry against the query, keeps entries scoring
// strictly above minScore, stable-sorts them by score descending (ties keep
// catalog order), and truncates to maxResults. Pure: it never mutates the
// catalog and is safe to call concurrently.
func Rank(query string, catalog []domain.Service, maxResults int, minScore float64) []Match {
	scored := make([]Match, 0, len(catalog))
	for _, svc := range catalog {
		if score := Score(query, svc); score > minScore {
			scored = append(scored, Match{Service: svc, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if maxResults < 0 {
		maxResults = 0
	}
	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}

	return scored
}
