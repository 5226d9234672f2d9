package market

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ledgerline/investprofile/backend/internal/recommend"
	"github.com/ledgerline/investprofile/backend/pkg/httputil"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
	"github.com/ledgerline/investprofile/backend/pkg/redis"
)

// CatalogSource supplies the ranked instrument catalogs the selector
// slices. Order is the catalog's canonical ranking.
type CatalogSource interface {
	FixedIncome(ctx context.Context) ([]recommend.FixedIncomeInstrument, error)
	VariableIncome(ctx context.Context) ([]recommend.VariableIncomeInstrument, error)
}

// StaticSource serves the built-in sample catalogs. Local mode.
type StaticSource struct{}

// NewStaticSource creates a sample-backed catalog source
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

func (s *StaticSource) FixedIncome(ctx context.Context) ([]recommend.FixedIncomeInstrument, error) {
	return recommend.SampleFixedIncome(), nil
}

func (s *StaticSource) VariableIncome(ctx context.Context) ([]recommend.VariableIncomeInstrument, error) {
	return recommend.SampleVariableIncome(), nil
}

// HTTPSource fetches catalogs from the market-data endpoints of the
// recommender service.
type HTTPSource struct {
	http    *httputil.Client
	baseURL string
}

// NewHTTPSource creates a catalog source over the market-data API
func NewHTTPSource(baseURL string, log *logger.Logger) *HTTPSource {
	return &HTTPSource{
		http:    httputil.New(log),
		baseURL: baseURL,
	}
}

func (s *HTTPSource) FixedIncome(ctx context.Context) ([]recommend.FixedIncomeInstrument, error) {
	resp, err := s.http.Get(ctx, s.baseURL+"/catalog/fixed-income")
	if err != nil {
		return nil, fmt.Errorf("fixed income catalog fetch failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fixed income catalog fetch returned status %d", resp.StatusCode)
	}

	var items []recommend.FixedIncomeInstrument
	if err := httputil.DecodeJSON(resp, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *HTTPSource) VariableIncome(ctx context.Context) ([]recommend.VariableIncomeInstrument, error) {
	resp, err := s.http.Get(ctx, s.baseURL+"/catalog/variable-income")
	if err != nil {
		return nil, fmt.Errorf("variable income catalog fetch failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("variable income catalog fetch returned status %d", resp.StatusCode)
	}

	var items []recommend.VariableIncomeInstrument
	if err := httputil.DecodeJSON(resp, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CachedSource decorates a source with a Redis cache so catalog reads
// survive upstream hiccups between refreshes.
type CachedSource struct {
	source CatalogSource
	cache  *redis.Cache
	logger *logger.Logger
}

// NewCachedSource wraps source with the given cache
func NewCachedSource(source CatalogSource, cache *redis.Cache, log *logger.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache,
		logger: log,
	}
}

func (s *CachedSource) FixedIncome(ctx context.Context) ([]recommend.FixedIncomeInstrument, error) {
	var cached []recommend.FixedIncomeInstrument
	found, err := s.cache.Get(ctx, redis.FixedCatalogKey(), &cached)
	if err == nil && found {
		return cached, nil
	}

	items, err := s.source.FixedIncome(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, redis.FixedCatalogKey(), items, redis.TTLLong); err != nil {
		s.logger.WithError(err).Warn("Fixed income catalog cache write failed")
	}
	return items, nil
}

func (s *CachedSource) VariableIncome(ctx context.Context) ([]recommend.VariableIncomeInstrument, error) {
	var cached []recommend.VariableIncomeInstrument
	found, err := s.cache.Get(ctx, redis.VariableCatalogKey(), &cached)
	if err == nil && found {
		return cached, nil
	}

	items, err := s.source.VariableIncome(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, redis.VariableCatalogKey(), items, redis.TTLLong); err != nil {
		s.logger.WithError(err).Warn("Variable income catalog cache write failed")
	}
	return items, nil
}

// Refresh repopulates both cached catalogs from the underlying source
func (s *CachedSource) Refresh(ctx context.Context) error {
	fixed, err := s.source.FixedIncome(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}
	variable, err := s.source.VariableIncome(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}

	if err := s.cache.Set(ctx, redis.FixedCatalogKey(), fixed, redis.TTLLong); err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}
	if err := s.cache.Set(ctx, redis.VariableCatalogKey(), variable, redis.TTLLong); err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"fixed_items":    len(fixed),
		"variable_items": len(variable),
	}).Info("Instrument catalogs refreshed")

	return nil
}
