package jobs

import (
	"context"

	"github.com/ledgerline/investprofile/backend/internal/market"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// CatalogRefreshJob keeps the cached instrument catalogs warm
type CatalogRefreshJob struct {
	catalogs *market.CachedSource
	schedule string
	logger   *logger.Logger
}

// NewCatalogRefreshJob creates a new catalog refresh job
func NewCatalogRefreshJob(catalogs *market.CachedSource, schedule string, log *logger.Logger) *CatalogRefreshJob {
	return &CatalogRefreshJob{
		catalogs: catalogs,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *CatalogRefreshJob) Name() string {
	return "catalog_refresh"
}

// Schedule returns the configured cron schedule
func (j *CatalogRefreshJob) Schedule() string {
	return j.schedule
}

// Run re-fetches both catalogs and rewrites the cache entries
func (j *CatalogRefreshJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled catalog refresh")

	if err := j.catalogs.Refresh(ctx); err != nil {
		return err
	}

	j.logger.Info("Instrument catalogs refreshed")
	return nil
}
