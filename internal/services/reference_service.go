package services

import (
	"context"

	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/propertyops/maintenance-console/pkg/metrics"
)

// ReferenceAPI is the slice of the facility client serving reference reads.
type ReferenceAPI interface {
	ListMaintenanceCycles(ctx context.Context) ([]models.MaintenanceCycle, error)
	ListBuildingDetailsForManager(ctx context.Context, managerID string) ([]models.BuildingTarget, error)
}

// ReferenceCache caches reference reads keyed per collection.
type ReferenceCache interface {
	GetCycles(ctx context.Context) ([]models.MaintenanceCycle, bool)
	SetCycles(ctx context.Context, cycles []models.MaintenanceCycle)
	GetBuildings(ctx context.Context, managerID string) ([]models.BuildingTarget, bool)
	SetBuildings(ctx context.Context, managerID string, buildings []models.BuildingTarget)
}

// ReferenceService serves maintenance cycles and building targets, backed
// by the facility API with a read-through cache in front.
type ReferenceService struct {
	api     ReferenceAPI
	cache   ReferenceCache
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewReferenceService creates a reference service.
func NewReferenceService(api ReferenceAPI, cache ReferenceCache, log *logger.Logger, m *metrics.Metrics) *ReferenceService {
	return &ReferenceService{
		api:     api,
		cache:   cache,
		logger:  log,
		metrics: m,
	}
}

// ListCycles returns all maintenance cycles.
func (s *ReferenceService) ListCycles(ctx context.Context) ([]models.MaintenanceCycle, error) {
	if s.cache != nil {
		if cycles, ok := s.cache.GetCycles(ctx); ok {
			s.recordHit("cycles", true)
			return cycles, nil
		}
		s.recordHit("cycles", false)
	}

	cycles, err := s.api.ListMaintenanceCycles(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetCycles(ctx, cycles)
	}
	return cycles, nil
}

// ListBuildings returns the building targets assigned to a manager.
func (s *ReferenceService) ListBuildings(ctx context.Context, managerID string) ([]models.BuildingTarget, error) {
	if s.cache != nil {
		if buildings, ok := s.cache.GetBuildings(ctx, managerID); ok {
			s.recordHit("buildings", true)
			return buildings, nil
		}
		s.recordHit("buildings", false)
	}

	buildings, err := s.api.ListBuildingDetailsForManager(ctx, managerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetBuildings(ctx, managerID, buildings)
	}
	return buildings, nil
}

func (s *ReferenceService) recordHit(cache string, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHits.WithLabelValues(cache).Inc()
	} else {
		s.metrics.CacheMisses.WithLabelValues(cache).Inc()
	}
}
