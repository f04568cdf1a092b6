// Package cache is the redis-backed read cache. Reference data is shared
// across every open session; job pages are cached per schedule and
// invalidated wholesale after any mutation -- correctness over refetch
// thrift. Cache trouble is never fatal: a miss is returned and the caller
// goes to the facility backend.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/propertyops/maintenance-console/internal/models"
	"github.com/propertyops/maintenance-console/pkg/config"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Cache wraps redis with the console's typed read-cache operations.
type Cache struct {
	client       *redis.Client
	logger       *logger.Logger
	referenceTTL time.Duration
	jobListTTL   time.Duration
}

// New creates a cache over an established redis client.
func New(client *redis.Client, cfg *config.CacheConfig, log *logger.Logger) *Cache {
	return &Cache{
		client:       client,
		logger:       log,
		referenceTTL: cfg.ReferenceTTL,
		jobListTTL:   cfg.JobListTTL,
	}
}

const (
	cyclesKey       = "ref:cycles"
	buildingsPrefix = "ref:buildings:"
	jobsPrefix      = "jobs:"
	jobStatusPrefix = "jobstatus:"
)

// GetCycles returns the cached maintenance cycles, if present.
func (c *Cache) GetCycles(ctx context.Context) ([]models.MaintenanceCycle, bool) {
	var cycles []models.MaintenanceCycle
	if !c.getJSON(ctx, cyclesKey, &cycles) {
		return nil, false
	}
	return cycles, true
}

// SetCycles caches the maintenance cycles.
func (c *Cache) SetCycles(ctx context.Context, cycles []models.MaintenanceCycle) {
	c.setJSON(ctx, cyclesKey, cycles, c.referenceTTL)
}

// GetBuildings returns the cached building targets for a manager.
func (c *Cache) GetBuildings(ctx context.Context, managerID string) ([]models.BuildingTarget, bool) {
	var buildings []models.BuildingTarget
	if !c.getJSON(ctx, buildingsPrefix+managerID, &buildings) {
		return nil, false
	}
	return buildings, true
}

// SetBuildings caches the building targets for a manager.
func (c *Cache) SetBuildings(ctx context.Context, managerID string, buildings []models.BuildingTarget) {
	c.setJSON(ctx, buildingsPrefix+managerID, buildings, c.referenceTTL)
}

// GetPage returns a cached job page for (schedule, page, limit).
func (c *Cache) GetPage(ctx context.Context, scheduleID string, page, limit int) (*models.ScheduleJobPage, bool) {
	data, err := c.client.HGet(ctx, jobsPrefix+scheduleID, pageField(page, limit)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warnf("Job page cache read failed: %v", err)
		return nil, false
	}

	var result models.ScheduleJobPage
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Warnf("Job page cache decode failed: %v", err)
		return nil, false
	}
	return &result, true
}

// SetPage caches a fetched job page and records every job's status so
// transition legality can be checked against the last observed status.
func (c *Cache) SetPage(ctx context.Context, scheduleID string, page, limit int, result *models.ScheduleJobPage) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warnf("Job page cache encode failed: %v", err)
		return
	}

	pipe := c.client.TxPipeline()
	pagesKey := jobsPrefix + scheduleID
	pipe.HSet(ctx, pagesKey, pageField(page, limit), data)
	pipe.Expire(ctx, pagesKey, c.jobListTTL)

	statusKey := jobStatusPrefix + scheduleID
	for _, job := range result.Data {
		pipe.HSet(ctx, statusKey, job.ScheduleJobID, string(job.Status))
	}
	// Statuses outlive the page cache so a just-listed job can still be
	// transitioned after its page expires.
	pipe.Expire(ctx, statusKey, 10*c.jobListTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnf("Job page cache write failed: %v", err)
	}
}

// JobStatus returns the last observed status of a job, if any.
func (c *Cache) JobStatus(ctx context.Context, scheduleID, jobID string) (models.JobStatus, bool) {
	status, err := c.client.HGet(ctx, jobStatusPrefix+scheduleID, jobID).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warnf("Job status cache read failed: %v", err)
		return "", false
	}
	return models.JobStatus(status), true
}

// Invalidate drops everything cached for a schedule. Called after every
// successful mutation; the next listing refetches from the backend.
func (c *Cache) Invalidate(ctx context.Context, scheduleID string) {
	if err := c.client.Del(ctx, jobsPrefix+scheduleID, jobStatusPrefix+scheduleID).Err(); err != nil {
		c.logger.Warnf("Job cache invalidation failed for schedule %s: %v", scheduleID, err)
	}
}

// InvalidateReference drops the cached reference data after schedules are
// created, so the next read reflects the new state.
func (c *Cache) InvalidateReference(ctx context.Context, managerID string) {
	if err := c.client.Del(ctx, cyclesKey, buildingsPrefix+managerID).Err(); err != nil {
		c.logger.Warnf("Reference cache invalidation failed: %v", err)
	}
}

func (c *Cache) getJSON(ctx context.Context, key string, out interface{}) bool {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warnf("Cache read failed for %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		c.logger.Warnf("Cache decode failed for %s: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warnf("Cache encode failed for %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warnf("Cache write failed for %s: %v", key, err)
	}
}

func pageField(page, limit int) string {
	return fmt.Sprintf("%d:%d", page, limit)
}
