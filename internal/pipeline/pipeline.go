package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/domain"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/observability"
)

// FacilitySource provides the geographic feature collection.
type FacilitySource interface {
	// Fingerprint identifies the current source content, typically
	// path+size+mtime. A changed fingerprint invalidates the cached snapshot.
	Fingerprint(ctx context.Context) (string, error)
	Load(ctx context.Context) ([]domain.RawFeature, error)
}

// RegistrySource provides the tabular administrative registry.
type RegistrySource interface {
	Fingerprint(ctx context.Context) (string, error)
	Load(ctx context.Context) (columns []string, rows []map[string]string, err error)
}

// Snapshot is one complete pipeline result. It is immutable once built;
// every caller receives an independent copy of the derived collections.
type Snapshot struct {
	ID          string
	Facilities  []domain.Facility
	Registry    domain.Registry
	Stats       domain.AssemblyStats
	Diagnostics []string
	LoadedAt    time.Time
}

// Degraded reports whether at least one source failed to load.
func (s *Snapshot) Degraded() bool { return len(s.Diagnostics) > 0 }

func (s *Snapshot) clone() *Snapshot {
	out := &Snapshot{
		ID:          s.ID,
		Facilities:  make([]domain.Facility, len(s.Facilities)),
		Stats:       s.Stats,
		Diagnostics: append([]string(nil), s.Diagnostics...),
		LoadedAt:    s.LoadedAt,
	}
	copy(out.Facilities, s.Facilities)

	out.Registry.Columns = append([]string(nil), s.Registry.Columns...)
	out.Registry.Rows = make([]domain.AdminRecord, len(s.Registry.Rows))
	for i, row := range s.Registry.Rows {
		fields := make(map[string]string, len(row.Fields))
		for k, v := range row.Fields {
			fields[k] = v
		}
		out.Registry.Rows[i] = domain.AdminRecord{Fields: fields, LastAudit: row.LastAudit}
	}
	return out
}

// Pipeline builds normalized snapshots from the two sources, memoizing the
// result by source fingerprint. Source failures degrade to empty collections
// with a diagnostic instead of propagating.
type Pipeline struct {
	facilities FacilitySource
	registry   RegistrySource
	sampler    domain.Sampler
	logger     *slog.Logger
	metrics    *observability.Metrics
	cache      *snapshotCache
	ready      atomic.Bool
}

// New creates a Pipeline. A cacheTTL of zero means snapshots are invalidated
// only by fingerprint changes or explicit Invalidate calls.
func New(facilities FacilitySource, registry RegistrySource, sampler domain.Sampler, logger *slog.Logger, metrics *observability.Metrics, cacheTTL time.Duration) *Pipeline {
	return &Pipeline{
		facilities: facilities,
		registry:   registry,
		sampler:    sampler,
		logger:     logger,
		metrics:    metrics,
		cache:      newSnapshotCache(cacheTTL),
	}
}

// Snapshot returns the current normalized snapshot, rebuilding it only when
// the source fingerprints changed, the TTL lapsed, or the cache was
// explicitly invalidated. The returned value is a private copy; mutating it
// cannot affect other callers.
func (p *Pipeline) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := p.fingerprint(ctx)
	snap, hit := p.cache.getOrBuild(key, func() *Snapshot {
		return p.build(ctx)
	})
	if hit {
		p.metrics.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		p.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}
	return snap, nil
}

// Invalidate drops the cached snapshot so the next Snapshot call recomputes.
func (p *Pipeline) Invalidate() {
	p.cache.invalidate()
	p.logger.Info("snapshot cache invalidated")
}

// CheckReadiness returns nil once the pipeline has built at least one
// snapshot, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not built a snapshot yet")
	}
	return nil
}

// fingerprint combines both source fingerprints into one cache key. A
// fingerprint error is folded into the key, so a persistently broken source
// still caches its degraded snapshot instead of rebuilding per request.
func (p *Pipeline) fingerprint(ctx context.Context) string {
	geo, err := p.facilities.Fingerprint(ctx)
	if err != nil {
		geo = "err:" + err.Error()
	}
	reg, err := p.registry.Fingerprint(ctx)
	if err != nil {
		reg = "err:" + err.Error()
	}
	return "geo=" + geo + "|reg=" + reg
}

func (p *Pipeline) build(ctx context.Context) *Snapshot {
	start := time.Now()
	snap := &Snapshot{
		ID:         uuid.NewString(),
		Facilities: []domain.Facility{},
		LoadedAt:   time.Now().UTC(),
	}

	features, err := p.facilities.Load(ctx)
	if err != nil {
		p.logger.Error("facility source unavailable", "snapshot_id", snap.ID, "error", err)
		p.metrics.SourceErrors.WithLabelValues("facilities").Inc()
		snap.Diagnostics = append(snap.Diagnostics, fmt.Sprintf("facility source unavailable: %v", err))
	} else {
		snap.Facilities, snap.Stats = domain.AssembleFacilities(features, p.sampler)
	}

	columns, rows, err := p.registry.Load(ctx)
	if err != nil {
		p.logger.Error("registry source unavailable", "snapshot_id", snap.ID, "error", err)
		p.metrics.SourceErrors.WithLabelValues("registry").Inc()
		snap.Diagnostics = append(snap.Diagnostics, fmt.Sprintf("registry source unavailable: %v", err))
	}
	snap.Registry = domain.NormalizeRegistry(columns, rows, p.sampler)

	outcome := "full"
	if snap.Degraded() {
		outcome = "degraded"
	}
	p.metrics.SnapshotBuilds.WithLabelValues(outcome).Inc()
	p.metrics.SnapshotBuildDuration.Observe(time.Since(start).Seconds())
	p.metrics.FacilitiesLoaded.Set(float64(len(snap.Facilities)))
	p.metrics.FeaturesDropped.Set(float64(snap.Stats.Dropped))
	p.metrics.CapacityFallbacks.Set(float64(snap.Stats.CapacityFallbacks))
	p.metrics.RegistryRows.Set(float64(len(snap.Registry.Rows)))

	p.ready.Store(true)
	p.metrics.PipelineReady.Set(1)

	p.logger.Info("snapshot built",
		"snapshot_id", snap.ID,
		"facilities", len(snap.Facilities),
		"dropped", snap.Stats.Dropped,
		"capacity_fallbacks", snap.Stats.CapacityFallbacks,
		"registry_rows", len(snap.Registry.Rows),
		"degraded", snap.Degraded(),
	)
	return snap
}
