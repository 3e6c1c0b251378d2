package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/domain"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/observability"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/pipeline"
)

// --- mocks ---

type mockFacilitySource struct {
	fingerprint string
	features    []domain.RawFeature
	err         error
	loads       atomic.Int64
}

func (m *mockFacilitySource) Fingerprint(_ context.Context) (string, error) {
	return m.fingerprint, nil
}

func (m *mockFacilitySource) Load(_ context.Context) ([]domain.RawFeature, error) {
	m.loads.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.features, nil
}

type mockRegistrySource struct {
	fingerprint string
	columns     []string
	rows        []map[string]string
	err         error
	loads       atomic.Int64
}

func (m *mockRegistrySource) Fingerprint(_ context.Context) (string, error) {
	return m.fingerprint, nil
}

func (m *mockRegistrySource) Load(_ context.Context) ([]string, []map[string]string, error) {
	m.loads.Add(1)
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.columns, m.rows, nil
}

func testFeatures() []domain.RawFeature {
	return []domain.RawFeature{
		{
			Geometry: orb.Point{121.0, 14.6},
			Properties: map[string]string{
				"name": "Center A", "province": "Rizal", "capacity": "200",
			},
		},
		{
			Geometry: orb.Point{123.9, 10.3},
			Properties: map[string]string{
				"name": "Center B", "province": "Cebu", "capacity": "50-150",
			},
		},
	}
}

func newPipeline(fac *mockFacilitySource, reg *mockRegistrySource, ttl time.Duration) *pipeline.Pipeline {
	return pipeline.New(fac, reg, domain.NewSampler(7), slog.Default(), observability.NewMetricsForTesting(), ttl)
}

// --- tests ---

func TestPipeline_Snapshot_HappyPath(t *testing.T) {
	fac := &mockFacilitySource{fingerprint: "geo-v1", features: testFeatures()}
	reg := &mockRegistrySource{
		fingerprint: "reg-v1",
		columns:     []string{"Province", "Number of Evacuation Center"},
		rows:        []map[string]string{{"Province": "Rizal", "Number of Evacuation Center": "42"}},
	}
	p := newPipeline(fac, reg, 0)

	snap, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.NotEmpty(t, snap.ID)
	assert.False(t, snap.Degraded())

	require.Len(t, snap.Facilities, 2)
	// Province-sorted: Cebu before Rizal.
	assert.Equal(t, "Center B", snap.Facilities[0].Name)
	assert.Equal(t, 100, snap.Facilities[0].Capacity)
	assert.Equal(t, "Center A", snap.Facilities[1].Name)

	assert.Equal(t, []string{"Province", "Official_Count"}, snap.Registry.Columns)
	require.Len(t, snap.Registry.Rows, 1)
	assert.Equal(t, "42", snap.Registry.Rows[0].Fields[domain.OfficialCountColumn])

	require.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Snapshot_Memoizes(t *testing.T) {
	fac := &mockFacilitySource{fingerprint: "geo-v1", features: testFeatures()}
	reg := &mockRegistrySource{fingerprint: "reg-v1"}
	p := newPipeline(fac, reg, 0)

	first, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), fac.loads.Load())
	assert.Equal(t, int64(1), reg.loads.Load())
	assert.Equal(t, first.ID, second.ID)
	// Same snapshot, but simulated fields must match exactly since it was
	// computed once.
	assert.Equal(t, first.Facilities, second.Facilities)
}

func TestPipeline_Snapshot_FingerprintChangeRebuilds(t *testing.T) {
	fac := &mockFacilitySource{fingerprint: "geo-v1", features: testFeatures()}
	reg := &mockRegistrySource{fingerprint: "reg-v1"}
	p := newPipeline(fac, reg, 0)

	first, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	fac.fingerprint = "geo-v2"
	second, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), fac.loads.Load())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPipeline_Invalidate(t *testing.T) {
	fac := &mockFacilitySource{fingerprint: "geo-v1", features: testFeatures()}
	reg := &mockRegistrySource{fingerprint: "reg-v1"}
	p := newPipeline(fac, reg, 0)

	_, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	p.Invalidate()
	_, err = p.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), fac.loads.Load())
}

func TestPipeline_Snapshot_FacilitySourceUnavailable(t *testing.T) {
	fac := &mockFacilitySource{fingerprint: "geo-v1", err: errors.New("no such file")}
	reg := &mockRegistrySource{
		fingerprint: "reg-v1",
		columns:     []string{"Province"},
		rows:        []map[string]string{{"Province": "Albay"}},
	}
	p := newPipeline(fac, reg, 0)

	snap, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snap.Facilities)
	assert.True(t, snap.Degraded())
	require.Len(t, snap.Diagnostics, 1)
	assert.Contains(t, snap.Diagnostics[0], "facility source unavailable")

	// The other source still loads.
	assert.Len(t, snap.Registry.Rows, 1)
	// A degraded dashboard is still a dashboard.
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Snapshot_BothSourcesUnavailable(t *testing.T) {
	fac := &mockFacilitySource{fingerprint: "geo-v1", err: errors.New("geo broken")}
	reg := &mockRegistrySource{fingerprint: "reg-v1", err: errors.New("xlsx broken")}
	p := newPipeline(fac, reg, 0)

	snap, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Facilities)
	assert.Empty(t, snap.Registry.Rows)
	assert.Len(t, snap.Diagnostics, 2)
}

func TestPipeline_Snapshot_CallersGetIndependentCopies(t *testing.T) {
	fac := &mockFacilitySource{fingerprint: "geo-v1", features: testFeatures()}
	reg := &mockRegistrySource{
		fingerprint: "reg-v1",
		columns:     []string{"Province"},
		rows:        []map[string]string{{"Province": "Albay"}},
	}
	p := newPipeline(fac, reg, 0)

	first, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	first.Facilities[0].Name = "mutated"
	first.Registry.Rows[0].Fields["Province"] = "mutated"

	second, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second.Facilities[0].Name)
	assert.Equal(t, "Albay", second.Registry.Rows[0].Fields["Province"])
}

func TestPipeline_Snapshot_ContextCancelled(t *testing.T) {
	fac := &mockFacilitySource{fingerprint: "geo-v1"}
	reg := &mockRegistrySource{fingerprint: "reg-v1"}
	p := newPipeline(fac, reg, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Snapshot(ctx)
	require.Error(t, err)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_CheckReadiness_BeforeFirstSnapshot(t *testing.T) {
	p := newPipeline(&mockFacilitySource{}, &mockRegistrySource{}, 0)
	assert.Error(t, p.CheckReadiness(context.Background()))
}
