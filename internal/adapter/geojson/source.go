// Package geojson reads the evacuation center feature collection from a
// GeoJSON file and hands it to the pipeline as raw features.
package geojson

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	orbgeojson "github.com/paulmach/orb/geojson"

	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/domain"
)

// Source implements pipeline.FacilitySource over a GeoJSON file on disk.
type Source struct {
	path   string
	logger *slog.Logger
}

func NewSource(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger}
}

// Fingerprint identifies the current file content by path, size, and mtime.
func (s *Source) Fingerprint(_ context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("stat geojson source: %w", err)
	}
	return fmt.Sprintf("%s|%d|%d", s.path, info.Size(), info.ModTime().UnixNano()), nil
}

// Load parses the feature collection. Geometry stays as-is; properties are
// flattened to strings since the pipeline only consumes free-form text tags.
func (s *Source) Load(_ context.Context) ([]domain.RawFeature, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read geojson source: %w", err)
	}

	collection, err := orbgeojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson source: %w", err)
	}

	features := make([]domain.RawFeature, 0, len(collection.Features))
	for _, feature := range collection.Features {
		features = append(features, domain.RawFeature{
			Geometry:   feature.Geometry,
			Properties: stringProperties(feature.Properties),
		})
	}

	s.logger.Debug("geojson source loaded", "path", s.path, "features", len(features))
	return features, nil
}

// stringProperties renders property values as strings. OSM-derived tags are
// almost always strings already, but capacity occasionally arrives as a JSON
// number.
func stringProperties(props orbgeojson.Properties) map[string]string {
	out := make(map[string]string, len(props))
	for key, value := range props {
		switch v := value.(type) {
		case string:
			out[key] = v
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[key] = strconv.FormatBool(v)
		case nil:
			// dropped: absent and null are the same thing downstream
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out
}
