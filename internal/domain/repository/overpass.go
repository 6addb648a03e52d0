package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/serjvanilla/go-overpass"
)

// ReferenceCounter supplies independent counts of mapped built features
// for a bbox at a point in time.
type ReferenceCounter interface {
	CountBuiltFeatures(ctx context.Context, bbox string, date string) (int, error)
}

type OverpassRepository struct {
	client  *overpass.Client
	timeout time.Duration
}

func NewOverpassRepository(endpoint string, timeout time.Duration) *OverpassRepository {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassRepository{
		client:  &client,
		timeout: timeout,
	}
}

// CountBuiltFeatures counts OSM building nodes and ways inside the bbox
// as of the given date. The attic query keeps the count on the same
// epoch as the classified imagery it corroborates.
func (r *OverpassRepository) CountBuiltFeatures(ctx context.Context, bbox string, date string) (int, error) {
	query := fmt.Sprintf(`
		[out:json][date:"%s"];
		(
			node["building"](%s);
			way["building"](%s);
		);
		out ids;
	`, date, bbox, bbox)

	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to execute built-features query: %w", err)
	}

	return len(result.Nodes) + len(result.Ways), nil
}

func (r *OverpassRepository) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	return &result, nil
}
