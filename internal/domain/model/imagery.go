package model

import "context"

// ImageryProvider defines the contract with the acquisition service.
// Band stacks and ground-truth label rasters arrive already co-registered
// on an identical grid with a shared no-data sentinel.
type ImageryProvider interface {
	// GetBandStack fetches the spectral bands of one epoch for a bbox.
	GetBandStack(ctx context.Context, bbox string, year int) (*BandStack, error)

	// GetLabelRaster fetches the ground-truth classes of one epoch.
	GetLabelRaster(ctx context.Context, bbox string, year int) (*ClassMap, error)
}
