package model

// EpochStatistics holds per-class pixel counts and derived ground areas
// for one classified epoch. Computed once per ClassMap, immutable after.
type EpochStatistics struct {
	Epoch       int                 `json:"epoch"`
	PixelCounts [NumClasses]int     `json:"pixel_counts"`
	Areas       [NumClasses]float64 `json:"areas"`
	ValidPixels int                 `json:"valid_pixels"`
	PixelArea   float64             `json:"pixel_area"`
}

// Share returns the fraction of valid pixels carrying class c.
func (s *EpochStatistics) Share(c LandCoverClass) float64 {
	if s.ValidPixels == 0 {
		return 0
	}
	return float64(s.PixelCounts[c]) / float64(s.ValidPixels)
}

// ClassGrowth describes how one class changed between two epochs.
// PctDefined is false when the starting count is zero and a percentage
// is undefined; that is an expected case for rare or emerging classes,
// not an error.
type ClassGrowth struct {
	Class      LandCoverClass `json:"class"`
	StartCount int            `json:"start_count"`
	EndCount   int            `json:"end_count"`
	AbsChange  int            `json:"abs_change"`
	AreaChange float64        `json:"area_change"`
	PctChange  float64        `json:"pct_change"`
	PctDefined bool           `json:"pct_defined"`
}

// GrowthMetrics holds per-class growth between a start and end epoch.
type GrowthMetrics struct {
	EpochFrom int                     `json:"epoch_from"`
	EpochTo   int                     `json:"epoch_to"`
	Classes   [NumClasses]ClassGrowth `json:"classes"`
}

// TransitionSummary is the reporting view of one epoch-pair comparison.
type TransitionSummary struct {
	EpochFrom   int     `json:"epoch_from"`
	EpochTo     int     `json:"epoch_to"`
	ValidPixels int     `json:"valid_pixels"`
	ToBuilt     int     `json:"converted_to_built"`
	FromBuilt   int     `json:"converted_from_built"`
	Unchanged   int     `json:"unchanged"`
	Other       int     `json:"other_transitions"`
	Counts      [][]int `json:"counts"`
}

// ReferenceCount is an OSM-derived built-feature count used as an
// independent cross-check on classified urban growth.
type ReferenceCount struct {
	Epoch         int `json:"epoch"`
	BuiltFeatures int `json:"built_features"`
}

// AnalysisReport is the structured payload handed to the reporting
// component: everything one multi-epoch run produced.
type AnalysisReport struct {
	RunID       string              `json:"run_id"`
	BBox        string              `json:"bbox"`
	Epochs      []EpochStatistics   `json:"epochs"`
	Transitions []TransitionSummary `json:"transitions"`
	NetChange   *TransitionSummary  `json:"net_change,omitempty"`
	Growth      *GrowthMetrics      `json:"growth,omitempty"`
	References  []ReferenceCount    `json:"osm_references,omitempty"`
}
