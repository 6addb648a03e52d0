package model

// ClassifierConfig is the tuning surface of the ensemble classifier.
type ClassifierConfig struct {
	TreeCount         int     `json:"tree_count"`
	MaxDepth          int     `json:"max_depth"`
	MinSamplesToSplit int     `json:"min_samples_to_split"`
	FeatureSubsample  int     `json:"feature_subsample_size"`
	Seed              int64   `json:"seed"`
	PerClassSampleCap int     `json:"per_class_sample_cap"` // 0 disables stratified capping
	PixelArea         float64 `json:"pixel_area"`           // ground area of one pixel, m²
}

// DefaultClassifierConfig mirrors the settings the analysis was tuned
// with on Sentinel-2 scenes.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		TreeCount:         50,
		MaxDepth:          12,
		MinSamplesToSplit: 4,
		FeatureSubsample:  3,
		Seed:              42,
		PerClassSampleCap: 5000,
		PixelArea:         100, // 10m Sentinel-2 pixels
	}
}

// Validate checks every option against its declared range. bandCount is
// the feature-vector length the classifier will see.
func (c ClassifierConfig) Validate(bandCount int) error {
	if c.TreeCount <= 0 {
		return &InvalidConfigurationError{Option: "tree_count", Value: c.TreeCount, Reason: "must be > 0"}
	}
	if c.MaxDepth <= 0 {
		return &InvalidConfigurationError{Option: "max_depth", Value: c.MaxDepth, Reason: "must be > 0"}
	}
	if c.MinSamplesToSplit < 2 {
		return &InvalidConfigurationError{Option: "min_samples_to_split", Value: c.MinSamplesToSplit, Reason: "must be >= 2"}
	}
	if c.FeatureSubsample <= 0 || c.FeatureSubsample > bandCount {
		return &InvalidConfigurationError{
			Option: "feature_subsample_size",
			Value:  c.FeatureSubsample,
			Reason: "must be > 0 and <= band count",
		}
	}
	if c.PerClassSampleCap < 0 {
		return &InvalidConfigurationError{Option: "per_class_sample_cap", Value: c.PerClassSampleCap, Reason: "must be >= 0"}
	}
	if c.PixelArea <= 0 {
		return &InvalidConfigurationError{Option: "pixel_area", Value: c.PixelArea, Reason: "must be > 0"}
	}
	return nil
}
