package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClassifierConfigIsValid(t *testing.T) {
	cfg := DefaultClassifierConfig()
	assert.NoError(t, cfg.Validate(9))
}

func TestClassifierConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ClassifierConfig)
		option string
	}{
		{"zero trees", func(c *ClassifierConfig) { c.TreeCount = 0 }, "tree_count"},
		{"zero depth", func(c *ClassifierConfig) { c.MaxDepth = 0 }, "max_depth"},
		{"split below two", func(c *ClassifierConfig) { c.MinSamplesToSplit = 1 }, "min_samples_to_split"},
		{"zero features", func(c *ClassifierConfig) { c.FeatureSubsample = 0 }, "feature_subsample_size"},
		{"too many features", func(c *ClassifierConfig) { c.FeatureSubsample = 10 }, "feature_subsample_size"},
		{"negative cap", func(c *ClassifierConfig) { c.PerClassSampleCap = -1 }, "per_class_sample_cap"},
		{"zero pixel area", func(c *ClassifierConfig) { c.PixelArea = 0 }, "pixel_area"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultClassifierConfig()
			tc.mutate(&cfg)

			err := cfg.Validate(9)
			var invalid *InvalidConfigurationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.option, invalid.Option)
		})
	}
}
