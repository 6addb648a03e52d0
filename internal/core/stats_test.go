package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lulc_service/internal/domain/model"
)

func TestComputeEpochStatistics(t *testing.T) {
	m := classMapOf(2020,
		model.ClassWater, model.ClassWater, model.ClassBuilt,
		model.ClassNoData, model.ClassBuilt, model.ClassBuilt)

	stats, err := ComputeEpochStatistics(m, 100)
	require.NoError(t, err)

	assert.Equal(t, 2020, stats.Epoch)
	assert.Equal(t, 5, stats.ValidPixels)
	assert.Equal(t, 2, stats.PixelCounts[model.ClassWater])
	assert.Equal(t, 3, stats.PixelCounts[model.ClassBuilt])
	assert.Equal(t, 300.0, stats.Areas[model.ClassBuilt])
	assert.InDelta(t, 0.6, stats.Share(model.ClassBuilt), 1e-9)
}

func TestComputeEpochStatisticsIdempotent(t *testing.T) {
	m := classMapOf(2020, model.ClassTrees, model.ClassBuilt, model.ClassTrees)

	first, err := ComputeEpochStatistics(m, 100)
	require.NoError(t, err)
	second, err := ComputeEpochStatistics(m, 100)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeEpochStatisticsRejectsPixelArea(t *testing.T) {
	_, err := ComputeEpochStatistics(model.NewClassMap(1, 1, 2020), 0)
	var invalid *model.InvalidConfigurationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "pixel_area", invalid.Option)
}

func TestComputeGrowth(t *testing.T) {
	start := classMapOf(2018,
		model.ClassTrees, model.ClassTrees, model.ClassTrees, model.ClassTrees,
		model.ClassWater, model.ClassWater)
	end := classMapOf(2025,
		model.ClassTrees, model.ClassTrees, model.ClassTrees, model.ClassBuilt,
		model.ClassBuilt, model.ClassBuilt)

	startStats, err := ComputeEpochStatistics(start, 100)
	require.NoError(t, err)
	endStats, err := ComputeEpochStatistics(end, 100)
	require.NoError(t, err)

	growth := ComputeGrowth(startStats, endStats)

	trees := growth.Classes[model.ClassTrees]
	assert.Equal(t, -1, trees.AbsChange)
	assert.True(t, trees.PctDefined)
	assert.InDelta(t, -25.0, trees.PctChange, 1e-9)

	// built area starts at zero pixels: percentage is undefined, not an
	// error and not zero change
	built := growth.Classes[model.ClassBuilt]
	assert.Equal(t, 0, built.StartCount)
	assert.Equal(t, 3, built.EndCount)
	assert.Equal(t, 3, built.AbsChange)
	assert.False(t, built.PctDefined)
	assert.Equal(t, 300.0, built.AreaChange)
}

func TestSummarizeComparison(t *testing.T) {
	a := classMapOf(2018, model.ClassWater, model.ClassWater, model.ClassTrees, model.ClassBuilt)
	b := classMapOf(2025, model.ClassWater, model.ClassBuilt, model.ClassGrass, model.ClassBuilt)

	cmp, err := CompareEpochs(a, b)
	require.NoError(t, err)

	s := SummarizeComparison(cmp)
	assert.Equal(t, 2018, s.EpochFrom)
	assert.Equal(t, 2025, s.EpochTo)
	assert.Equal(t, 4, s.ValidPixels)
	assert.Equal(t, 2, s.Unchanged)
	assert.Equal(t, 1, s.ToBuilt)
	assert.Equal(t, 0, s.FromBuilt)
	assert.Equal(t, 1, s.Other)
	assert.Equal(t, 1, s.Counts[model.ClassWater][model.ClassBuilt])
}
