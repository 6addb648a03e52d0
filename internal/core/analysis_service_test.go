package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lulc_service/internal/domain/model"
	"lulc_service/internal/domain/repository"
)

// fakeImagery serves pre-built scenes keyed by year.
type fakeImagery struct {
	stacks map[int]*model.BandStack
	labels map[int]*model.ClassMap
}

func (f *fakeImagery) GetBandStack(_ context.Context, _ string, year int) (*model.BandStack, error) {
	stack, ok := f.stacks[year]
	if !ok {
		return nil, fmt.Errorf("no imagery for %d", year)
	}
	return stack, nil
}

func (f *fakeImagery) GetLabelRaster(_ context.Context, _ string, year int) (*model.ClassMap, error) {
	labels, ok := f.labels[year]
	if !ok {
		return nil, fmt.Errorf("no labels for %d", year)
	}
	return labels, nil
}

type fakeRecorder struct {
	saved []*model.AnalysisReport
}

func (f *fakeRecorder) SaveReport(_ context.Context, report *model.AnalysisReport) error {
	f.saved = append(f.saved, report)
	return nil
}

func (f *fakeRecorder) ListRuns(_ context.Context, _ int) ([]repository.RunRecord, error) {
	return nil, nil
}

// growthScene builds two epochs over the separable 2x2 scene where one
// water pixel turns built between 2018 and 2025.
func growthScene(t *testing.T) *fakeImagery {
	t.Helper()
	start, labels := trivialScene(t)
	start.Epoch = 2018
	labels.Epoch = 2018

	end := model.NewBandStack(2, 2, 2, 2025, noData)
	copy(end.Pixels, start.Pixels)
	end.Set(0, 1, 0, 0.78)
	end.Set(0, 1, 1, 0.88)

	return &fakeImagery{
		stacks: map[int]*model.BandStack{2018: start, 2025: end},
		labels: map[int]*model.ClassMap{2018: labels},
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	recorder := &fakeRecorder{}
	service := NewAnalysisService(growthScene(t), nil, recorder, true)

	cfg := trivialConfig()
	report, err := service.Analyze(context.Background(), AnalysisRequest{
		BBox:          "55.70,37.50,55.80,37.70",
		Years:         []int{2025, 2018}, // unsorted on purpose
		ReferenceYear: 2018,
		Config:        cfg,
	})
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.RunID)

	require.Len(t, report.Epochs, 2)
	assert.Equal(t, 2018, report.Epochs[0].Epoch)
	assert.Equal(t, 2025, report.Epochs[1].Epoch)
	assert.Equal(t, 2, report.Epochs[0].PixelCounts[model.ClassBuilt])
	assert.Equal(t, 3, report.Epochs[1].PixelCounts[model.ClassBuilt])

	require.Len(t, report.Transitions, 1)
	assert.Equal(t, 1, report.Transitions[0].ToBuilt)
	assert.Equal(t, 3, report.Transitions[0].Unchanged)

	require.NotNil(t, report.NetChange)
	assert.Equal(t, 2018, report.NetChange.EpochFrom)
	assert.Equal(t, 2025, report.NetChange.EpochTo)

	require.NotNil(t, report.Growth)
	built := report.Growth.Classes[model.ClassBuilt]
	assert.Equal(t, 1, built.AbsChange)
	assert.True(t, built.PctDefined)
	assert.InDelta(t, 50.0, built.PctChange, 1e-9)

	require.Len(t, recorder.saved, 1)
	assert.Equal(t, report.RunID, recorder.saved[0].RunID)
}

func TestAnalyzeKeepsPartialResultsOnAcquisitionFailure(t *testing.T) {
	imagery := growthScene(t)
	delete(imagery.stacks, 2025)
	service := NewAnalysisService(imagery, nil, nil, false)

	report, err := service.Analyze(context.Background(), AnalysisRequest{
		BBox:          "55.70,37.50,55.80,37.70",
		Years:         []int{2018, 2025},
		ReferenceYear: 2018,
		Config:        trivialConfig(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epoch 2025")

	// the completed 2018 classification is not discarded
	require.NotNil(t, report)
	require.Len(t, report.Epochs, 1)
	assert.Equal(t, 2018, report.Epochs[0].Epoch)
}

func TestAnalyzeRequiresTwoEpochs(t *testing.T) {
	service := NewAnalysisService(growthScene(t), nil, nil, false)

	_, err := service.Analyze(context.Background(), AnalysisRequest{
		BBox:          "55.70,37.50,55.80,37.70",
		Years:         []int{2018},
		ReferenceYear: 2018,
		Config:        trivialConfig(),
	})
	require.Error(t, err)
}

func TestClassifyEpoch(t *testing.T) {
	service := NewAnalysisService(growthScene(t), nil, nil, false)

	classMap, stats, err := service.ClassifyEpoch(context.Background(),
		"55.70,37.50,55.80,37.70", 2025, 2018, trivialConfig())
	require.NoError(t, err)

	assert.Equal(t, 2025, classMap.Epoch)
	assert.Equal(t, 4, stats.ValidPixels)
	assert.Equal(t, 3, stats.PixelCounts[model.ClassBuilt])
	assert.Equal(t, 1, stats.PixelCounts[model.ClassWater])
}
