package core

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"lulc_service/internal/domain/model"
	"lulc_service/internal/domain/repository"
)

// AnalysisService runs the full classification and change-detection
// pipeline over a sequence of epochs for one area of interest.
type AnalysisService struct {
	imagery       model.ImageryProvider
	referenceRepo repository.ReferenceCounter
	recorder      repository.AnalysisRecorder
	saveResults   bool
}

func NewAnalysisService(
	imagery model.ImageryProvider,
	referenceRepo repository.ReferenceCounter,
	recorder repository.AnalysisRecorder,
	saveResults bool,
) *AnalysisService {
	return &AnalysisService{
		imagery:       imagery,
		referenceRepo: referenceRepo,
		recorder:      recorder,
		saveResults:   saveResults,
	}
}

// AnalysisRequest describes one multi-epoch run. ReferenceYear selects
// the epoch whose ground-truth labels train the model.
type AnalysisRequest struct {
	BBox          string
	Years         []int
	ReferenceYear int
	Config        model.ClassifierConfig
}

// Analyze classifies every requested epoch with a model trained on the
// reference epoch, then compares the class maps in chronological order.
// Completed stages survive later failures: when change detection fails,
// the per-epoch statistics collected so far are still returned alongside
// the error.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*model.AnalysisReport, error) {
	if len(req.Years) < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 epochs, got %d", len(req.Years))
	}
	years := make([]int, len(req.Years))
	copy(years, req.Years)
	sort.Ints(years)

	forest, err := s.trainModel(ctx, req.BBox, req.ReferenceYear, req.Config)
	if err != nil {
		return nil, err
	}

	report := &model.AnalysisReport{
		RunID: uuid.New().String(),
		BBox:  req.BBox,
	}

	classMaps := make([]*model.ClassMap, 0, len(years))
	for _, year := range years {
		stack, err := s.imagery.GetBandStack(ctx, req.BBox, year)
		if err != nil {
			return report, fmt.Errorf("acquisition for epoch %d: %w", year, err)
		}
		classMap, err := forest.Classify(ctx, AugmentIndices(stack))
		if err != nil {
			return report, fmt.Errorf("classification for epoch %d: %w", year, err)
		}
		stats, err := ComputeEpochStatistics(classMap, req.Config.PixelArea)
		if err != nil {
			return report, err
		}
		classMaps = append(classMaps, classMap)
		report.Epochs = append(report.Epochs, *stats)
	}

	series, err := DetectChangeSeries(classMaps)
	if err != nil {
		return report, err
	}
	for _, cmp := range series.Pairwise {
		report.Transitions = append(report.Transitions, SummarizeComparison(cmp))
	}
	net := SummarizeComparison(series.Net)
	report.NetChange = &net
	report.Growth = ComputeGrowth(&report.Epochs[0], &report.Epochs[len(report.Epochs)-1])

	s.attachReferences(ctx, report, years)

	if s.saveResults && s.recorder != nil {
		if err := s.recorder.SaveReport(ctx, report); err != nil {
			log.Printf("Warning: failed to record analysis results: %v", err)
		}
	}

	return report, nil
}

// ClassifyEpoch trains on the reference epoch and classifies a single
// target epoch, returning its class map and statistics.
func (s *AnalysisService) ClassifyEpoch(ctx context.Context, bbox string, year, referenceYear int, cfg model.ClassifierConfig) (*model.ClassMap, *model.EpochStatistics, error) {
	forest, err := s.trainModel(ctx, bbox, referenceYear, cfg)
	if err != nil {
		return nil, nil, err
	}

	stack, err := s.imagery.GetBandStack(ctx, bbox, year)
	if err != nil {
		return nil, nil, fmt.Errorf("acquisition for epoch %d: %w", year, err)
	}
	classMap, err := forest.Classify(ctx, AugmentIndices(stack))
	if err != nil {
		return nil, nil, fmt.Errorf("classification for epoch %d: %w", year, err)
	}
	stats, err := ComputeEpochStatistics(classMap, cfg.PixelArea)
	if err != nil {
		return nil, nil, err
	}
	return classMap, stats, nil
}

// ListRuns returns previously recorded analysis runs.
func (s *AnalysisService) ListRuns(ctx context.Context, limit int) ([]repository.RunRecord, error) {
	if s.recorder == nil {
		return nil, fmt.Errorf("results recording is not configured")
	}
	return s.recorder.ListRuns(ctx, limit)
}

// trainModel builds the training set from the reference epoch's imagery
// and ground-truth labels, then grows the forest.
func (s *AnalysisService) trainModel(ctx context.Context, bbox string, year int, cfg model.ClassifierConfig) (*Forest, error) {
	stack, err := s.imagery.GetBandStack(ctx, bbox, year)
	if err != nil {
		return nil, fmt.Errorf("acquisition for reference epoch %d: %w", year, err)
	}
	labels, err := s.imagery.GetLabelRaster(ctx, bbox, year)
	if err != nil {
		return nil, fmt.Errorf("acquisition of labels for epoch %d: %w", year, err)
	}

	augmented := AugmentIndices(stack)
	samples, err := ExtractSamples(augmented, labels, ExtractOptions{
		PerClassCap: cfg.PerClassSampleCap,
		Seed:        cfg.Seed,
	})
	if err != nil {
		return nil, err
	}

	return TrainForest(ctx, samples, augmented.Bands, cfg)
}

// attachReferences pulls OSM built-feature counts for each epoch as an
// independent cross-check on classified urban growth. The reference
// layer is advisory: failures are logged, not fatal.
func (s *AnalysisService) attachReferences(ctx context.Context, report *model.AnalysisReport, years []int) {
	if s.referenceRepo == nil {
		return
	}
	for _, year := range years {
		date := time.Date(year, 7, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02T15:04:05Z")
		count, err := s.referenceRepo.CountBuiltFeatures(ctx, report.BBox, date)
		if err != nil {
			log.Printf("Warning: failed to get OSM reference for %d: %v", year, err)
			continue
		}
		report.References = append(report.References, model.ReferenceCount{Epoch: year, BuiltFeatures: count})
	}
}
