package core

import (
	"fmt"

	"lulc_service/internal/domain/model"
)

// ComputeEpochStatistics counts pixels per class and derives ground
// areas from the configured per-pixel area. Purely derived: identical
// class maps always yield identical statistics.
func ComputeEpochStatistics(m *model.ClassMap, pixelArea float64) (*model.EpochStatistics, error) {
	if pixelArea <= 0 {
		return nil, fmt.Errorf("statistics: %w", &model.InvalidConfigurationError{
			Option: "pixel_area", Value: pixelArea, Reason: "must be > 0",
		})
	}

	stats := &model.EpochStatistics{Epoch: m.Epoch, PixelArea: pixelArea}
	for _, label := range m.Labels {
		if !label.Valid() {
			continue
		}
		stats.PixelCounts[label]++
		stats.ValidPixels++
	}
	for c := 0; c < model.NumClasses; c++ {
		stats.Areas[c] = float64(stats.PixelCounts[c]) * pixelArea
	}
	return stats, nil
}

// ComputeGrowth derives per-class growth between two epochs. A class
// starting at zero pixels has no defined percentage; PctDefined marks
// that case instead of dividing by zero.
func ComputeGrowth(start, end *model.EpochStatistics) *model.GrowthMetrics {
	growth := &model.GrowthMetrics{EpochFrom: start.Epoch, EpochTo: end.Epoch}
	for c := 0; c < model.NumClasses; c++ {
		g := model.ClassGrowth{
			Class:      model.LandCoverClass(c),
			StartCount: start.PixelCounts[c],
			EndCount:   end.PixelCounts[c],
		}
		g.AbsChange = g.EndCount - g.StartCount
		g.AreaChange = end.Areas[c] - start.Areas[c]
		if g.StartCount > 0 {
			g.PctChange = float64(g.AbsChange) / float64(g.StartCount) * 100
			g.PctDefined = true
		}
		growth.Classes[c] = g
	}
	return growth
}

// SummarizeComparison flattens one epoch comparison into the reporting
// payload shape.
func SummarizeComparison(cmp *EpochComparison) model.TransitionSummary {
	s := model.TransitionSummary{
		EpochFrom:   cmp.Matrix.EpochFrom,
		EpochTo:     cmp.Matrix.EpochTo,
		ValidPixels: cmp.Matrix.ValidPixels,
	}
	for _, cell := range cmp.Map.Cells {
		switch cell {
		case model.ChangeNone:
			s.Unchanged++
		case model.ChangeToBuilt:
			s.ToBuilt++
		case model.ChangeFromBuilt:
			s.FromBuilt++
		case model.ChangeOther:
			s.Other++
		}
	}
	s.Counts = make([][]int, model.NumClasses)
	for i := range s.Counts {
		s.Counts[i] = make([]int, model.NumClasses)
		copy(s.Counts[i], cmp.Matrix.Counts[i][:])
	}
	return s
}
