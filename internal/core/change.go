package core

import (
	"fmt"
	"sort"

	"lulc_service/internal/domain/model"
)

// EpochComparison bundles the transition matrix and change map of one
// epoch pair.
type EpochComparison struct {
	Matrix *model.TransitionMatrix
	Map    *model.ChangeMap
}

// CompareEpochs compares two class maps of identical shape and produces
// the per-pixel change map plus the aggregate transition matrix. Pixels
// lacking a class in either epoch are excluded from the matrix and
// marked no-data in the map.
func CompareEpochs(from, to *model.ClassMap) (*EpochComparison, error) {
	if from.Rows != to.Rows || from.Cols != to.Cols {
		return nil, fmt.Errorf("change detection: %w", &model.ShapeMismatchError{
			WantRows: from.Rows, WantCols: from.Cols,
			GotRows: to.Rows, GotCols: to.Cols,
		})
	}

	matrix := &model.TransitionMatrix{EpochFrom: from.Epoch, EpochTo: to.Epoch}
	change := &model.ChangeMap{
		Rows: from.Rows, Cols: from.Cols,
		EpochFrom: from.Epoch, EpochTo: to.Epoch,
		Cells: make([]model.ChangeCategory, len(from.Labels)),
	}

	for i := range from.Labels {
		a, b := from.Labels[i], to.Labels[i]
		if !a.Valid() || !b.Valid() {
			change.Cells[i] = model.ChangeNoData
			continue
		}
		matrix.Counts[a][b]++
		matrix.ValidPixels++
		change.Cells[i] = categorize(a, b)
	}
	return &EpochComparison{Matrix: matrix, Map: change}, nil
}

// categorize is the fixed change rule table. Further change types
// (deforestation, water loss) extend this switch without touching the
// comparison loop.
func categorize(from, to model.LandCoverClass) model.ChangeCategory {
	switch {
	case from == to:
		return model.ChangeNone
	case to == model.ClassBuilt:
		return model.ChangeToBuilt
	case from == model.ClassBuilt:
		return model.ChangeFromBuilt
	default:
		return model.ChangeOther
	}
}

// ChangeSeries holds pairwise comparisons between consecutive epochs
// plus the cumulative first-to-last comparison over the full span.
type ChangeSeries struct {
	Pairwise []*EpochComparison
	Net      *EpochComparison
}

// DetectChangeSeries compares an ordered sequence of epochs: each
// consecutive pair in chronological order, plus the net change between
// the first and last epoch.
func DetectChangeSeries(maps []*model.ClassMap) (*ChangeSeries, error) {
	if len(maps) < 2 {
		return nil, fmt.Errorf("change detection: need at least 2 epochs, got %d", len(maps))
	}
	ordered := make([]*model.ClassMap, len(maps))
	copy(ordered, maps)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Epoch < ordered[j].Epoch })

	series := &ChangeSeries{}
	for i := 0; i+1 < len(ordered); i++ {
		cmp, err := CompareEpochs(ordered[i], ordered[i+1])
		if err != nil {
			return nil, err
		}
		series.Pairwise = append(series.Pairwise, cmp)
	}

	net, err := CompareEpochs(ordered[0], ordered[len(ordered)-1])
	if err != nil {
		return nil, err
	}
	series.Net = net
	return series, nil
}
