package core

import (
	"fmt"
	"math/rand"
	"sort"

	"lulc_service/internal/domain/model"
)

// ExtractOptions tunes training-set extraction.
type ExtractOptions struct {
	// PerClassCap bounds the number of samples kept per class to keep
	// training sets balanced and tractable; 0 keeps everything.
	PerClassCap int
	Seed        int64
}

// ExtractSamples pairs every valid pixel of the stack with its
// ground-truth class. Pixels flagged no-data in either input are
// skipped; a label outside the taxonomy aborts extraction.
func ExtractSamples(stack *model.BandStack, labels *model.ClassMap, opts ExtractOptions) ([]model.TrainingSample, error) {
	if !stack.SameShape(labels.Rows, labels.Cols) {
		return nil, fmt.Errorf("extraction: %w", &model.ShapeMismatchError{
			WantRows: stack.Rows, WantCols: stack.Cols,
			GotRows: labels.Rows, GotCols: labels.Cols,
		})
	}

	var samples []model.TrainingSample
	for r := 0; r < stack.Rows; r++ {
		for c := 0; c < stack.Cols; c++ {
			label := labels.At(r, c)
			if label == model.ClassNoData {
				continue
			}
			if !label.Valid() {
				return nil, fmt.Errorf("extraction: %w", &model.UnknownClassError{Value: int(label), Row: r, Col: c})
			}
			vec, ok := stack.At(r, c)
			if !ok {
				continue
			}
			features := make([]float64, len(vec))
			copy(features, vec)
			samples = append(samples, model.TrainingSample{Row: r, Col: c, Features: features, Class: label})
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("extraction: %w", &model.EmptySampleSetError{Rows: stack.Rows, Cols: stack.Cols})
	}
	if opts.PerClassCap > 0 {
		samples = capPerClass(samples, opts.PerClassCap, opts.Seed)
	}
	return samples, nil
}

// capPerClass keeps at most limit samples of each class, selected
// uniformly without replacement. Deterministic for a fixed seed.
func capPerClass(samples []model.TrainingSample, limit int, seed int64) []model.TrainingSample {
	byClass := make(map[model.LandCoverClass][]int)
	for i, s := range samples {
		byClass[s.Class] = append(byClass[s.Class], i)
	}

	rng := rand.New(rand.NewSource(seed))
	keep := make([]int, 0, len(samples))
	for class := model.LandCoverClass(0); class < model.NumClasses; class++ {
		idx := byClass[class]
		if len(idx) > limit {
			// partial Fisher-Yates: the first limit entries are a
			// uniform draw without replacement
			for i := 0; i < limit; i++ {
				j := i + rng.Intn(len(idx)-i)
				idx[i], idx[j] = idx[j], idx[i]
			}
			idx = idx[:limit]
		}
		keep = append(keep, idx...)
	}
	sort.Ints(keep)

	out := make([]model.TrainingSample, len(keep))
	for i, k := range keep {
		out[i] = samples[k]
	}
	return out
}
