package core

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"lulc_service/internal/domain/model"
)

// treeSeedStride separates per-tree seeds so parallel training stays
// independent of goroutine scheduling.
const treeSeedStride = 1_000_003

// Forest is the trained ensemble. Immutable once TrainForest returns.
type Forest struct {
	trees    []decisionTree
	features int
	cfg      model.ClassifierConfig
}

// TrainForest grows cfg.TreeCount bagged trees over the sample set.
// Each tree trains on its own bootstrap sample with a seed derived from
// cfg.Seed and the tree index, so two runs with the same inputs and seed
// produce identical models.
func TrainForest(ctx context.Context, samples []model.TrainingSample, featureCount int, cfg model.ClassifierConfig) (*Forest, error) {
	if err := cfg.Validate(featureCount); err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}
	if need := 2 * cfg.FeatureSubsample; len(samples) < need {
		return nil, fmt.Errorf("training: %w", &model.InsufficientSamplesError{Got: len(samples), Need: need})
	}

	trees := make([]decisionTree, cfg.TreeCount)
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i := 0; i < cfg.TreeCount; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			rng := rand.New(rand.NewSource(cfg.Seed + treeSeedStride*int64(i)))
			trees[i] = growTree(samples, featureCount, cfg, rng)
		}(i)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("training cancelled: %w", err)
	}
	return &Forest{trees: trees, features: featureCount, cfg: cfg}, nil
}

// FeatureCount returns the feature-vector length the forest expects.
func (f *Forest) FeatureCount() int { return f.features }

// TreeCount returns the ensemble size.
func (f *Forest) TreeCount() int { return len(f.trees) }

// Classify routes every valid pixel through all trees and assigns the
// class with the most votes; ties break toward the lowest class index.
// No-data pixels map to ClassNoData and never abort the pass. Rows are
// processed as independent tiles; cancellation is checked per row.
func (f *Forest) Classify(ctx context.Context, stack *model.BandStack) (*model.ClassMap, error) {
	if stack.Bands != f.features {
		return nil, fmt.Errorf("inference: stack has %d bands, model was trained on %d features", stack.Bands, f.features)
	}

	out := model.NewClassMap(stack.Rows, stack.Cols, stack.Epoch)
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range rows {
				f.classifyRow(stack, out, r)
			}
		}()
	}

	var cancelled error
	for r := 0; r < stack.Rows; r++ {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		rows <- r
	}
	close(rows)
	wg.Wait()

	if cancelled != nil {
		return nil, fmt.Errorf("inference cancelled: %w", cancelled)
	}
	return out, nil
}

func (f *Forest) classifyRow(stack *model.BandStack, out *model.ClassMap, row int) {
	for c := 0; c < stack.Cols; c++ {
		vec, ok := stack.At(row, c)
		if !ok {
			continue // stays ClassNoData
		}
		var votes [model.NumClasses]int
		for i := range f.trees {
			votes[f.trees[i].predict(vec)]++
		}
		out.Set(row, c, majorityClass(votes))
	}
}
