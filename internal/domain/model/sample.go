package model

// TrainingSample pairs one valid pixel's feature vector with its
// ground-truth class.
type TrainingSample struct {
	Row      int
	Col      int
	Features []float64
	Class    LandCoverClass
}
