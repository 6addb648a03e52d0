package model

import "math"

// BandStack is a multi-band raster for one epoch. Values are stored
// row-major, pixel-major: index = (row*Cols+col)*Bands + band. All bands
// share the same grid and the same NoData sentinel.
type BandStack struct {
	Rows   int
	Cols   int
	Bands  int
	Epoch  int
	NoData float64
	Pixels []float64
}

// NewBandStack allocates a zeroed stack with the given shape.
func NewBandStack(rows, cols, bands, epoch int, noData float64) *BandStack {
	return &BandStack{
		Rows:   rows,
		Cols:   cols,
		Bands:  bands,
		Epoch:  epoch,
		NoData: noData,
		Pixels: make([]float64, rows*cols*bands),
	}
}

// At returns the feature vector of pixel (row, col). ok is false when any
// band holds the NoData sentinel or a NaN; callers treat such pixels as
// no-data rather than failing the whole pass. The returned slice aliases
// the stack and must not be modified.
func (s *BandStack) At(row, col int) (vec []float64, ok bool) {
	base := (row*s.Cols + col) * s.Bands
	vec = s.Pixels[base : base+s.Bands]
	for _, v := range vec {
		if v == s.NoData || math.IsNaN(v) {
			return vec, false
		}
	}
	return vec, true
}

// Set writes one band value of pixel (row, col).
func (s *BandStack) Set(row, col, band int, v float64) {
	s.Pixels[(row*s.Cols+col)*s.Bands+band] = v
}

// SameShape reports whether two stacks cover the same grid.
func (s *BandStack) SameShape(rows, cols int) bool {
	return s.Rows == rows && s.Cols == cols
}

// ClassMap is a single-band categorical raster for one epoch. It is also
// the shape of ground-truth label rasters delivered by the acquisition
// service.
type ClassMap struct {
	Rows   int
	Cols   int
	Epoch  int
	Labels []LandCoverClass
}

// NewClassMap allocates a map with every cell set to ClassNoData.
func NewClassMap(rows, cols, epoch int) *ClassMap {
	labels := make([]LandCoverClass, rows*cols)
	for i := range labels {
		labels[i] = ClassNoData
	}
	return &ClassMap{Rows: rows, Cols: cols, Epoch: epoch, Labels: labels}
}

// At returns the class of pixel (row, col).
func (m *ClassMap) At(row, col int) LandCoverClass {
	return m.Labels[row*m.Cols+col]
}

// Set assigns the class of pixel (row, col).
func (m *ClassMap) Set(row, col int, c LandCoverClass) {
	m.Labels[row*m.Cols+col] = c
}

// ChangeMap holds the per-pixel change category between two epochs.
type ChangeMap struct {
	Rows      int
	Cols      int
	EpochFrom int
	EpochTo   int
	Cells     []ChangeCategory
}

// At returns the change category of pixel (row, col).
func (m *ChangeMap) At(row, col int) ChangeCategory {
	return m.Cells[row*m.Cols+col]
}
