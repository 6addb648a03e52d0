package model

// TransitionMatrix counts pixels moving from one class to another
// between two epochs. Counts[from][to] covers only pixels valid in both
// maps; ValidPixels is the total over all cells.
type TransitionMatrix struct {
	EpochFrom   int
	EpochTo     int
	Counts      [NumClasses][NumClasses]int
	ValidPixels int
}

// RowTotal returns the number of valid-in-both pixels classified as c in
// the earlier epoch.
func (m *TransitionMatrix) RowTotal(c LandCoverClass) int {
	total := 0
	for j := 0; j < NumClasses; j++ {
		total += m.Counts[c][j]
	}
	return total
}

// ColTotal returns the number of valid-in-both pixels classified as c in
// the later epoch.
func (m *TransitionMatrix) ColTotal(c LandCoverClass) int {
	total := 0
	for i := 0; i < NumClasses; i++ {
		total += m.Counts[i][c]
	}
	return total
}
