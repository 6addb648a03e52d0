package core

import "lulc_service/internal/domain/model"

// Sentinel-2 band order expected by index derivation.
const (
	bandBlue = iota
	bandGreen
	bandRed
	bandNIR
	bandSWIR1
)

const indexEpsilon = 1e-8

// AugmentIndices appends NDVI, NDBI and MNDWI as derived feature bands.
// They sharpen the vegetation/built/water separation the classifier has
// to learn. Stacks without the SWIR1 band are returned unchanged;
// no-data pixels stay no-data in the derived bands.
func AugmentIndices(stack *model.BandStack) *model.BandStack {
	if stack.Bands <= bandSWIR1 {
		return stack
	}

	out := model.NewBandStack(stack.Rows, stack.Cols, stack.Bands+3, stack.Epoch, stack.NoData)
	for r := 0; r < stack.Rows; r++ {
		for c := 0; c < stack.Cols; c++ {
			vec, ok := stack.At(r, c)
			for b, v := range vec {
				out.Set(r, c, b, v)
			}
			if !ok {
				for b := stack.Bands; b < out.Bands; b++ {
					out.Set(r, c, b, stack.NoData)
				}
				continue
			}
			ndvi := (vec[bandNIR] - vec[bandRed]) / (vec[bandNIR] + vec[bandRed] + indexEpsilon)
			ndbi := (vec[bandSWIR1] - vec[bandNIR]) / (vec[bandSWIR1] + vec[bandNIR] + indexEpsilon)
			mndwi := (vec[bandGreen] - vec[bandSWIR1]) / (vec[bandGreen] + vec[bandSWIR1] + indexEpsilon)
			out.Set(r, c, stack.Bands, ndvi)
			out.Set(r, c, stack.Bands+1, ndbi)
			out.Set(r, c, stack.Bands+2, mndwi)
		}
	}
	return out
}
