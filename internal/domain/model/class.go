package model

// LandCoverClass is one of the 9 Dynamic World land-cover categories.
// Values are stable across epochs; change detection depends on that.
type LandCoverClass int8

const (
	ClassWater      LandCoverClass = 0
	ClassTrees      LandCoverClass = 1
	ClassGrass      LandCoverClass = 2
	ClassFloodedVeg LandCoverClass = 3
	ClassCrops      LandCoverClass = 4
	ClassShrub      LandCoverClass = 5
	ClassBuilt      LandCoverClass = 6
	ClassBareGround LandCoverClass = 7
	ClassSnowIce    LandCoverClass = 8

	// ClassNoData marks a pixel with no usable observation. It is the
	// explicit no-data variant and never participates in voting,
	// transition counting or statistics.
	ClassNoData LandCoverClass = -1
)

// NumClasses is the size of the closed taxonomy.
const NumClasses = 9

var classNames = [NumClasses]string{
	"Water",
	"Trees",
	"Grass",
	"Flooded Veg",
	"Crops",
	"Shrub/Scrub",
	"Built Area",
	"Bare Ground",
	"Snow/Ice",
}

// Valid reports whether c is one of the 9 declared classes.
func (c LandCoverClass) Valid() bool {
	return c >= 0 && c < NumClasses
}

func (c LandCoverClass) String() string {
	if !c.Valid() {
		return "No Data"
	}
	return classNames[c]
}

// ChangeCategory classifies a pixel's transition between two epochs.
type ChangeCategory int8

const (
	ChangeNoData    ChangeCategory = -1
	ChangeNone      ChangeCategory = 0
	ChangeToBuilt   ChangeCategory = 1
	ChangeFromBuilt ChangeCategory = 2
	ChangeOther     ChangeCategory = 3
)

func (c ChangeCategory) String() string {
	switch c {
	case ChangeNone:
		return "no-change"
	case ChangeToBuilt:
		return "converted-to-built"
	case ChangeFromBuilt:
		return "converted-from-built"
	case ChangeOther:
		return "other-transition"
	default:
		return "no-data"
	}
}
