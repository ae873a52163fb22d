package domain

import "math"

// Money crosses the wire in major units (GEL with decimals) and is stored
// in minor units (tetri, integer). The conversion happens exactly once, at
// the request boundary; everything below this line works in minor units.

func ToMinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}

func ToMajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
