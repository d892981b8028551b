// Package flag renders small country flags for the poster footer.
//
// Flags are described by a [Definition]: a pattern kind plus an ordered
// color list. The definition table covers every country the brand table
// can produce and is never mutated at runtime.
package flag

import (
	"github.com/haffenloher/carposter/pkg/vehicle"
)

// Kind selects the drawing pattern for a flag.
type Kind string

// Supported flag patterns.
const (
	// KindHorizontal draws len(Colors) equal horizontal bands, top to bottom.
	KindHorizontal Kind = "horizontal"
	// KindVertical draws len(Colors) equal vertical bands, left to right.
	KindVertical Kind = "vertical"
	// KindCircle draws Colors[0] as background with a centered disc in Colors[1].
	KindCircle Kind = "circle"
	// KindCross draws Colors[0] as background with centered cross bars in Colors[1].
	KindCross Kind = "cross"
)

// Definition describes how to draw one country's flag.
type Definition struct {
	Kind   Kind
	Colors []string // #RRGGBB, meaning depends on Kind
}

// definitions maps country codes to their flag patterns.
var definitions = map[vehicle.CountryCode]Definition{
	vehicle.CountryDE: {KindHorizontal, []string{"#000000", "#DD0000", "#FFCE00"}},
	vehicle.CountryAT: {KindHorizontal, []string{"#ED2939", "#FFFFFF", "#ED2939"}},
	vehicle.CountryIT: {KindVertical, []string{"#009246", "#FFFFFF", "#CE2B37"}},
	vehicle.CountryFR: {KindVertical, []string{"#002395", "#FFFFFF", "#ED2939"}},
	vehicle.CountryJP: {KindCircle, []string{"#FFFFFF", "#BC002D"}},
	vehicle.CountryUS: {KindHorizontal, []string{
		"#B22234", "#FFFFFF", "#B22234", "#FFFFFF", "#B22234", "#FFFFFF",
		"#B22234", "#FFFFFF", "#B22234", "#FFFFFF", "#B22234", "#FFFFFF",
		"#B22234",
	}},
	vehicle.CountryGB: {KindHorizontal, []string{"#012169", "#FFFFFF", "#C8102F"}},
	vehicle.CountryKR: {KindHorizontal, []string{"#FFFFFF", "#CD2E3A", "#0047A0"}},
	vehicle.CountrySE: {KindCross, []string{"#006AA7", "#FECC00"}},
	vehicle.CountryCZ: {KindHorizontal, []string{"#FFFFFF", "#D7141A"}},
	vehicle.CountryRO: {KindVertical, []string{"#002B7F", "#FCD116", "#CE1126"}},
	vehicle.CountryES: {KindHorizontal, []string{"#AA151B", "#F1BF00", "#AA151B"}},
	vehicle.CountryIN: {KindHorizontal, []string{"#FF9933", "#FFFFFF", "#138808"}},
	vehicle.CountryCH: {KindHorizontal, []string{"#DA291C", "#FFFFFF", "#DA291C"}},
	vehicle.CountryNL: {KindHorizontal, []string{"#AE1C28", "#FFFFFF", "#21468B"}},
	vehicle.CountryBE: {KindVertical, []string{"#000000", "#FDDA24", "#EF3340"}},
	vehicle.CountryPL: {KindHorizontal, []string{"#FFFFFF", "#DC143C"}},
	vehicle.CountryRU: {KindHorizontal, []string{"#FFFFFF", "#0039A6", "#D52B1E"}},
}

// Lookup returns the flag definition for a country code.
// Unknown codes fall back to the DE flag.
func Lookup(code vehicle.CountryCode) Definition {
	if def, ok := definitions[code]; ok {
		return def
	}
	return definitions[vehicle.CountryDE]
}
