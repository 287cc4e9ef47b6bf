// czml/altitude.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package czml

import (
	av "github.com/mmp/airspace3d/aviation"
	"github.com/mmp/airspace3d/math"
)

// UnlimitedHeight is the height in meters used for altitudes that can't
// be resolved to a number: unlimited and textual ones.
const UnlimitedHeight = 10000.0

type HeightReference string

const (
	HeightReferenceNone             HeightReference = "NONE"
	HeightReferenceRelativeToGround HeightReference = "RELATIVE_TO_GROUND"
	HeightReferenceClampToGround    HeightReference = "CLAMP_TO_GROUND"
)

// HeightFromAltitude returns the given altitude in meters. Unknown
// altitude types give 0.
func HeightFromAltitude(a av.Altitude) float64 {
	switch a.Type {
	case av.AltitudeGND:
		return 0
	case av.AltitudeUnlimited, av.AltitudeTextual:
		return UnlimitedHeight
	case av.AltitudeAMSL, av.AltitudeAGL:
		return a.Value * math.FeetToMeters
	case av.AltitudeFlightLevel:
		return a.Value * 100 * math.FeetToMeters
	default:
		return 0
	}
}

// HeightReferenceFromAltitude returns the reference that heights derived from a are measured from.
func HeightReferenceFromAltitude(a av.Altitude) HeightReference {
	switch a.Type {
	case av.AltitudeGND:
		return HeightReferenceClampToGround
	case av.AltitudeUnlimited, av.AltitudeTextual, av.AltitudeAGL:
		return HeightReferenceRelativeToGround
	default:
		return HeightReferenceNone
	}
}
