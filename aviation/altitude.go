// aviation/altitude.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type AltitudeType int

const (
	AltitudeUnknown AltitudeType = iota
	AltitudeGND
	AltitudeAMSL
	AltitudeAGL
	AltitudeFlightLevel
	AltitudeUnlimited
	AltitudeTextual
)

func (t AltitudeType) Valid() bool {
	return t >= AltitudeGND && t <= AltitudeTextual
}

func (t AltitudeType) String() string {
	switch t {
	case AltitudeGND:
		return "GND"
	case AltitudeAMSL:
		return "AMSL"
	case AltitudeAGL:
		return "AGL"
	case AltitudeFlightLevel:
		return "FL"
	case AltitudeUnlimited:
		return "UNL"
	case AltitudeTextual:
		return "Textual"
	default:
		return fmt.Sprintf("AltitudeType(%d)", int(t))
	}
}

// Altitude is a vertical limit of an airspace. Value is in feet for AMSL
// and AGL altitudes and in hundreds of feet for flight levels; Text holds
// the original text for textual altitudes.
type Altitude struct {
	Type  AltitudeType
	Value float64
	Text  string
}

func (a Altitude) String() string {
	switch a.Type {
	case AltitudeGND:
		return "GND"
	case AltitudeAMSL:
		return formatFeet(a.Value) + " ft AMSL"
	case AltitudeAGL:
		return formatFeet(a.Value) + " ft AGL"
	case AltitudeFlightLevel:
		return fmt.Sprintf("FL%03d", int(a.Value))
	case AltitudeUnlimited:
		return "UNL"
	default:
		return a.Text
	}
}

func formatFeet(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var (
	reFlightLevel = regexp.MustCompile(`^FL *([0-9]{1,3})$`)
	reFeet        = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?) *(?:FT|F|')? *(AMSL|MSL|ALT|AGL|AAL|SFC|GND)?$`)
)

// ParseAltitude parses altitudes as they appear in airspace definitions:
// "GND", "SFC", "UNL", "FL115", "1500 ft", "1500 ft AMSL", "500 ft AGL".
// Anything else is kept as a textual altitude.
func ParseAltitude(s string) Altitude {
	str := strings.ToUpper(strings.TrimSpace(s))
	switch str {
	case "GND", "SFC", "0":
		return Altitude{Type: AltitudeGND}
	case "UNL", "UNLIMITED", "UNLTD":
		return Altitude{Type: AltitudeUnlimited}
	}

	if m := reFlightLevel.FindStringSubmatch(str); m != nil {
		fl, _ := strconv.Atoi(m[1])
		return Altitude{Type: AltitudeFlightLevel, Value: float64(fl)}
	}
	if m := reFeet.FindStringSubmatch(str); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			switch m[2] {
			case "AGL", "AAL", "SFC", "GND":
				return Altitude{Type: AltitudeAGL, Value: v}
			default:
				return Altitude{Type: AltitudeAMSL, Value: v}
			}
		}
	}

	return Altitude{Type: AltitudeTextual, Text: strings.TrimSpace(s)}
}

func (a *Altitude) UnmarshalText(b []byte) error {
	*a = ParseAltitude(string(b))
	return nil
}

func (a Altitude) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
