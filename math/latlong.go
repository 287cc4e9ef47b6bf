// math/latlong.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	"regexp"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////
// Point2LL

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float64

func (p Point2LL) Longitude() float64 {
	return p[0]
}

func (p Point2LL) Latitude() float64 {
	return p[1]
}

var (
	// pair of floats (no exponents)
	reWaypointFloat = regexp.MustCompile(`^(\-?[0-9]+\.[0-9]+), *(\-?[0-9]+\.[0-9]+)$`)
	// https://en.wikipedia.org/wiki/ISO_6709#String_expression_(Annex_H)
	// e.g. +403527.580-0734452.955
	reISO6709H = regexp.MustCompile(`^([-+][0-9][0-9])([0-9][0-9])([0-9][0-9])\.([0-9][0-9][0-9])([-+][0-9][0-9][0-9])([0-9][0-9])([0-9][0-9])\.([0-9][0-9][0-9])$`)
	// Aeronautical degrees-minutes-seconds as used in AIP airspace
	// listings, e.g. 502257N 0033739W
	reCompactDMS = regexp.MustCompile(`^([0-9]{2})([0-9]{2})([0-9]{2}(?:\.[0-9]+)?)([NS]) *([0-9]{3})([0-9]{2})([0-9]{2}(?:\.[0-9]+)?)([EW])$`)
)

// Parse waypoints of the form "N40.37.58.400, W073.46.17.000".
func tryParseWaypointDotted(b []byte) (Point2LL, bool) {
	if len(b) == 0 || (b[0] != 'N' && b[0] != 'S') {
		return Point2LL{}, false
	}
	negateLatitude := b[0] == 'S'

	// Skip over the N/S and parse the four dotted numbers following it
	b = b[1:]
	latitude, n, ok := tryParseWaypointNumbers(b)
	if !ok {
		return Point2LL{}, false
	}
	if negateLatitude {
		latitude = -latitude
	}
	b = b[n:]

	// Skip comma
	if len(b) == 0 || b[0] != ',' {
		return Point2LL{}, false
	}
	b = b[1:]

	// Skip optional space
	if len(b) > 0 && b[0] == ' ' {
		b = b[1:]
	}

	// Onward to E/W
	if len(b) == 0 || (b[0] != 'E' && b[0] != 'W') {
		return Point2LL{}, false
	}
	negateLongitude := b[0] == 'W'

	b = b[1:]
	longitude, n, ok := tryParseWaypointNumbers(b)
	if !ok || n != len(b) {
		return Point2LL{}, false
	}
	if negateLongitude {
		longitude = -longitude
	}

	return Point2LL{longitude, latitude}, true
}

// Parses a latlong of the form aaa.bbb.ccc.ddd. Returns the latlong, the
// number of bytes of b consumed, and a bool indicating success or failure.
func tryParseWaypointNumbers(b []byte) (float64, int, bool) {
	n := 0
	var ll float64

	// Scan to the end of the current number group; return
	// the number of bytes it uses.
	scan := func(b []byte) int {
		for i, v := range b {
			if v == '.' || v == ',' {
				return i
			}
		}
		return len(b)
	}

	for i := 0; i < 4; i++ {
		end := scan(b)
		if end == 0 {
			return 0, 0, false
		}

		value := 0
		for _, ch := range b[:end] {
			if ch < '0' || ch > '9' {
				return 0, 0, false
			}
			value *= 10
			value += int(ch - '0')
		}
		if i == 3 {
			// Treat the last set of digits as a decimal, so that
			// Nxx.yy.zz.1 is handled like Nxx.yy.zz.100.
			for j := end; j < 3; j++ {
				value *= 10
			}
		}

		scales := [4]float64{1, 60, 3600, 3600000}
		ll += float64(value) / scales[i]
		n += end
		b = b[end:]

		if i < 3 {
			if len(b) == 0 || b[0] != '.' {
				return 0, 0, false
			}
			b = b[1:]
			n++
		}
	}

	return ll, n, true
}

// ParseLatLong parses a position given in one of the formats found in
// airspace definitions:
//
//	N40.37.58.400, W073.46.17.000
//	40.6328888, -73.771385
//	+403758.400-0734617.000
//	403758N 0734617W
func ParseLatLong(llstr []byte) (Point2LL, error) {
	if p, ok := tryParseWaypointDotted(llstr); ok {
		return p, nil
	} else if strs := reWaypointFloat.FindStringSubmatch(string(llstr)); len(strs) == 3 {
		var p Point2LL
		if l, err := strconv.ParseFloat(strs[1], 64); err != nil {
			return Point2LL{}, err
		} else {
			p[1] = l
		}
		if l, err := strconv.ParseFloat(strs[2], 64); err != nil {
			return Point2LL{}, err
		} else {
			p[0] = l
		}
		return p, nil
	} else if strs := reISO6709H.FindStringSubmatch(string(llstr)); len(strs) == 9 {
		parse := func(deg, min, sec, frac string) (float64, error) {
			d, err := strconv.Atoi(deg)
			if err != nil {
				return 0, err
			}
			m, err := strconv.Atoi(min)
			if err != nil {
				return 0, err
			}
			s, err := strconv.Atoi(sec)
			if err != nil {
				return 0, err
			}
			f, err := strconv.Atoi(frac)
			if err != nil {
				return 0, err
			}
			sgn := 1.
			if deg[0] == '-' {
				sgn = -1
			}
			d = Abs(d)
			return sgn * (float64(d) + float64(m)/60 + float64(s)/3600 + float64(f)/3600000), nil
		}

		var p Point2LL
		var err error
		p[1], err = parse(strs[1], strs[2], strs[3], strs[4])
		if err != nil {
			return Point2LL{}, err
		}
		p[0], err = parse(strs[5], strs[6], strs[7], strs[8])
		if err != nil {
			return Point2LL{}, err
		}
		return p, nil
	} else if strs := reCompactDMS.FindStringSubmatch(string(llstr)); len(strs) == 9 {
		parse := func(deg, min, sec string, limit int) (float64, error) {
			d, _ := strconv.Atoi(deg)
			m, _ := strconv.Atoi(min)
			s, err := strconv.ParseFloat(sec, 64)
			if err != nil {
				return 0, err
			}
			if d > limit || m >= 60 || s >= 60 {
				return 0, fmt.Errorf("%s: out of range latlong component", llstr)
			}
			return float64(d) + float64(m)/60 + s/3600, nil
		}

		var p Point2LL
		var err error
		if p[1], err = parse(strs[1], strs[2], strs[3], 90); err != nil {
			return Point2LL{}, err
		}
		if strs[4] == "S" {
			p[1] = -p[1]
		}
		if p[0], err = parse(strs[5], strs[6], strs[7], 180); err != nil {
			return Point2LL{}, err
		}
		if strs[8] == "W" {
			p[0] = -p[0]
		}
		return p, nil
	} else {
		return Point2LL{}, fmt.Errorf("%s: invalid latlong string", llstr)
	}
}

// UnmarshalText allows Point2LLs to be given as strings in YAML and JSON
// definition files.
func (p *Point2LL) UnmarshalText(b []byte) error {
	pt, err := ParseLatLong(b)
	if err != nil {
		return err
	}
	*p = pt
	return nil
}
