// czml/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package czml

import "errors"

var (
	ErrUnknownAltitudeType = errors.New("Unknown altitude type")
	ErrUnknownGeometry     = errors.New("Unknown airspace geometry")
)
