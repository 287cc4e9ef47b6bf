// aviation/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

var (
	ErrInvalidDefinition = errors.New("Invalid airspace definition")
	ErrUnknownFormat     = errors.New("Unknown airspace definition format")
)
