// util/text.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"unicode"
)

// Slugify turns a name like "EDDF CTR (Frankfurt)" into "eddf-ctr-frankfurt",
// suitable for use as an identifier.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, ch := range strings.ToLower(s) {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			if dash && b.Len() > 0 {
				b.WriteRune('-')
			}
			b.WriteRune(ch)
			dash = false
		} else {
			dash = true
		}
	}
	return b.String()
}

// CollapseBlankLines replaces each run of blank lines in s with a single
// blank line.
func CollapseBlankLines(s string) string {
	var lines []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			if blank {
				continue
			}
			blank = true
			line = ""
		} else {
			blank = false
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// HashStrings returns the hex-encoded SHA-256 of the given strings, each
// terminated with a NUL.
func HashStrings(s ...string) string {
	hash := sha256.New()
	for _, str := range s {
		io.WriteString(hash, str)
		hash.Write([]byte{0})
	}
	return hex.EncodeToString(hash.Sum(nil))
}
