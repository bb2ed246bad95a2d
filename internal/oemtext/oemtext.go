// Package oemtext decodes FAT short (8.3) file names from their on-disk
// OEM codepage into UTF-8. Short-name entries predate Unicode and store
// characters in an 8-bit OEM codepage (IBM PC code page 437 is by far the
// most common, and the only one this package decodes); golang.org/x/text
// already ships that table, so there is no reason to hand-roll a partial
// one.
package oemtext

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// DecodeShortName decodes an 11-byte raw short-name field (8-byte name +
// 3-byte extension, space-padded) into a display string of the form
// "NAME.EXT", or "NAME" if the extension is all spaces. Trailing spaces in
// each component are trimmed; the bytes are assumed CP437-encoded.
func DecodeShortName(raw [11]byte) string {
	name := decode(raw[:8])
	ext := decode(raw[8:11])
	if ext == "" {
		return name
	}
	return name + "." + ext
}

func decode(raw []byte) string {
	trimmed := strings.TrimRight(string(raw), " ")
	if trimmed == "" {
		return ""
	}
	out, err := charmap.CodePage437.NewDecoder().String(trimmed)
	if err != nil {
		return trimmed // Fall back to the raw bytes rather than fail a listing.
	}
	return out
}
