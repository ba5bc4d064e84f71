package parser

import (
	"strconv"
	"strings"
)

// parseUint32 parses a numeric token: 0x hexadecimal, 0b binary, 0o octal,
// decimal otherwise.
func parseUint32(text string) (uint32, error) {
	base, digits := 10, text
	if len(text) >= 2 && text[0] == '0' {
		switch strings.ToLower(text[1:2]) {
		case "x":
			base, digits = 16, text[2:]
		case "b":
			base, digits = 2, text[2:]
		case "o":
			base, digits = 8, text[2:]
		}
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
