package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/truchet/pkg/errors"
)

var namedColors = map[string]color.NRGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"maroon":  {0x80, 0x00, 0x00, 0xff},
	"olive":   {0x80, 0x80, 0x00, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
	"ivory":   {0xff, 0xff, 0xf0, 0xff},
	"linen":   {0xfa, 0xf0, 0xe6, 0xff},
	"none":    {},
}

// ParseColor parses a colour keyword or hex string.
func ParseColor(s string) (color.NRGBA, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[key]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(key, "#")
	if !ok {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "unknown colour %q", s)
	}

	// expand #rgb and #rgba
	if len(hex) == 3 || len(hex) == 4 {
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "malformed hex colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "malformed hex colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ValidColor reports whether s parses.
func ValidColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}
