package threemf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadColor reports an unparseable color value.
var ErrBadColor = errors.New("threemf: unknown color")

// Color is an sRGB color with alpha, serialized as #RRGGBBAA.
type Color struct {
	R, G, B, A uint8
}

// String returns the 3MF display-color form.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

var namedColors = map[string]Color{
	"white":   {255, 255, 255, 255},
	"black":   {0, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"silver":  {192, 192, 192, 255},
	"gold":    {255, 215, 0, 255},
}

// ParseColor accepts a named color or a #RRGGBB / #RRGGBBAA hex code.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 9) {
		v, err := strconv.ParseUint(name[1:], 16, 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		c := Color{A: 255}
		if len(name) == 9 {
			c.A = uint8(v & 0xFF)
			v >>= 8
		}
		c.B = uint8(v & 0xFF)
		c.G = uint8(v >> 8 & 0xFF)
		c.R = uint8(v >> 16 & 0xFF)
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}
