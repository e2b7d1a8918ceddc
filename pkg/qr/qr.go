// Package qr turns text payloads into QR module grids, wrapping the
// go-qrcode encoder and adding payload formatting for common content
// types (wifi credentials, contacts, phone numbers and so on).
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Faultbox/qrforge/pkg/grid"
)

// Encoding errors.
var (
	ErrBadLevel  = errors.New("qr: unknown error correction level")
	ErrBadBorder = errors.New("qr: border must not be negative")
	ErrEmptyData = errors.New("qr: nothing to encode")
)

var levels = map[string]qrcode.RecoveryLevel{
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

// ParseLevel maps a level name to the encoder's recovery level.
// Accepted names are low (~7%), medium (~15%), high (~25%) and
// highest (~30%).
func ParseLevel(s string) (qrcode.RecoveryLevel, error) {
	if lvl, ok := levels[s]; ok {
		return lvl, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadLevel, s)
}

// Encode encodes content as a QR symbol and returns its module grid
// with a quiet zone of border background cells on every side. Dark
// modules become ink cells.
func Encode(content, level string, border int) (*grid.Grid, error) {
	if content == "" {
		return nil, ErrEmptyData
	}
	if border < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadBorder, border)
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(content, lvl)
	if err != nil {
		return nil, fmt.Errorf("qr: encoding: %w", err)
	}
	code.DisableBorder = true

	symbol, err := grid.FromBitmap(code.Bitmap())
	if err != nil {
		return nil, fmt.Errorf("qr: converting bitmap: %w", err)
	}
	if border == 0 {
		return symbol, nil
	}
	return padQuietZone(symbol, border)
}

// padQuietZone re-embeds the symbol in a background margin of the
// given cell thickness.
func padQuietZone(g *grid.Grid, border int) (*grid.Grid, error) {
	padded, err := grid.New(g.Width()+2*border, g.Height()+2*border)
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			padded.Set(x+border, y+border, g.At(x, y))
		}
	}
	return padded, nil
}
