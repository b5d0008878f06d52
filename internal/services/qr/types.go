package qr

import "image/color"

// Options are the inputs for rendering one payment QR code. Zero values for
// Size and BorderStyle resolve to the medium/simple defaults.
type Options struct {
	UpiID       string
	Name        string
	Amount      string
	Description string
	Size        string
	BorderStyle string
}

// Generated is the rendered result plus the resolved inputs, so callers can
// persist exactly what was encoded.
type Generated struct {
	Data        string `json:"data"` // base64 PNG data URL
	UpiURL      string `json:"upiUrl"`
	Size        string `json:"size"`
	BorderStyle string `json:"borderStyle"`
}

type borderPreset struct {
	dark     color.Color
	light    color.Color
	width    int
	override bool
}

var (
	inkDefault = color.RGBA{R: 0x2d, G: 0x34, B: 0x36, A: 0xff} // #2D3436
	inkAccent  = color.RGBA{R: 0x6c, G: 0x63, B: 0xff, A: 0xff} // #6C63FF
)

// Only simple/rounded/fancy override colors; none keeps the encoder default.
var borderPresets = map[string]borderPreset{
	"none":    {},
	"simple":  {dark: inkDefault, light: color.White, width: 1, override: true},
	"rounded": {dark: inkAccent, light: color.White, width: 2, override: true},
	"fancy":   {dark: inkAccent, light: color.White, width: 4, override: true},
}

var pixelSizes = map[string]int{
	"small":  200,
	"medium": 300,
	"large":  400,
}
