package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// rgb holds the 24-bit value used by pixel frontends for each color.
var rgb = map[Color][3]uint8{
	ColorDefault:       {0xe2, 0xe8, 0xf0},
	ColorRed:           {0xf0, 0x00, 0x00},
	ColorGreen:         {0x00, 0xf0, 0x00},
	ColorYellow:        {0xf0, 0xf0, 0x00},
	ColorBlue:          {0x00, 0x00, 0xf0},
	ColorMagenta:       {0xa0, 0x00, 0xf0},
	ColorCyan:          {0x00, 0xf0, 0xf0},
	ColorWhite:         {0xe2, 0xe8, 0xf0},
	ColorBrightRed:     {0xff, 0x55, 0x55},
	ColorBrightGreen:   {0x55, 0xff, 0x55},
	ColorBrightYellow:  {0xff, 0xff, 0x55},
	ColorBrightBlue:    {0x55, 0x55, 0xff},
	ColorBrightMagenta: {0xff, 0x55, 0xff},
	ColorBrightCyan:    {0x55, 0xff, 0xff},
	ColorBrightWhite:   {0xff, 0xff, 0xff},
	ColorOrange:        {0xf0, 0xa0, 0x00},
	ColorGray:          {0x8a, 0x8a, 0x8a},
}

// RGB returns the red, green and blue components of the color.
func (c Color) RGB() (r, g, b uint8) {
	v, ok := rgb[c]
	if !ok {
		v = rgb[ColorDefault]
	}
	return v[0], v[1], v[2]
}
