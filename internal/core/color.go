package core

// Color is a foreground color for a screen cell.
// The platform maps each one to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGray
	ColorPink
	ColorOrange
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite

	colorCount
)

// ansiCodes indexes terminal color codes by Color; "" keeps the terminal default.
var ansiCodes = [colorCount]string{
	ColorRed:           "1",
	ColorGray:          "245",
	ColorPink:          "213",
	ColorOrange:        "208",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
}

// ANSI returns the 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansiCodes[c]
}
