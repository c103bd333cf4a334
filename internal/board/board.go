// Package board holds the read-only canvas state served by the info and
// data endpoints. The canvas engine owns placement; this service only
// exposes the board's shape and current bytes.
package board

// Board is the canvas metadata plus one byte of palette index per pixel.
type Board struct {
	width      int
	height     int
	palette    []string
	captchaKey string
	data       []byte
}

// Info is the board metadata document served at /info.
type Info struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Palette    []string `json:"palette"`
	CaptchaKey string   `json:"captchaKey"`
}

// New allocates a blank board of the given dimensions.
func New(width, height int, palette []string, captchaKey string) *Board {
	return &Board{
		width:      width,
		height:     height,
		palette:    palette,
		captchaKey: captchaKey,
		data:       make([]byte, width*height),
	}
}

// Info returns the board metadata snapshot.
func (b *Board) Info() Info {
	return Info{
		Width:      b.width,
		Height:     b.height,
		Palette:    b.palette,
		CaptchaKey: b.captchaKey,
	}
}

// Data returns the raw board bytes, one palette index per pixel.
func (b *Board) Data() []byte {
	return b.data
}

// Contains reports whether (x, y) is a valid board coordinate.
func (b *Board) Contains(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}
