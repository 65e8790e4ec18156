// Package hud draws a text overlay naming the active pattern and speed
// onto a raster frame.
package hud

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/san-kum/patternlab/internal/anim"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const DefaultFontSize = 14.0

type Overlay struct {
	face    font.Face
	size    float64
	padding float64
	Text    color.Color
	Panel   color.Color
}

func New(size float64) (*Overlay, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &Overlay{
		face:    face,
		size:    size,
		padding: size / 2,
		Text:    color.NRGBA{0, 255, 0, 255},
		Panel:   color.NRGBA{0, 0, 0, 160},
	}, nil
}

// Lines formats the status shown for st.
func Lines(st anim.State, label string) []string {
	return []string{
		fmt.Sprintf("pattern %s", st.Pattern),
		fmt.Sprintf("speed   %s", label),
		fmt.Sprintf("t       %.2f", st.Elapsed),
	}
}

// Draw paints lines in the top-left corner of dc on a translucent panel.
func (o *Overlay) Draw(dc *gg.Context, lines []string) {
	if len(lines) == 0 {
		return
	}
	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.SetFontFace(o.face)

	lineH := o.size * 1.3
	var maxW float64
	for _, l := range lines {
		if w, _ := dc.MeasureString(l); w > maxW {
			maxW = w
		}
	}

	dc.SetColor(o.Panel)
	dc.DrawRectangle(0, 0, maxW+2*o.padding, lineH*float64(len(lines))+2*o.padding)
	dc.Fill()

	dc.SetColor(o.Text)
	for i, l := range lines {
		y := o.padding + lineH*float64(i) + o.size
		dc.DrawString(l, o.padding, y)
	}
}

// Close releases the font face.
func (o *Overlay) Close() error {
	return o.face.Close()
}
