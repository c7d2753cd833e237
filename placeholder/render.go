package placeholder

import (
	"bytes"
	"image/color"

	"github.com/deckslim/deckslim/common"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

const placeholderWidth = 480
const placeholderHeight = 270

// renderBase draws the visible placeholder: a flat background, a kind glyph
// and the original file name. Purely cosmetic - restoration never looks at
// the pixels.
func renderBase(kind string, label string) ([]byte, error) {
	c := gg.NewContext(placeholderWidth, placeholderHeight)

	background := color.RGBA{R: 236, G: 239, B: 241, A: 255}
	accent := color.RGBA{R: 96, G: 125, B: 139, A: 255}

	c.SetColor(background)
	c.DrawRectangle(0, 0, placeholderWidth, placeholderHeight)
	c.Fill()

	cx := float64(placeholderWidth) / 2
	cy := float64(placeholderHeight)/2 - 20

	c.SetColor(accent)
	if kind == common.KindVideo {
		c.DrawCircle(cx, cy, 52)
		c.SetLineWidth(8)
		c.Stroke()
		c.MoveTo(cx-16, cy-24)
		c.LineTo(cx-16, cy+24)
		c.LineTo(cx+26, cy)
		c.ClosePath()
		c.Fill()
	} else {
		c.DrawRectangle(cx-56, cy-40, 112, 80)
		c.SetLineWidth(8)
		c.Stroke()
		c.DrawCircle(cx-28, cy-16, 10)
		c.Fill()
		c.MoveTo(cx-44, cy+28)
		c.LineTo(cx-8, cy-8)
		c.LineTo(cx+16, cy+12)
		c.LineTo(cx+32, cy)
		c.LineTo(cx+44, cy+28)
		c.ClosePath()
		c.Fill()
	}

	f, err := truetype.Parse(gosmallcaps.TTF)
	if err != nil {
		return nil, err
	}
	c.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 22}))
	c.SetColor(color.Black)
	if len(label) > 40 {
		label = label[:37] + "..."
	}
	c.DrawStringAnchored(label, cx, cy+80, 0.5, 0.5)

	buf := &bytes.Buffer{}
	if err = c.EncodePNG(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
