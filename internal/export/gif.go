package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/viz"
)

const (
	charW      = 8
	charH      = 16
	captionPad = 20
)

// palette indices
const (
	idxBackground uint8 = iota
	idxDots
	idxText
	idxCurrent
	idxVisited
	idxFrontier
	idxActive
	idxMuted
)

func gifPalette(t viz.Theme) color.Palette {
	return color.Palette{
		viz.RGBA(t.Background),
		viz.RGBA(t.Secondary),
		viz.RGBA(t.Text),
		viz.RGBA(t.MarkColor(viz.MarkCurrent)),
		viz.RGBA(t.MarkColor(viz.MarkVisited)),
		viz.RGBA(t.MarkColor(viz.MarkFrontier)),
		viz.RGBA(t.MarkColor(viz.MarkActive)),
		viz.RGBA(t.MarkColor(viz.MarkMuted)),
	}
}

func markIndex(m viz.Mark) uint8 {
	switch m {
	case viz.MarkCurrent:
		return idxCurrent
	case viz.MarkVisited:
		return idxVisited
	case viz.MarkFrontier:
		return idxFrontier
	case viz.MarkActive:
		return idxActive
	case viz.MarkMuted:
		return idxMuted
	}
	return idxText
}

// RasterizeFrame draws one frame, with its narration, as a paletted image.
func RasterizeFrame(c *viz.Canvas, f frames.Frame, pal color.Palette) *image.Paletted {
	imgW, imgH := c.Width*charW, c.Height*charH+captionPad
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), pal)
	draw.Draw(img, img.Bounds(), &image.Uniform{C: pal[idxBackground]}, image.Point{}, draw.Src)

	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH-1; py++ {
						for px := 0; px < dotW-1; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idxDots)
						}
					}
				}
			}
		}
	}

	for _, l := range c.SortedLabels() {
		x, y := l.Col*charW, l.Row*charH
		w := len([]rune(l.Text)) * charW
		draw.Draw(img, image.Rect(x, y, x+w, y+charH), &image.Uniform{C: pal[idxBackground]}, image.Point{}, draw.Src)
		drawText(img, x, y+12, l.Text, pal[markIndex(l.Mark)])
	}

	drawText(img, 4, c.Height*charH+14, f.Describe(), pal[idxActive])
	return img
}

func drawText(img draw.Image, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// SequenceToGIF encodes every frame as one looping animation. The terminal
// frame is held three times longer.
func SequenceToGIF(w io.Writer, seq *frames.Sequence, theme viz.Theme, delay time.Duration) error {
	if seq.Len() == 0 {
		return frames.ErrEmptySequence
	}
	pal := gifPalette(theme)
	c := viz.NewFrameCanvas()
	cs := max(int(delay/(10*time.Millisecond)), 1)

	anim := gif.GIF{LoopCount: 0}
	for _, f := range seq.Frames() {
		viz.Draw(c, f.State)
		anim.Image = append(anim.Image, RasterizeFrame(c, f, pal))
		anim.Delay = append(anim.Delay, cs)
	}
	anim.Delay[len(anim.Delay)-1] = cs * 3
	return gif.EncodeAll(w, &anim)
}
