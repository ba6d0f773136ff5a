package scene

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"halo/gfx/fb"
)

const labelLineHeight = 12

// Label draws a single line of text with its baseline at Y.
type Label struct {
	props Props
	text  string
	color color.RGBA
	font  tinyfont.Fonter
}

func NewLabel(text string, x, y int16, c color.RGBA) *Label {
	return &Label{
		props: Props{X: x, Y: y, Scale: 1, Opacity: 0xff},
		text:  text,
		color: c,
		font:  &proggy.TinySZ8pt7b,
	}
}

func (l *Label) Props() *Props { return &l.props }

// SetText replaces the text. The caller invalidates the union of the old
// and new bounds; the label cannot see the stage.
func (l *Label) SetText(text string) { l.text = text }

func (l *Label) Text() string { return l.text }

func (l *Label) Bounds() image.Rectangle {
	_, w := tinyfont.LineWidth(l.font, l.text)
	return image.Rect(
		int(l.props.X), int(l.props.Y)-labelLineHeight,
		int(l.props.X)+int(w), int(l.props.Y)+4,
	)
}

func (l *Label) Draw(v *fb.View) {
	if l.props.Hidden {
		return
	}
	tinyfont.WriteLine(v, l.font, l.props.X, l.props.Y, l.text, shade(l.color, l.props.Opacity))
}
