package widgets

import (
	"github.com/loom-ui/loom/pkg/core"
	"github.com/loom-ui/loom/pkg/graphics"
	"github.com/loom-ui/loom/pkg/render"
)

// Glyph metrics used for measurement until a text backend provides real
// shaping. Good enough for tests and tooling; the painter backend owns the
// final rasterized size.
const (
	glyphAdvance = 8.0
	lineHeight   = 16.0
)

// Text displays a string.
type Text struct {
	// Content is the text string to display.
	Content string
}

func (t Text) CreateElement() core.Element {
	return core.NewRenderObjectElement(t, nil)
}

func (t Text) Key() any {
	return nil
}

func (t Text) CreateRenderObject(ctx core.BuildContext) render.RenderObject {
	text := &renderText{content: t.Content}
	text.SetSelf(text)
	return text
}

func (t Text) UpdateRenderObject(ctx core.BuildContext, renderObject render.RenderObject) {
	if text, ok := renderObject.(*renderText); ok && text.content != t.Content {
		text.content = t.Content
		text.MarkNeedsLayout()
		text.MarkNeedsPaint()
	}
}

type renderText struct {
	render.BoxBase
	content string
}

func (r *renderText) Layout(constraints render.Constraints) {
	size := graphics.Size{
		Width:  float64(len([]rune(r.content))) * glyphAdvance,
		Height: lineHeight,
	}
	r.SetSize(constraints.Constrain(size))
	r.ClearDirty()
}

// TextContent exposes the displayed string for finders and the painter
// backend.
func (r *renderText) TextContent() string {
	return r.content
}
