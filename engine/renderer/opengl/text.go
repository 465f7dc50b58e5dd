package opengl

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/spaghettifunk/brushwork/engine/assets/loaders"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

/**
 * @brief A line of bitmap font text on the local XY plane, starting at the
 * origin and reading along +X with +Y up. The pass drawing it binds the
 * font page as its texture.
 */
type Label struct {
	Font *loaders.BitmapFont
	Text string
	/** @brief World units per font pixel. */
	Scale float32
}

func (l *Label) Render(metadata.RenderInfo) {
	if l.Font == nil || l.Font.Page == nil || l.Text == "" {
		return
	}
	bounds := l.Font.Page.Bounds()
	pageW, pageH := float32(bounds.Dx()), float32(bounds.Dy())
	base := float32(l.Font.Baseline)

	gl.Begin(gl.QUADS)
	gl.Normal3f(0, 0, 1)
	pen := float32(0)
	var previous rune
	for i, r := range l.Text {
		g, ok := l.Font.Glyphs[r]
		if !ok {
			continue
		}
		if i > 0 {
			pen += float32(l.Font.Kerning(previous, r))
		}
		previous = r

		x0 := (pen + float32(g.XOffset)) * l.Scale
		x1 := x0 + float32(g.Width)*l.Scale
		y1 := (base - float32(g.YOffset)) * l.Scale
		y0 := y1 - float32(g.Height)*l.Scale
		s0, t0 := float32(g.X)/pageW, float32(g.Y)/pageH
		s1, t1 := float32(g.X+g.Width)/pageW, float32(g.Y+g.Height)/pageH

		// page rows are top-down
		gl.TexCoord2f(s0, t1)
		gl.Vertex3f(x0, y0, 0)
		gl.TexCoord2f(s1, t1)
		gl.Vertex3f(x1, y0, 0)
		gl.TexCoord2f(s1, t0)
		gl.Vertex3f(x1, y1, 0)
		gl.TexCoord2f(s0, t0)
		gl.Vertex3f(x0, y1, 0)

		pen += float32(g.XAdvance)
	}
	gl.End()
}
