package opengl

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

type boxFace struct {
	normal  math.Vec3
	corners [4]math.Vec3
}

// unit cube faces, counter-clockwise seen from outside
var boxFaces = [6]boxFace{
	{math.NewVec3(1, 0, 0), [4]math.Vec3{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1}}},
	{math.NewVec3(-1, 0, 0), [4]math.Vec3{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}}},
	{math.NewVec3(0, 1, 0), [4]math.Vec3{{X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}}},
	{math.NewVec3(0, -1, 0), [4]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}}},
	{math.NewVec3(0, 0, 1), [4]math.Vec3{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1}}},
	{math.NewVec3(0, 0, -1), [4]math.Vec3{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}}},
}

var boxUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

/**
 * @brief An axis aligned brush drawn in immediate mode. Texture coordinates
 * are repeated TextureScale times across each face; with camera cube mapping
 * the vertex positions are used as 3D texture coordinates instead.
 */
type Box struct {
	Min, Max     math.Vec3
	TextureScale float32
}

func NewBox(mins, maxs math.Vec3) *Box {
	return &Box{Min: mins, Max: maxs, TextureScale: 1}
}

func (b *Box) Render(info metadata.RenderInfo) {
	size := b.Max.Sub(b.Min)
	cube := info.CubeMapMode == metadata.CubeMapCamera

	gl.Begin(gl.QUADS)
	for _, face := range boxFaces {
		gl.Normal3f(face.normal.X, face.normal.Y, face.normal.Z)
		for i, c := range face.corners {
			v := b.Min.Add(c.Mul(size))
			if cube {
				gl.TexCoord3f(v.X, v.Y, v.Z)
			} else {
				gl.TexCoord2f(boxUVs[i][0]*b.TextureScale, boxUVs[i][1]*b.TextureScale)
			}
			gl.Vertex3f(v.X, v.Y, v.Z)
		}
	}
	gl.End()
}

/**
 * @brief The editor grid on the XY plane, drawn as lines every Spacing units
 * out to Extent in each direction.
 */
type Grid struct {
	Extent  float32
	Spacing float32
}

func (g *Grid) Render(metadata.RenderInfo) {
	if g.Spacing <= 0 {
		return
	}
	gl.Begin(gl.LINES)
	for p := -g.Extent; p <= g.Extent; p += g.Spacing {
		gl.Vertex3f(p, -g.Extent, 0)
		gl.Vertex3f(p, g.Extent, 0)
		gl.Vertex3f(-g.Extent, p, 0)
		gl.Vertex3f(g.Extent, p, 0)
	}
	gl.End()
}
