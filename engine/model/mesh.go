package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// cubeFace is one side of the cube: outward normal plus the in-plane axes the
// texture's U and V run along. U x V == Normal keeps the winding counter-clockwise.
type cubeFace struct {
	normal, u, v mgl32.Vec3
}

var cubeFaces = [6]cubeFace{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// Cube builds an axis-aligned cube centred on the origin with 24 vertices (four per
// face so each face gets its own normal and UVs) and 36 counter-clockwise indices.
// Tangents and bitangents are filled by ComputeTangents.
//
// Parameters:
//   - halfExtent: distance from the centre to each face
//
// Returns:
//   - []GPUVertex: the cube vertices
//   - []uint32: the triangle list indices
func Cube(halfExtent float32) ([]GPUVertex, []uint32) {
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range cubeFaces {
		base := uint32(len(vertices))
		center := f.normal.Mul(halfExtent)
		for i, c := range corners {
			p := center.Add(f.u.Mul(c[0] * halfExtent)).Add(f.v.Mul(c[1] * halfExtent))
			vertices = append(vertices, GPUVertex{
				Position: p,
				TexCoord: uvs[i],
				Normal:   f.normal,
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	ComputeTangents(vertices, indices)
	return vertices, indices
}

// ComputeTangents fills Tangent and Bitangent of every vertex referenced by indices from
// the triangle positions and UVs. Contributions of triangles sharing a vertex are summed
// and normalized. Triangles with degenerate UVs contribute nothing.
//
// Parameters:
//   - vertices: the vertices to update in place
//   - indices: triangle list indices into vertices
func ComputeTangents(vertices []GPUVertex, indices []uint32) {
	tangents := make([]mgl32.Vec3, len(vertices))
	bitangents := make([]mgl32.Vec3, len(vertices))

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		p0 := mgl32.Vec3(v0.Position)
		dp1 := mgl32.Vec3(v1.Position).Sub(p0)
		dp2 := mgl32.Vec3(v2.Position).Sub(p0)

		uv0 := mgl32.Vec2(v0.TexCoord)
		duv1 := mgl32.Vec2(v1.TexCoord).Sub(uv0)
		duv2 := mgl32.Vec2(v2.TexCoord).Sub(uv0)

		det := duv1[0]*duv2[1] - duv1[1]*duv2[0]
		if det == 0 {
			continue
		}
		r := 1 / det
		tangent := dp1.Mul(duv2[1]).Sub(dp2.Mul(duv1[1])).Mul(r)
		// V grows downward in image space, so the bitangent is flipped to point up the texture.
		bitangent := dp2.Mul(duv1[0]).Sub(dp1.Mul(duv2[0])).Mul(-r)

		for _, i := range [3]uint32{i0, i1, i2} {
			tangents[i] = tangents[i].Add(tangent)
			bitangents[i] = bitangents[i].Add(bitangent)
		}
	}

	for i := range vertices {
		if tangents[i].Len() > 0 {
			vertices[i].Tangent = tangents[i].Normalize()
		}
		if bitangents[i].Len() > 0 {
			vertices[i].Bitangent = bitangents[i].Normalize()
		}
	}
}
