package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/fbxgeom/pkg/geometry"
)

// OBJ writes the scene's geometries as Wavefront OBJ text. Vertex
// numbering is global across objects, per the format; material ids become
// usemtl labels so downstream tools can still distinguish face groups.
// Texture coordinates keep the source's bottom-left origin, which OBJ
// shares.
func OBJ(w io.Writer, scene *geometry.Scene) error {
	bw := bufio.NewWriter(w)
	offset := 1

	for _, obj := range scene.Geometries() {
		g := obj.Geometry
		if g.TriangleCount() == 0 {
			continue
		}
		if _, err := fmt.Fprintf(bw, "o %s\n", displayName(scene, obj)); err != nil {
			return err
		}
		for _, p := range g.Positions {
			if _, err := fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2]); err != nil {
				return err
			}
		}
		for _, uv := range g.UVs {
			if _, err := fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1]); err != nil {
				return err
			}
		}
		for _, n := range g.Normals {
			if _, err := fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2]); err != nil {
				return err
			}
		}

		currentMaterial := int32(-1)
		haveMaterial := false
		for t := 0; t < g.TriangleCount(); t++ {
			if len(g.Materials) > 0 {
				if id := g.Materials[t]; id >= 0 && (!haveMaterial || id != currentMaterial) {
					if _, err := fmt.Fprintf(bw, "usemtl material_%d\n", id); err != nil {
						return err
					}
					currentMaterial = id
					haveMaterial = true
				}
			}
			if err := writeFace(bw, g, t, offset); err != nil {
				return err
			}
		}
		offset += len(g.Positions)
	}
	return bw.Flush()
}

// SaveOBJ writes the scene to path as an .obj file.
func SaveOBJ(scene *geometry.Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := OBJ(f, scene); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeFace emits one triangle, picking the index layout the present
// attributes call for. The unified vertex space means positions, UVs, and
// normals all share one index.
func writeFace(w io.Writer, g *geometry.Geometry, t, offset int) error {
	a := int(g.Triangles[t*3]) + offset
	b := int(g.Triangles[t*3+1]) + offset
	c := int(g.Triangles[t*3+2]) + offset

	var err error
	switch {
	case len(g.UVs) > 0 && len(g.Normals) > 0:
		_, err = fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	case len(g.UVs) > 0:
		_, err = fmt.Fprintf(w, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
	case len(g.Normals) > 0:
		_, err = fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	default:
		_, err = fmt.Fprintf(w, "f %d %d %d\n", a, b, c)
	}
	return err
}
