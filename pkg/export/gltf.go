// Package export writes assembled scenes out as interchange files. The
// unified vertex space produced by the geometry package maps one-to-one
// onto single-index-buffer formats, so exporters here never re-split
// vertices.
package export

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/fbxgeom/pkg/geometry"
)

// GLTF builds a glTF 2.0 document holding every assembled geometry of the
// scene. Geometries without triangles are skipped. Per-triangle material
// ids become one primitive per id, sharing the mesh's attribute
// accessors; ids map to bare placeholder materials since shading
// parameters are not part of the assembled record.
func GLTF(scene *geometry.Scene) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "fbxgeom"

	materials := make(map[int32]uint32)
	for _, obj := range scene.Geometries() {
		g := obj.Geometry
		if g.TriangleCount() == 0 {
			continue
		}

		attrs := gltf.Attribute{
			gltf.POSITION: modeler.WritePosition(doc, vec3To32(g.Positions)),
		}
		if len(g.Normals) > 0 {
			attrs[gltf.NORMAL] = modeler.WriteNormal(doc, vec3To32(g.Normals))
		}
		if len(g.Tangents) > 0 {
			attrs[gltf.TANGENT] = modeler.WriteTangent(doc, tangentsTo32(g.Tangents))
		}
		if len(g.Colors) > 0 {
			attrs[gltf.COLOR_0] = modeler.WriteColor(doc, vec4To32(g.Colors))
		}
		if len(g.UVs) > 0 {
			attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, uvsTo32(g.UVs))
		}

		name := displayName(scene, obj)
		mesh := &gltf.Mesh{Name: name}
		for _, group := range materialGroups(g) {
			prim := &gltf.Primitive{
				Attributes: attrs,
				Indices:    gltf.Index(modeler.WriteIndices(doc, group.indices)),
			}
			if group.id >= 0 {
				prim.Material = gltf.Index(materialFor(doc, materials, group.id))
			}
			mesh.Primitives = append(mesh.Primitives, prim)
		}

		doc.Meshes = append(doc.Meshes, mesh)
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return doc
}

// SaveGLTF writes the scene to path as a JSON-flavored .gltf file.
func SaveGLTF(scene *geometry.Scene, path string) error {
	return gltf.Save(GLTF(scene), path)
}

// displayName prefers the name of a mesh object that renders the
// geometry over the geometry's own name.
func displayName(scene *geometry.Scene, obj *geometry.Object) string {
	for _, m := range scene.Meshes() {
		if m.GeometryID == obj.ID && m.Name != "" {
			return m.Name
		}
	}
	if obj.Name != "" {
		return obj.Name
	}
	return fmt.Sprintf("geometry_%d", obj.ID)
}

type indexGroup struct {
	id      int32
	indices []uint32
}

// materialGroups partitions the triangle list by material id, ascending,
// keeping triangle order inside each group. A geometry without materials
// yields a single unkeyed group.
func materialGroups(g *geometry.Geometry) []indexGroup {
	if len(g.Materials) == 0 {
		indices := make([]uint32, len(g.Triangles))
		for i, v := range g.Triangles {
			indices[i] = uint32(v)
		}
		return []indexGroup{{id: -1, indices: indices}}
	}

	byID := make(map[int32][]uint32)
	for t := 0; t < g.TriangleCount(); t++ {
		id := g.Materials[t]
		byID[id] = append(byID[id],
			uint32(g.Triangles[t*3]),
			uint32(g.Triangles[t*3+1]),
			uint32(g.Triangles[t*3+2]),
		)
	}
	ids := make([]int32, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	groups := make([]indexGroup, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, indexGroup{id: id, indices: byID[id]})
	}
	return groups
}

// materialFor returns the document material index for a file material id,
// creating a named placeholder on first use.
func materialFor(doc *gltf.Document, seen map[int32]uint32, id int32) uint32 {
	if idx, ok := seen[id]; ok {
		return idx
	}
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: fmt.Sprintf("material_%d", id),
	})
	idx := uint32(len(doc.Materials) - 1)
	seen[id] = idx
	return idx
}

func vec3To32(in []mgl64.Vec3) [][3]float32 {
	out := make([][3]float32, len(in))
	for i, v := range in {
		out[i] = [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
	}
	return out
}

// tangentsTo32 widens tangents to the four components glTF requires,
// defaulting the handedness to +1.
func tangentsTo32(in []mgl64.Vec3) [][4]float32 {
	out := make([][4]float32, len(in))
	for i, v := range in {
		out[i] = [4]float32{float32(v[0]), float32(v[1]), float32(v[2]), 1}
	}
	return out
}

func vec4To32(in []mgl64.Vec4) [][4]float32 {
	out := make([][4]float32, len(in))
	for i, v := range in {
		out[i] = [4]float32{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
	}
	return out
}

// uvsTo32 flips V while narrowing: the source format counts V from the
// bottom of the texture, glTF from the top.
func uvsTo32(in []mgl64.Vec2) [][2]float32 {
	out := make([][2]float32, len(in))
	for i, v := range in {
		out[i] = [2]float32{float32(v[0]), float32(1 - v[1])}
	}
	return out
}
