package export

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/fbxgeom/pkg/geometry"
)

func quadGeometry() *geometry.Geometry {
	return &geometry.Geometry{
		Positions: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Normals:   []mgl64.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:       []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Triangles: []int32{0, 1, 2, 0, 2, 3},
		Materials: []int32{5, 8},
	}
}

func TestGLTFDocumentLayout(t *testing.T) {
	scene := geometry.NewScene()
	if _, err := scene.AddGeometry(42, "Geometry::quad", quadGeometry()); err != nil {
		t.Fatalf("AddGeometry: %v", err)
	}

	doc := GLTF(scene)

	if len(doc.Meshes) != 1 {
		t.Fatalf("meshes = %d, want 1", len(doc.Meshes))
	}
	mesh := doc.Meshes[0]
	if mesh.Name != "Geometry::quad" {
		t.Fatalf("mesh name = %q", mesh.Name)
	}
	if len(mesh.Primitives) != 2 {
		t.Fatalf("primitives = %d, want one per material id", len(mesh.Primitives))
	}

	for _, prim := range mesh.Primitives {
		pos, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			t.Fatalf("primitive lacks POSITION")
		}
		if got := int(doc.Accessors[pos].Count); got != 4 {
			t.Fatalf("position accessor count = %d, want 4", got)
		}
		if _, ok := prim.Attributes[gltf.NORMAL]; !ok {
			t.Fatalf("primitive lacks NORMAL")
		}
		if _, ok := prim.Attributes[gltf.TEXCOORD_0]; !ok {
			t.Fatalf("primitive lacks TEXCOORD_0")
		}
		if prim.Indices == nil {
			t.Fatalf("primitive lacks indices")
		}
		if got := int(doc.Accessors[*prim.Indices].Count); got != 3 {
			t.Fatalf("index accessor count = %d, want 3", got)
		}
		if prim.Material == nil {
			t.Fatalf("primitive lacks material")
		}
	}

	// Groups come out ordered by material id.
	if name := doc.Materials[*mesh.Primitives[0].Material].Name; name != "material_5" {
		t.Fatalf("first primitive material = %q, want material_5", name)
	}
	if name := doc.Materials[*mesh.Primitives[1].Material].Name; name != "material_8" {
		t.Fatalf("second primitive material = %q, want material_8", name)
	}

	if len(doc.Nodes) != 1 || doc.Nodes[0].Mesh == nil || *doc.Nodes[0].Mesh != 0 {
		t.Fatalf("nodes = %+v", doc.Nodes)
	}
	if len(doc.Scenes[0].Nodes) != 1 || doc.Scenes[0].Nodes[0] != 0 {
		t.Fatalf("scene nodes = %v", doc.Scenes[0].Nodes)
	}
}

func TestGLTFUniformMaterialSinglePrimitive(t *testing.T) {
	g := quadGeometry()
	g.Materials = nil
	scene := geometry.NewScene()
	if _, err := scene.AddGeometry(1, "Geometry::quad", g); err != nil {
		t.Fatalf("AddGeometry: %v", err)
	}

	doc := GLTF(scene)
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("meshes/primitives = %d/%d, want 1/1", len(doc.Meshes), len(doc.Meshes[0].Primitives))
	}
	prim := doc.Meshes[0].Primitives[0]
	if prim.Material != nil {
		t.Fatalf("uniform mesh got material %d", *prim.Material)
	}
	if got := int(doc.Accessors[*prim.Indices].Count); got != 6 {
		t.Fatalf("index accessor count = %d, want 6", got)
	}
	if len(doc.Materials) != 0 {
		t.Fatalf("materials created for uniform mesh: %d", len(doc.Materials))
	}
}

func TestGLTFSkipsEmptyGeometry(t *testing.T) {
	scene := geometry.NewScene()
	if _, err := scene.AddGeometry(1, "Geometry::empty", &geometry.Geometry{}); err != nil {
		t.Fatalf("AddGeometry: %v", err)
	}

	doc := GLTF(scene)
	if len(doc.Meshes) != 0 || len(doc.Nodes) != 0 {
		t.Fatalf("empty geometry produced meshes: %d nodes: %d", len(doc.Meshes), len(doc.Nodes))
	}
}

func TestGLTFPrefersMeshObjectName(t *testing.T) {
	scene := geometry.NewScene()
	if _, err := scene.AddGeometry(42, "Geometry::quad", quadGeometry()); err != nil {
		t.Fatalf("AddGeometry: %v", err)
	}
	if _, err := scene.AddMesh(77, "Model::display", 42); err != nil {
		t.Fatalf("AddMesh: %v", err)
	}

	doc := GLTF(scene)
	if doc.Meshes[0].Name != "Model::display" {
		t.Fatalf("mesh name = %q, want the linked model's name", doc.Meshes[0].Name)
	}
}

func TestNarrowingHelpers(t *testing.T) {
	uvs := uvsTo32([]mgl64.Vec2{{0.25, 0.25}})
	if uvs[0] != [2]float32{0.25, 0.75} {
		t.Fatalf("uv = %v, want V flipped to 0.75", uvs[0])
	}

	tangents := tangentsTo32([]mgl64.Vec3{{1, 0, 0}})
	if tangents[0] != [4]float32{1, 0, 0, 1} {
		t.Fatalf("tangent = %v, want w == 1", tangents[0])
	}

	colors := vec4To32([]mgl64.Vec4{{0.5, 0.25, 1, 1}})
	if colors[0] != [4]float32{0.5, 0.25, 1, 1} {
		t.Fatalf("color = %v", colors[0])
	}

	v3 := vec3To32([]mgl64.Vec3{{1.5, -2, 0}})
	if v3[0] != [3]float32{1.5, -2, 0} {
		t.Fatalf("vec3 = %v", v3[0])
	}
}

func TestMaterialGroupsKeepTriangleOrder(t *testing.T) {
	g := &geometry.Geometry{
		Positions: make([]mgl64.Vec3, 6),
		Triangles: []int32{0, 1, 2, 3, 4, 5, 0, 2, 4},
		Materials: []int32{9, 3, 9},
	}

	groups := materialGroups(g)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].id != 3 || groups[1].id != 9 {
		t.Fatalf("group order = %d, %d, want 3, 9", groups[0].id, groups[1].id)
	}
	want9 := []uint32{0, 1, 2, 0, 2, 4}
	for i, v := range groups[1].indices {
		if v != want9[i] {
			t.Fatalf("material 9 indices = %v, want %v", groups[1].indices, want9)
		}
	}
}
