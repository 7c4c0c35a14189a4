// Package geometry reconstructs render-ready triangle meshes from the
// element tree of a binary FBX file.
//
// The file format stores a mesh as deduplicated control points plus a
// sign-terminated polygon corner stream, with every attribute layer
// (normals, tangents, colors, UVs) free to use its own mapping and its own
// index array. This package triangulates the corner stream, reconciles the
// per-layer index spaces by splitting vertices where attribute
// combinations disagree, and emits buffers addressable through one shared
// index list per triangle corner.
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// MappingMode states what an attribute layer's values correspond to.
type MappingMode uint8

const (
	// ByPolygonVertex maps one value per loop corner.
	ByPolygonVertex MappingMode = iota
	// ByPolygon maps one value per face.
	ByPolygon
	// ByVertex maps one value per control point.
	ByVertex
)

func (m MappingMode) String() string {
	switch m {
	case ByPolygonVertex:
		return "ByPolygonVertex"
	case ByPolygon:
		return "ByPolygon"
	case ByVertex:
		return "ByVertex"
	}
	return fmt.Sprintf("MappingMode(%d)", uint8(m))
}

// ReferenceMode states whether layer values are aligned to their mapping
// directly or selected through a separate index array.
type ReferenceMode uint8

const (
	Direct ReferenceMode = iota
	IndexToDirect
)

func (r ReferenceMode) String() string {
	switch r {
	case Direct:
		return "Direct"
	case IndexToDirect:
		return "IndexToDirect"
	}
	return fmt.Sprintf("ReferenceMode(%d)", uint8(r))
}

// parseMappingMode recognizes the mapping strings written by exporters.
// "ByVertice" is the legacy spelling kept by several of them.
func parseMappingMode(s string) (MappingMode, error) {
	switch s {
	case "ByPolygonVertex":
		return ByPolygonVertex, nil
	case "ByPolygon":
		return ByPolygon, nil
	case "ByVertex", "ByVertice":
		return ByVertex, nil
	}
	return 0, fmt.Errorf("%w: mapping %q", ErrUnsupportedMapping, s)
}

func parseReferenceMode(s string) (ReferenceMode, error) {
	switch s {
	case "Direct":
		return Direct, nil
	case "IndexToDirect":
		return IndexToDirect, nil
	}
	return 0, fmt.Errorf("%w: reference %q", ErrUnsupportedMapping, s)
}

// Geometry is one assembled mesh. After assembly every non-empty attribute
// buffer has the same length as Positions, and Triangles holds flattened
// index triples into that unified vertex space. The per-corner index
// streams the assembly worked through are kept alongside the buffers.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Tangents  []mgl64.Vec3
	Colors    []mgl64.Vec4
	UVs       []mgl64.Vec2

	// Per-corner index streams, one entry per loop corner of the
	// triangulated polygon stream.
	PositionIndices []int32
	NormalIndices   []int32
	TangentIndices  []int32
	ColorIndices    []int32
	UVIndices       []int32

	// Triangles holds three unified vertex indices per triangle.
	Triangles []int32

	// Materials holds one material id per triangle. It stays empty when
	// the file declares a single material for the whole mesh.
	Materials []int32
}

// TriangleCount returns the number of assembled triangles.
func (g *Geometry) TriangleCount() int { return len(g.Triangles) / 3 }
