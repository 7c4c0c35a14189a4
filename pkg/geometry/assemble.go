package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/fbxgeom/pkg/fbxtree"
)

// Options selects which optional attribute layers an assembly reads.
// A disabled layer is treated as absent from the file.
type Options struct {
	Normals   bool
	Tangents  bool
	Colors    bool
	UVs       bool
	Materials bool
}

// DefaultOptions imports every layer the file carries.
func DefaultOptions() Options {
	return Options{Normals: true, Tangents: true, Colors: true, UVs: true, Materials: true}
}

// AssembleGeometry reconstructs one render-ready mesh from a Geometry
// element: it decodes control points and the polygon corner stream,
// triangulates, reads the optional attribute layers, then expands and
// remaps every buffer into one unified vertex space.
//
// Any failure discards the partial record; the element tree is never
// modified.
func AssembleGeometry(doc *fbxtree.Document, elem fbxtree.NodeID, opts Options) (*Geometry, error) {
	verticesProp := firstPropertyOfChild(doc, elem, "Vertices")
	if verticesProp == fbxtree.NilProp {
		return nil, fmt.Errorf("%w: Vertices", ErrMissingNode)
	}
	polygonsProp := firstPropertyOfChild(doc, elem, "PolygonVertexIndex")
	if polygonsProp == fbxtree.NilProp {
		return nil, fmt.Errorf("%w: PolygonVertexIndex", ErrMissingNode)
	}

	g := &Geometry{}
	var err error
	if g.Positions, err = doc.Vec3Array(verticesProp); err != nil {
		return nil, fmt.Errorf("decode Vertices: %w", err)
	}
	raw, err := doc.Int32Array(polygonsProp)
	if err != nil {
		return nil, fmt.Errorf("decode PolygonVertexIndex: %w", err)
	}

	var toOld []int32
	g.Triangles, toOld, g.PositionIndices = Triangulate(raw)
	if len(g.Triangles)%3 != 0 {
		return nil, fmt.Errorf("%w: polygon stream holds a polygon with fewer than 3 corners", ErrShapeMismatch)
	}
	for _, c := range g.PositionIndices {
		if c < 0 || int(c) >= len(g.Positions) {
			return nil, fmt.Errorf("%w: corner references control point %d of %d", ErrShapeMismatch, c, len(g.Positions))
		}
	}

	if opts.Materials {
		if layer := doc.FindChild(elem, "LayerElementMaterial"); layer != fbxtree.NilNode {
			if err := parseMaterialLayer(doc, layer, g, raw); err != nil {
				return nil, fmt.Errorf("LayerElementMaterial: %w", err)
			}
		}
	}

	if opts.UVs {
		if layer := doc.FindChild(elem, "LayerElementUV"); layer != fbxtree.NilNode {
			if g.UVs, g.UVIndices, err = assembleLayer(doc, layer, "UV", "UVIndex", doc.Vec2Array, g.PositionIndices); err != nil {
				return nil, fmt.Errorf("LayerElementUV: %w", err)
			}
		}
	}
	if opts.Tangents {
		if layer := doc.FindChild(elem, "LayerElementTangents"); layer != fbxtree.NilNode {
			valueName, indexName := "Tangents", "TangentsIndex"
			if doc.FindChild(layer, valueName) == fbxtree.NilNode {
				// Older exporters write the singular spelling.
				valueName, indexName = "Tangent", "TangentIndex"
			}
			if g.Tangents, g.TangentIndices, err = assembleLayer(doc, layer, valueName, indexName, doc.Vec3Array, g.PositionIndices); err != nil {
				return nil, fmt.Errorf("LayerElementTangents: %w", err)
			}
		}
	}
	if opts.Colors {
		if layer := doc.FindChild(elem, "LayerElementColor"); layer != fbxtree.NilNode {
			if g.Colors, g.ColorIndices, err = assembleLayer(doc, layer, "Colors", "ColorIndex", doc.Vec4Array, g.PositionIndices); err != nil {
				return nil, fmt.Errorf("LayerElementColor: %w", err)
			}
		}
	}
	if opts.Normals {
		if layer := doc.FindChild(elem, "LayerElementNormal"); layer != fbxtree.NilNode {
			if g.Normals, g.NormalIndices, err = assembleLayer(doc, layer, "Normals", "NormalsIndex", doc.Vec3Array, g.PositionIndices); err != nil {
				return nil, fmt.Errorf("LayerElementNormal: %w", err)
			}
		}
	}

	// Reconcile the index spaces. Positions go first; every later layer is
	// expanded against the already-settled position indices and then
	// remapped into their space.
	if g.Positions, err = expand(g.Positions, g.PositionIndices, g, FieldPosition); err != nil {
		return nil, err
	}
	if len(g.Normals) > 0 {
		if g.Normals, err = expand(g.Normals, g.NormalIndices, g, FieldNormal); err != nil {
			return nil, err
		}
		if g.Normals, err = remap(g.Normals, g.NormalIndices, g.PositionIndices, len(g.Positions)); err != nil {
			return nil, err
		}
	}
	if len(g.Tangents) > 0 {
		if g.Tangents, err = expand(g.Tangents, g.TangentIndices, g, FieldTangent); err != nil {
			return nil, err
		}
		if g.Tangents, err = remap(g.Tangents, g.TangentIndices, g.PositionIndices, len(g.Positions)); err != nil {
			return nil, err
		}
	}
	if len(g.Colors) > 0 {
		if g.Colors, err = expand(g.Colors, g.ColorIndices, g, FieldColor); err != nil {
			return nil, err
		}
		if g.Colors, err = remap(g.Colors, g.ColorIndices, g.PositionIndices, len(g.Positions)); err != nil {
			return nil, err
		}
	}
	if len(g.UVs) > 0 {
		if g.UVs, err = expand(g.UVs, g.UVIndices, g, FieldUV); err != nil {
			return nil, err
		}
		if g.UVs, err = remap(g.UVs, g.UVIndices, g.PositionIndices, len(g.Positions)); err != nil {
			return nil, err
		}
	}

	// Triangle corners still reference control points; route them through
	// the back-map to pick up the expanded position indices.
	for i, o := range toOld {
		g.Triangles[i] = g.PositionIndices[o]
	}
	return g, nil
}

// assembleLayer parses one attribute layer and settles its index stream
// against the corner count.
func assembleLayer[T any](
	doc *fbxtree.Document,
	layer fbxtree.NodeID,
	valueName, indexName string,
	decode func(fbxtree.PropID) ([]T, error),
	corners []int32,
) ([]T, []int32, error) {
	values, parsed, mapping, err := parseAttributeLayer(doc, layer, valueName, indexName, decode)
	if err != nil {
		return nil, nil, err
	}
	indices, err := layerIndices(parsed, mapping, corners)
	if err != nil {
		return nil, nil, err
	}
	return values, indices, nil
}

// ImportScene assembles every Geometry element under the document's
// Objects node into a fresh scene and registers mesh-class Model objects
// alongside them. A failing record is skipped and reported; the remaining
// records still import. The returned error joins the per-record failures
// and is nil when every record imported.
func ImportScene(doc *fbxtree.Document, opts Options) (*Scene, error) {
	objects := doc.FindChild(doc.Root(), "Objects")
	if objects == fbxtree.NilNode {
		return nil, fmt.Errorf("%w: Objects", ErrMissingNode)
	}

	scene := NewScene()
	var errs []error
	for n := doc.FirstChild(objects); n != fbxtree.NilNode; n = doc.NextSibling(n) {
		switch doc.Name(n) {
		case "Geometry":
			id, name, err := objectHeader(doc, n)
			if err != nil {
				errs = append(errs, fmt.Errorf("geometry element: %w", err))
				continue
			}
			g, err := AssembleGeometry(doc, n, opts)
			if err != nil {
				errs = append(errs, fmt.Errorf("geometry %d %q: %w", id, name, err))
				continue
			}
			if _, err := scene.AddGeometry(id, name, g); err != nil {
				errs = append(errs, err)
			}
		case "Model":
			id, name, err := objectHeader(doc, n)
			if err != nil {
				errs = append(errs, fmt.Errorf("model element: %w", err))
				continue
			}
			if class, cerr := doc.StringValue(doc.Property(n, 2)); cerr == nil && class == "Mesh" {
				if _, err := scene.AddMesh(id, name, 0); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	return scene, errors.Join(errs...)
}

// objectHeader reads the id and name properties every object element
// starts with. The name is optional.
func objectHeader(doc *fbxtree.Document, n fbxtree.NodeID) (uint64, string, error) {
	id, err := doc.Int64Value(doc.FirstProperty(n))
	if err != nil {
		return 0, "", fmt.Errorf("%w: object id: %v", ErrMissingNode, err)
	}
	name, err := doc.StringValue(doc.Property(n, 1))
	if err != nil {
		name = ""
	}
	return uint64(id), name, nil
}
