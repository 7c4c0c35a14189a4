package geometry

import (
	"fmt"

	"github.com/Faultbox/fbxgeom/pkg/fbxtree"
)

// parseAttributeLayer reads one optional attribute layer: its value array
// under valueName, its mapping and reference modes, and, for
// IndexToDirect, the index array under indexName. A missing index node is
// tolerated; the caller fills the stream in through defaultIndices. decode
// adapts the value property to the layer's record type.
func parseAttributeLayer[T any](
	doc *fbxtree.Document,
	layer fbxtree.NodeID,
	valueName, indexName string,
	decode func(fbxtree.PropID) ([]T, error),
) (values []T, indices []int32, mapping MappingMode, err error) {
	valueNode := doc.FindChild(layer, valueName)
	if valueNode == fbxtree.NilNode || doc.FirstProperty(valueNode) == fbxtree.NilProp {
		return nil, nil, 0, fmt.Errorf("%w: %s value node %q", ErrMissingNode, doc.Name(layer), valueName)
	}

	// Layers written without explicit modes behave like the most common
	// layout: one value per loop corner, aligned directly.
	mapping = ByPolygonVertex
	reference := Direct

	if p := firstPropertyOfChild(doc, layer, "MappingInformationType"); p != fbxtree.NilProp {
		s, serr := doc.StringValue(p)
		if serr != nil {
			return nil, nil, 0, fmt.Errorf("%w: unreadable mapping mode: %v", ErrUnsupportedMapping, serr)
		}
		if mapping, err = parseMappingMode(s); err != nil {
			return nil, nil, 0, err
		}
	}
	if p := firstPropertyOfChild(doc, layer, "ReferenceInformationType"); p != fbxtree.NilProp {
		s, serr := doc.StringValue(p)
		if serr != nil {
			return nil, nil, 0, fmt.Errorf("%w: unreadable reference mode: %v", ErrUnsupportedMapping, serr)
		}
		if reference, err = parseReferenceMode(s); err != nil {
			return nil, nil, 0, err
		}
	}

	if reference == IndexToDirect {
		if p := firstPropertyOfChild(doc, layer, indexName); p != fbxtree.NilProp {
			if indices, err = doc.Int32Array(p); err != nil {
				return nil, nil, 0, fmt.Errorf("decode %s: %w", indexName, err)
			}
		}
	}

	if values, err = decode(doc.FirstProperty(valueNode)); err != nil {
		return nil, nil, 0, fmt.Errorf("decode %s: %w", valueName, err)
	}
	return values, indices, mapping, nil
}

// firstPropertyOfChild returns the first property of the named direct
// child, or NilProp when either the child or the property is absent.
func firstPropertyOfChild(doc *fbxtree.Document, n fbxtree.NodeID, name string) fbxtree.PropID {
	child := doc.FindChild(n, name)
	if child == fbxtree.NilNode {
		return fbxtree.NilProp
	}
	return doc.FirstProperty(child)
}

// defaultIndices synthesizes the index stream of a layer that came without
// one. ByPolygonVertex values already sit in corner order, so the stream
// is the identity; ByVertex values are addressed by control point, so the
// stream is a copy of the decoded corner stream. ByPolygon has no defined
// per-corner expansion and fails.
func defaultIndices(mapping MappingMode, corners []int32) ([]int32, error) {
	switch mapping {
	case ByPolygonVertex:
		indices := make([]int32, len(corners))
		for i := range indices {
			indices[i] = int32(i)
		}
		return indices, nil
	case ByVertex:
		indices := make([]int32, len(corners))
		copy(indices, corners)
		return indices, nil
	}
	return nil, fmt.Errorf("%w: no default index generation for %s", ErrUnsupportedMapping, mapping)
}

// layerIndices resolves a parsed layer's index stream against the corner
// count: absent streams are generated per mapping mode, present ones must
// already cover every corner.
func layerIndices(parsed []int32, mapping MappingMode, corners []int32) ([]int32, error) {
	if len(parsed) == 0 {
		return defaultIndices(mapping, corners)
	}
	if len(parsed) != len(corners) {
		return nil, fmt.Errorf("%w: %d layer indices for %d corners", ErrShapeMismatch, len(parsed), len(corners))
	}
	return parsed, nil
}

// parseMaterialLayer fills g.Materials from a LayerElementMaterial node.
// ByPolygon/IndexToDirect carries one id per face, which is broadcast to
// one id per triangle by walking the raw sign-terminated polygon stream.
// AllSame leaves the list empty. Other combinations fail.
func parseMaterialLayer(doc *fbxtree.Document, layer fbxtree.NodeID, g *Geometry, raw []int32) error {
	mappingProp := firstPropertyOfChild(doc, layer, "MappingInformationType")
	referenceProp := firstPropertyOfChild(doc, layer, "ReferenceInformationType")
	if mappingProp == fbxtree.NilProp || referenceProp == fbxtree.NilProp {
		return fmt.Errorf("%w: material layer modes", ErrMissingNode)
	}
	mapping, err := doc.StringValue(mappingProp)
	if err != nil {
		return fmt.Errorf("%w: unreadable material mapping: %v", ErrUnsupportedMapping, err)
	}
	reference, err := doc.StringValue(referenceProp)
	if err != nil {
		return fmt.Errorf("%w: unreadable material reference: %v", ErrUnsupportedMapping, err)
	}

	if mapping == "ByPolygon" && reference == "IndexToDirect" {
		idxProp := firstPropertyOfChild(doc, layer, "Materials")
		if idxProp == fbxtree.NilProp {
			return fmt.Errorf("%w: material layer ids", ErrMissingNode)
		}
		perPolygon, err := doc.Int32Array(idxProp)
		if err != nil {
			return fmt.Errorf("decode material ids: %w", err)
		}
		g.Materials = make([]int32, 0, len(perPolygon))
		cursor := 0
		for _, id := range perPolygon {
			var triangles int
			triangles, cursor = PolygonTriangleCount(raw, cursor)
			for t := 0; t < triangles; t++ {
				g.Materials = append(g.Materials, id)
			}
		}
		if len(g.Materials) != g.TriangleCount() {
			return fmt.Errorf("%w: %d material entries for %d triangles", ErrShapeMismatch, len(g.Materials), g.TriangleCount())
		}
		return nil
	}
	if mapping != "AllSame" {
		return fmt.Errorf("%w: material mapping %q with reference %q", ErrUnsupportedMapping, mapping, reference)
	}
	return nil
}
