package geometry

import "fmt"

// Field names one attribute slot of a vertex signature so the attribute
// currently being expanded can be left out of the comparison.
type Field uint8

const (
	FieldPosition Field = iota
	FieldNormal
	FieldTangent
	FieldColor
	FieldUV
)

// signature identifies which source attribute values one loop corner
// resolves to. A field is -1 when its layer is absent or excluded. Two
// corners can share a buffer index only while their signatures are equal.
type signature struct {
	pos, nrm, tan, clr, uv int32
}

// signatureAt builds the signature of loop corner i from the geometry's
// current index streams, leaving out the excluded field.
func (g *Geometry) signatureAt(i int, exclude Field) signature {
	pick := func(stream []int32, f Field) int32 {
		if f == exclude || len(stream) == 0 {
			return -1
		}
		return stream[i]
	}
	return signature{
		pos: pick(g.PositionIndices, FieldPosition),
		nrm: pick(g.NormalIndices, FieldNormal),
		tan: pick(g.TangentIndices, FieldTangent),
		clr: pick(g.ColorIndices, FieldColor),
		uv:  pick(g.UVIndices, FieldUV),
	}
}

// expand splits buffer entries that are shared by loop corners with
// conflicting attribute combinations. Whenever a corner references an
// index whose recorded signature differs from the corner's own, the
// referenced entry is duplicated at the end of data and the corner's index
// entry is redirected to the new slot. indices is rewritten in place; the
// possibly-grown buffer is returned.
//
// exclude must name the attribute data belongs to, so the attribute's own
// index stream does not force splits against itself.
func expand[T any](data []T, indices []int32, g *Geometry, exclude Field) ([]T, error) {
	if len(indices) == 0 {
		return data, nil
	}
	for _, idx := range indices {
		if idx < 0 || int(idx) >= len(data) {
			return nil, fmt.Errorf("%w: corner index %d outside buffer of %d entries", ErrShapeMismatch, idx, len(data))
		}
	}

	seen := make(map[int32]signature, len(indices))
	seen[indices[0]] = g.signatureAt(0, exclude)

	for i := 1; i < len(indices); i++ {
		idx := indices[i]
		sig := g.signatureAt(i, exclude)
		prev, ok := seen[idx]
		if !ok {
			seen[idx] = sig
			continue
		}
		if prev == sig {
			continue
		}
		next := int32(len(data))
		data = append(data, data[idx])
		indices[i] = next
		seen[next] = sig
	}
	return data, nil
}

// remap reorders an expanded attribute buffer into the position buffer's
// index space: for every loop corner i, output slot posIndices[i] receives
// values[attrIndices[i]]. The result always has size entries, so after the
// remap the position index stream addresses every attribute consistently.
func remap[T any](values []T, attrIndices, posIndices []int32, size int) ([]T, error) {
	if len(values) == 0 {
		return values, nil
	}
	if len(attrIndices) != len(posIndices) {
		return nil, fmt.Errorf("%w: %d attribute corners against %d position corners", ErrShapeMismatch, len(attrIndices), len(posIndices))
	}
	out := make([]T, size)
	for i := range attrIndices {
		ai, pi := attrIndices[i], posIndices[i]
		if ai < 0 || int(ai) >= len(values) {
			return nil, fmt.Errorf("%w: corner %d selects value %d of %d", ErrShapeMismatch, i, ai, len(values))
		}
		if pi < 0 || int(pi) >= size {
			return nil, fmt.Errorf("%w: corner %d lands on slot %d of %d", ErrShapeMismatch, i, pi, size)
		}
		out[pi] = values[ai]
	}
	return out, nil
}
