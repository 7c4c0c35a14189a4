package fbxtree

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Property type tags as they appear on the wire. Scalar payloads are the
// little-endian value bytes; 'S' and 'R' payloads are the raw bytes; array
// payloads start with the 12-byte header decoded by ArrayHeader.
const (
	TagInt16   = 'Y'
	TagBool    = 'C'
	TagInt32   = 'I'
	TagInt64   = 'L'
	TagFloat32 = 'F'
	TagFloat64 = 'D'
	TagString  = 'S'
	TagRaw     = 'R'

	TagInt32Array   = 'i'
	TagInt64Array   = 'l'
	TagFloat32Array = 'f'
	TagFloat64Array = 'd'
)

// arrayElemSize returns the element width of an array tag, or 0 for
// non-array tags.
func arrayElemSize(tag byte) int {
	switch tag {
	case TagInt32Array, TagFloat32Array:
		return 4
	case TagInt64Array, TagFloat64Array:
		return 8
	}
	return 0
}

// IsArray reports whether the property carries an array payload.
func (d *Document) IsArray(p PropID) bool {
	if !d.validProp(p) {
		return false
	}
	return arrayElemSize(d.props[p].tag) != 0
}

// Tag returns the property's wire type tag, or 0 for an invalid handle.
func (d *Document) Tag(p PropID) byte {
	if !d.validProp(p) {
		return 0
	}
	return d.props[p].tag
}

// StringValue returns the payload of an 'S' property.
func (d *Document) StringValue(p PropID) (string, error) {
	if !d.validProp(p) {
		return "", fmt.Errorf("%w: invalid property handle", ErrUnexpectedTag)
	}
	if tag := d.props[p].tag; tag != TagString {
		return "", fmt.Errorf("%w: want 'S', got %q", ErrUnexpectedTag, tag)
	}
	return string(d.window(p)), nil
}

// Int32Value returns the value of an 'I' property.
func (d *Document) Int32Value(p PropID) (int32, error) {
	w, err := d.scalarWindow(p, TagInt32, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(w)), nil
}

// Int64Value returns the value of an 'L' property.
func (d *Document) Int64Value(p PropID) (int64, error) {
	w, err := d.scalarWindow(p, TagInt64, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(w)), nil
}

// Float64Value returns the value of a 'D' property.
func (d *Document) Float64Value(p PropID) (float64, error) {
	w, err := d.scalarWindow(p, TagFloat64, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(w)), nil
}

func (d *Document) scalarWindow(p PropID, tag byte, size int) ([]byte, error) {
	if !d.validProp(p) {
		return nil, fmt.Errorf("%w: invalid property handle", ErrUnexpectedTag)
	}
	if got := d.props[p].tag; got != tag {
		return nil, fmt.Errorf("%w: want %q, got %q", ErrUnexpectedTag, tag, got)
	}
	w := d.window(p)
	if len(w) < size {
		return nil, fmt.Errorf("%w: scalar %q payload is %d bytes, want %d", ErrTruncatedProperty, tag, len(w), size)
	}
	return w, nil
}
