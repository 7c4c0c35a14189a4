package fbxtree

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrTruncatedProperty means a payload window is too short for what its
	// header declares.
	ErrTruncatedProperty = errors.New("fbxtree: truncated property payload")
	// ErrCapacityExceeded means a declared byte length overruns the
	// destination derived from the declared element count.
	ErrCapacityExceeded = errors.New("fbxtree: declared length exceeds destination capacity")
	// ErrUnexpectedTag means a property carries a different type tag than
	// the caller asked for.
	ErrUnexpectedTag = errors.New("fbxtree: unexpected property type tag")
	// ErrBadEncoding means an array header declares an encoding other than
	// raw (0) or deflate (1).
	ErrBadEncoding = errors.New("fbxtree: unknown array encoding")
	// ErrBadArrayShape means a flat scalar array cannot be regrouped into
	// fixed-width records because its length is not divisible.
	ErrBadArrayShape = errors.New("fbxtree: array length does not divide into records")
	// ErrInflate wraps failures of the compressed-payload inflater.
	ErrInflate = errors.New("fbxtree: inflate")
)

// InflateFunc decompresses src into dst. dst is pre-sized to the exact
// declared output length and must be filled completely.
type InflateFunc func(src, dst []byte) error

// zlibInflate is the stock decompressor for encoding==1 payloads.
func zlibInflate(src, dst []byte) error {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = io.ReadFull(r, dst)
	return err
}

// arrayHeaderSize is the fixed prefix of every array payload: element
// count, encoding, and compressed byte length, each a little-endian u32.
const arrayHeaderSize = 12

// ArrayHeader decodes the fixed header of an array property without
// touching the element payload.
func (d *Document) ArrayHeader(p PropID) (count, encoding, byteLen uint32, err error) {
	if !d.validProp(p) {
		return 0, 0, 0, fmt.Errorf("%w: invalid property handle", ErrUnexpectedTag)
	}
	if tag := d.props[p].tag; arrayElemSize(tag) == 0 {
		return 0, 0, 0, fmt.Errorf("%w: %q is not an array tag", ErrUnexpectedTag, tag)
	}
	w := d.window(p)
	if len(w) < arrayHeaderSize {
		return 0, 0, 0, fmt.Errorf("%w: array header needs %d bytes, have %d", ErrTruncatedProperty, arrayHeaderSize, len(w))
	}
	count = binary.LittleEndian.Uint32(w[0:])
	encoding = binary.LittleEndian.Uint32(w[4:])
	byteLen = binary.LittleEndian.Uint32(w[8:])
	return count, encoding, byteLen, nil
}

// ArrayCount returns the declared element count of an array property.
func (d *Document) ArrayCount(p PropID) (int, error) {
	count, _, _, err := d.ArrayHeader(p)
	return int(count), err
}

// arrayPayload decodes an array property into a flat little-endian byte
// buffer of exactly count*elemSize bytes, wantElem being the caller's
// element width. Encoding 0 is a verbatim copy of the payload window;
// encoding 1 inflates the window through d.Inflate. Both forms are checked
// against the destination capacity derived from the declared count and
// against the bounds of the payload window before any byte moves.
func (d *Document) arrayPayload(p PropID, wantElem int) ([]byte, int, error) {
	if !d.validProp(p) {
		return nil, 0, fmt.Errorf("%w: invalid property handle", ErrUnexpectedTag)
	}
	tag := d.props[p].tag
	elemSize := arrayElemSize(tag)
	if elemSize == 0 {
		return nil, 0, fmt.Errorf("%w: %q is not an array tag", ErrUnexpectedTag, tag)
	}
	if elemSize != wantElem {
		return nil, 0, fmt.Errorf("%w: tag %q has %d-byte elements, want %d", ErrUnexpectedTag, tag, elemSize, wantElem)
	}
	count, encoding, byteLen, err := d.ArrayHeader(p)
	if err != nil {
		return nil, 0, err
	}
	body := d.window(p)[arrayHeaderSize:]
	capacity := uint64(count) * uint64(elemSize)
	if capacity > math.MaxInt32 {
		return nil, 0, fmt.Errorf("%w: %d elements of %d bytes", ErrCapacityExceeded, count, elemSize)
	}

	switch encoding {
	case 0:
		if uint64(byteLen) > capacity {
			return nil, 0, fmt.Errorf("%w: raw payload is %d bytes, capacity %d", ErrCapacityExceeded, byteLen, capacity)
		}
		if int(byteLen) > len(body) {
			return nil, 0, fmt.Errorf("%w: raw payload wants %d bytes, window has %d", ErrTruncatedProperty, byteLen, len(body))
		}
		if uint64(byteLen) == capacity {
			return body[:byteLen], int(count), nil
		}
		// Short payloads keep the declared count; the tail stays zero.
		dst := make([]byte, capacity)
		copy(dst, body[:byteLen])
		return dst, int(count), nil
	case 1:
		if int(byteLen) > len(body) {
			return nil, 0, fmt.Errorf("%w: deflate payload wants %d bytes, window has %d", ErrTruncatedProperty, byteLen, len(body))
		}
		dst := make([]byte, capacity)
		inflate := d.Inflate
		if inflate == nil {
			inflate = zlibInflate
		}
		if err := inflate(body[:byteLen], dst); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInflate, err)
		}
		return dst, int(count), nil
	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrBadEncoding, encoding)
	}
}

// Int32Array decodes an 'i' property.
func (d *Document) Int32Array(p PropID) ([]int32, error) {
	raw, count, err := d.arrayPayload(p, 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, count)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// Int64Array decodes an 'l' property.
func (d *Document) Int64Array(p PropID) ([]int64, error) {
	raw, count, err := d.arrayPayload(p, 8)
	if err != nil {
		return nil, err
	}
	out := make([]int64, count)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

// Float32Array decodes an 'f' property.
func (d *Document) Float32Array(p PropID) ([]float32, error) {
	raw, count, err := d.arrayPayload(p, 4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// Float64Array decodes a 'd' property.
func (d *Document) Float64Array(p PropID) ([]float64, error) {
	raw, count, err := d.arrayPayload(p, 8)
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

// doubleArray decodes either a 'd' or an 'f' array property to float64,
// widening single-precision payloads. Geometry streams are declared as
// doubles by current exporters but old files carry floats.
func (d *Document) doubleArray(p PropID) ([]float64, error) {
	if d.validProp(p) && d.props[p].tag == TagFloat32Array {
		f32, err := d.Float32Array(p)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(f32))
		for i, v := range f32 {
			out[i] = float64(v)
		}
		return out, nil
	}
	return d.Float64Array(p)
}

// Vec2Array regroups a floating-point array property into 2-component
// records. The flat length must be divisible by 2.
func (d *Document) Vec2Array(p PropID) ([]mgl64.Vec2, error) {
	flat, err := d.doubleArray(p)
	if err != nil {
		return nil, err
	}
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("%w: %d scalars into Vec2", ErrBadArrayShape, len(flat))
	}
	out := make([]mgl64.Vec2, len(flat)/2)
	for i := range out {
		out[i] = mgl64.Vec2{flat[i*2], flat[i*2+1]}
	}
	return out, nil
}

// Vec3Array regroups a floating-point array property into 3-component
// records. The flat length must be divisible by 3.
func (d *Document) Vec3Array(p PropID) ([]mgl64.Vec3, error) {
	flat, err := d.doubleArray(p)
	if err != nil {
		return nil, err
	}
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("%w: %d scalars into Vec3", ErrBadArrayShape, len(flat))
	}
	out := make([]mgl64.Vec3, len(flat)/3)
	for i := range out {
		out[i] = mgl64.Vec3{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return out, nil
}

// Vec4Array regroups a floating-point array property into 4-component
// records. The flat length must be divisible by 4.
func (d *Document) Vec4Array(p PropID) ([]mgl64.Vec4, error) {
	flat, err := d.doubleArray(p)
	if err != nil {
		return nil, err
	}
	if len(flat)%4 != 0 {
		return nil, fmt.Errorf("%w: %d scalars into Vec4", ErrBadArrayShape, len(flat))
	}
	out := make([]mgl64.Vec4, len(flat)/4)
	for i := range out {
		out[i] = mgl64.Vec4{flat[i*4], flat[i*4+1], flat[i*4+2], flat[i*4+3]}
	}
	return out, nil
}
