package fbxtree

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"math"
)

// Builder API. The binary tokenizer and the sample scenes in cmd/fbxgeom
// populate Documents through these methods; tests use them to assemble
// fixture trees without a file on disk.

// AddNode appends a child node under parent and returns its handle.
// It panics on an out-of-range parent, which is always a programming error.
func (d *Document) AddNode(parent NodeID, name string) NodeID {
	if !d.validNode(parent) {
		panic("fbxtree: AddNode with invalid parent")
	}
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, node{
		name:       name,
		firstChild: NilNode,
		lastChild:  NilNode,
		sibling:    NilNode,
		firstProp:  NilProp,
		lastProp:   NilProp,
	})
	p := &d.nodes[parent]
	if p.lastChild == NilNode {
		p.firstChild = id
	} else {
		d.nodes[p.lastChild].sibling = id
	}
	p.lastChild = id
	return id
}

// addProperty appends a property with the given tag and payload bytes to
// the node's ordered property list.
func (d *Document) addProperty(n NodeID, tag byte, payload []byte) PropID {
	if !d.validNode(n) {
		panic("fbxtree: property on invalid node")
	}
	off := uint32(len(d.data))
	d.data = append(d.data, payload...)
	id := PropID(len(d.props))
	d.props = append(d.props, property{
		tag:  tag,
		next: NilProp,
		off:  off,
		end:  uint32(len(d.data)),
	})
	nd := &d.nodes[n]
	if nd.lastProp == NilProp {
		nd.firstProp = id
	} else {
		d.props[nd.lastProp].next = id
	}
	nd.lastProp = id
	return id
}

// AddString appends an 'S' property.
func (d *Document) AddString(n NodeID, v string) PropID {
	return d.addProperty(n, TagString, []byte(v))
}

// AddInt32 appends an 'I' property.
func (d *Document) AddInt32(n NodeID, v int32) PropID {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	return d.addProperty(n, TagInt32, b[:])
}

// AddInt64 appends an 'L' property.
func (d *Document) AddInt64(n NodeID, v int64) PropID {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	return d.addProperty(n, TagInt64, b[:])
}

// AddFloat64 appends a 'D' property.
func (d *Document) AddFloat64(n NodeID, v float64) PropID {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	return d.addProperty(n, TagFloat64, b[:])
}

// AddInt32Array appends an 'i' property. With compress set the payload is
// deflated and declared as encoding 1.
func (d *Document) AddInt32Array(n NodeID, v []int32, compress bool) PropID {
	flat := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(flat[i*4:], uint32(x))
	}
	return d.addProperty(n, TagInt32Array, arrayPayloadBytes(len(v), flat, compress))
}

// AddInt64Array appends an 'l' property.
func (d *Document) AddInt64Array(n NodeID, v []int64, compress bool) PropID {
	flat := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(flat[i*8:], uint64(x))
	}
	return d.addProperty(n, TagInt64Array, arrayPayloadBytes(len(v), flat, compress))
}

// AddFloat32Array appends an 'f' property.
func (d *Document) AddFloat32Array(n NodeID, v []float32, compress bool) PropID {
	flat := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(flat[i*4:], math.Float32bits(x))
	}
	return d.addProperty(n, TagFloat32Array, arrayPayloadBytes(len(v), flat, compress))
}

// AddFloat64Array appends a 'd' property.
func (d *Document) AddFloat64Array(n NodeID, v []float64, compress bool) PropID {
	flat := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(flat[i*8:], math.Float64bits(x))
	}
	return d.addProperty(n, TagFloat64Array, arrayPayloadBytes(len(v), flat, compress))
}

// AddRawArrayPayload appends an array property with a caller-supplied
// payload placed verbatim after the header. It exists so tests can declare
// headers that disagree with the bytes that follow.
func (d *Document) AddRawArrayPayload(n NodeID, tag byte, count, encoding uint32, body []byte) PropID {
	payload := make([]byte, arrayHeaderSize+len(body))
	binary.LittleEndian.PutUint32(payload[0:], count)
	binary.LittleEndian.PutUint32(payload[4:], encoding)
	binary.LittleEndian.PutUint32(payload[8:], uint32(len(body)))
	copy(payload[arrayHeaderSize:], body)
	return d.addProperty(n, tag, payload)
}

// arrayPayloadBytes frames flat element bytes with the 12-byte array
// header, deflating the body when compress is set.
func arrayPayloadBytes(count int, flat []byte, compress bool) []byte {
	body := flat
	encoding := uint32(0)
	if compress {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		zw.Write(flat)
		zw.Close()
		body = buf.Bytes()
		encoding = 1
	}
	payload := make([]byte, arrayHeaderSize+len(body))
	binary.LittleEndian.PutUint32(payload[0:], uint32(count))
	binary.LittleEndian.PutUint32(payload[4:], encoding)
	binary.LittleEndian.PutUint32(payload[8:], uint32(len(body)))
	copy(payload[arrayHeaderSize:], body)
	return payload
}
