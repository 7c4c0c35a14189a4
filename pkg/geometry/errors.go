package geometry

import "errors"

var (
	// ErrMissingNode means a child node or property the format requires is
	// absent from the element tree.
	ErrMissingNode = errors.New("geometry: required node or property missing")
	// ErrUnsupportedMapping means a mapping or reference mode string is not
	// recognized, or a mode combination has no defined index generation.
	ErrUnsupportedMapping = errors.New("geometry: unsupported mapping or reference mode")
	// ErrShapeMismatch means decoded arrays disagree with each other: an
	// index stream has the wrong length or addresses beyond its buffer.
	ErrShapeMismatch = errors.New("geometry: array shape mismatch")
	// ErrDuplicateObject means two scene objects declare the same id.
	ErrDuplicateObject = errors.New("geometry: duplicate object id")
)
