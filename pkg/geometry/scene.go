package geometry

import "fmt"

// ObjectKind discriminates the closed set of scene object variants.
type ObjectKind uint8

const (
	ObjectRoot ObjectKind = iota
	ObjectGeometry
	ObjectMesh
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectRoot:
		return "Root"
	case ObjectGeometry:
		return "Geometry"
	case ObjectMesh:
		return "Mesh"
	}
	return fmt.Sprintf("ObjectKind(%d)", uint8(k))
}

// Object is one scene object: the fields every kind shares plus the
// payload of its variant. Geometry is set only for ObjectGeometry;
// GeometryID is set only for ObjectMesh and names the geometry object the
// mesh renders, 0 while unresolved.
type Object struct {
	ID   uint64
	Name string
	Kind ObjectKind

	Geometry   *Geometry
	GeometryID uint64
}

// Scene owns the objects reconstructed from one file. Objects are looked
// up by file id and iterated in insertion order, root first.
type Scene struct {
	byID  map[uint64]*Object
	order []*Object
}

// NewScene returns a scene holding only the synthetic root object, id 0.
func NewScene() *Scene {
	s := &Scene{byID: make(map[uint64]*Object)}
	root := &Object{ID: 0, Name: "RootNode", Kind: ObjectRoot}
	s.byID[0] = root
	s.order = append(s.order, root)
	return s
}

func (s *Scene) add(o *Object) (*Object, error) {
	if _, ok := s.byID[o.ID]; ok {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateObject, o.ID)
	}
	s.byID[o.ID] = o
	s.order = append(s.order, o)
	return o, nil
}

// AddGeometry registers an assembled geometry record under its file id.
func (s *Scene) AddGeometry(id uint64, name string, g *Geometry) (*Object, error) {
	return s.add(&Object{ID: id, Name: name, Kind: ObjectGeometry, Geometry: g})
}

// AddMesh registers a mesh object. geometryID names the geometry object
// the mesh renders and may be 0 when the link is not resolved.
func (s *Scene) AddMesh(id uint64, name string, geometryID uint64) (*Object, error) {
	return s.add(&Object{ID: id, Name: name, Kind: ObjectMesh, GeometryID: geometryID})
}

// Root returns the synthetic root object.
func (s *Scene) Root() *Object { return s.byID[0] }

// Object returns the object with the given id, or nil.
func (s *Scene) Object(id uint64) *Object { return s.byID[id] }

// Objects returns every object in insertion order, root first.
func (s *Scene) Objects() []*Object { return s.order }

// Geometries returns the geometry objects in insertion order.
func (s *Scene) Geometries() []*Object { return s.byKind(ObjectGeometry) }

// Meshes returns the mesh objects in insertion order.
func (s *Scene) Meshes() []*Object { return s.byKind(ObjectMesh) }

func (s *Scene) byKind(kind ObjectKind) []*Object {
	var out []*Object
	for _, o := range s.order {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}
