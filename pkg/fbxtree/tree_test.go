package fbxtree

import (
	"errors"
	"testing"
)

func TestDocumentNavigation(t *testing.T) {
	d := NewDocument()
	objects := d.AddNode(d.Root(), "Objects")
	geom := d.AddNode(objects, "Geometry")
	model := d.AddNode(objects, "Model")
	verts := d.AddNode(geom, "Vertices")
	d.AddNode(geom, "PolygonVertexIndex")

	if got := d.FindChild(d.Root(), "Objects"); got != objects {
		t.Fatalf("FindChild(Objects) = %d, want %d", got, objects)
	}
	if got := d.FindChild(objects, "Geometry"); got != geom {
		t.Fatalf("FindChild(Geometry) = %d, want %d", got, geom)
	}
	if got := d.FindChild(objects, "Model"); got != model {
		t.Fatalf("FindChild(Model) = %d, want %d", got, model)
	}
	if got := d.FindChild(objects, "Connections"); got != NilNode {
		t.Fatalf("FindChild(missing) = %d, want NilNode", got)
	}
	if got := d.FirstChild(geom); got != verts {
		t.Fatalf("FirstChild = %d, want %d", got, verts)
	}
	if got := d.Name(d.NextSibling(verts)); got != "PolygonVertexIndex" {
		t.Fatalf("sibling name = %q, want PolygonVertexIndex", got)
	}
	if got := d.NextSibling(model); got != NilNode {
		t.Fatalf("NextSibling(last) = %d, want NilNode", got)
	}
	if got := d.NodeCount(); got != 6 {
		t.Fatalf("NodeCount = %d, want 6", got)
	}
}

func TestDocumentSiblingOrder(t *testing.T) {
	d := NewDocument()
	parent := d.AddNode(d.Root(), "LayerElementUV")
	names := []string{"Version", "Name", "MappingInformationType", "ReferenceInformationType", "UV", "UVIndex"}
	for _, name := range names {
		d.AddNode(parent, name)
	}

	var got []string
	for c := d.FirstChild(parent); c != NilNode; c = d.NextSibling(c) {
		got = append(got, d.Name(c))
	}
	if len(got) != len(names) {
		t.Fatalf("walked %d children, want %d", len(got), len(names))
	}
	for i := range names {
		if got[i] != names[i] {
			t.Fatalf("child %d = %q, want %q", i, got[i], names[i])
		}
	}
}

func TestPropertyOrderAndAccessors(t *testing.T) {
	d := NewDocument()
	geom := d.AddNode(d.Root(), "Geometry")
	d.AddInt64(geom, 140234)
	d.AddString(geom, "Geometry::cube")
	d.AddString(geom, "Mesh")

	p0 := d.Property(geom, 0)
	id, err := d.Int64Value(p0)
	if err != nil {
		t.Fatalf("Int64Value: %v", err)
	}
	if id != 140234 {
		t.Fatalf("Int64Value = %d, want 140234", id)
	}

	p1 := d.Property(geom, 1)
	name, err := d.StringValue(p1)
	if err != nil {
		t.Fatalf("StringValue: %v", err)
	}
	if name != "Geometry::cube" {
		t.Fatalf("StringValue = %q", name)
	}

	if got := d.Property(geom, 3); got != NilProp {
		t.Fatalf("Property(3) = %d, want NilProp", got)
	}
	if d.FirstProperty(geom) != p0 {
		t.Fatalf("FirstProperty mismatch")
	}
	if d.NextProperty(p0) != p1 {
		t.Fatalf("NextProperty mismatch")
	}
}

func TestScalarTagMismatch(t *testing.T) {
	d := NewDocument()
	n := d.AddNode(d.Root(), "Version")
	p := d.AddInt32(n, 124)

	v, err := d.Int32Value(p)
	if err != nil {
		t.Fatalf("Int32Value: %v", err)
	}
	if v != 124 {
		t.Fatalf("Int32Value = %d, want 124", v)
	}
	if _, err := d.StringValue(p); !errors.Is(err, ErrUnexpectedTag) {
		t.Fatalf("StringValue on 'I' = %v, want ErrUnexpectedTag", err)
	}
	if _, err := d.Int64Value(p); !errors.Is(err, ErrUnexpectedTag) {
		t.Fatalf("Int64Value on 'I' = %v, want ErrUnexpectedTag", err)
	}
}

func TestFloat64Value(t *testing.T) {
	d := NewDocument()
	n := d.AddNode(d.Root(), "P")
	p := d.AddFloat64(n, -12.625)

	v, err := d.Float64Value(p)
	if err != nil {
		t.Fatalf("Float64Value: %v", err)
	}
	if v != -12.625 {
		t.Fatalf("Float64Value = %v, want -12.625", v)
	}
}
