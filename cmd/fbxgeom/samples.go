package main

import (
	"fmt"

	"github.com/Faultbox/fbxgeom/pkg/fbxtree"
)

// The bundled samples are small element trees built in memory. They cover
// the paths a real file would exercise: raw and deflated arrays, split
// per-face attributes, and per-polygon material assignment.

func sampleNames() []string {
	return []string{"quad", "cube", "multimat"}
}

func sampleDocument(name string) (*fbxtree.Document, error) {
	switch name {
	case "quad":
		return quadSample(), nil
	case "cube":
		return cubeSample(), nil
	case "multimat":
		return multiMaterialSample(), nil
	}
	return nil, fmt.Errorf("unknown sample %q", name)
}

// quadSample is one quad with per-vertex normals and per-corner UVs.
func quadSample() *fbxtree.Document {
	d := fbxtree.NewDocument()
	objects := d.AddNode(d.Root(), "Objects")

	geom := addGeometryElement(d, objects, 1001, "Geometry::quad")
	d.AddFloat64Array(d.AddNode(geom, "Vertices"), []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}, false)
	d.AddInt32Array(d.AddNode(geom, "PolygonVertexIndex"), []int32{0, 1, 2, -4}, false)

	normals := d.AddNode(geom, "LayerElementNormal")
	d.AddString(d.AddNode(normals, "MappingInformationType"), "ByVertex")
	d.AddString(d.AddNode(normals, "ReferenceInformationType"), "Direct")
	d.AddFloat64Array(d.AddNode(normals, "Normals"), []float64{
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
	}, false)

	uvs := d.AddNode(geom, "LayerElementUV")
	d.AddString(d.AddNode(uvs, "MappingInformationType"), "ByPolygonVertex")
	d.AddString(d.AddNode(uvs, "ReferenceInformationType"), "Direct")
	d.AddFloat64Array(d.AddNode(uvs, "UV"), []float64{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}, false)

	addModelElement(d, objects, 2001, "Model::quad")
	return d
}

// cubeSample is a cube with one shared normal per face, stored deflated to
// exercise the decompression path. Every control point sits on three faces,
// so assembly has to split each of them three ways.
func cubeSample() *fbxtree.Document {
	positions := []float64{
		-1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
		-1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1, 1,
	}
	faces := [][4]int32{
		{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{3, 2, 6, 7}, {0, 3, 7, 4}, {1, 2, 6, 5},
	}
	faceNormals := []float64{
		0, 0, -1, 0, 0, 1, 0, -1, 0,
		0, 1, 0, -1, 0, 0, 1, 0, 0,
	}

	var raw []int32
	var normalIndices []int32
	for f, face := range faces {
		raw = append(raw, face[0], face[1], face[2], -face[3]-1)
		for c := 0; c < 4; c++ {
			normalIndices = append(normalIndices, int32(f))
		}
	}

	d := fbxtree.NewDocument()
	objects := d.AddNode(d.Root(), "Objects")

	geom := addGeometryElement(d, objects, 1002, "Geometry::cube")
	d.AddFloat64Array(d.AddNode(geom, "Vertices"), positions, true)
	d.AddInt32Array(d.AddNode(geom, "PolygonVertexIndex"), raw, true)

	normals := d.AddNode(geom, "LayerElementNormal")
	d.AddString(d.AddNode(normals, "MappingInformationType"), "ByPolygonVertex")
	d.AddString(d.AddNode(normals, "ReferenceInformationType"), "IndexToDirect")
	d.AddFloat64Array(d.AddNode(normals, "Normals"), faceNormals, true)
	d.AddInt32Array(d.AddNode(normals, "NormalsIndex"), normalIndices, true)

	addModelElement(d, objects, 2002, "Model::cube")
	return d
}

// multiMaterialSample is a triangle and a quad sharing an edge, each with
// its own material id, plus per-corner UVs.
func multiMaterialSample() *fbxtree.Document {
	d := fbxtree.NewDocument()
	objects := d.AddNode(d.Root(), "Objects")

	geom := addGeometryElement(d, objects, 1003, "Geometry::multimat")
	d.AddFloat64Array(d.AddNode(geom, "Vertices"), []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		2, 0, 0,
		2, 1, 0,
	}, false)
	// Triangle 0-1-2 then quad 1-3-4-2.
	d.AddInt32Array(d.AddNode(geom, "PolygonVertexIndex"), []int32{0, 1, -3, 1, 3, 4, -3}, false)

	materials := d.AddNode(geom, "LayerElementMaterial")
	d.AddString(d.AddNode(materials, "MappingInformationType"), "ByPolygon")
	d.AddString(d.AddNode(materials, "ReferenceInformationType"), "IndexToDirect")
	d.AddInt32Array(d.AddNode(materials, "Materials"), []int32{7, 9}, false)

	uvs := d.AddNode(geom, "LayerElementUV")
	d.AddString(d.AddNode(uvs, "MappingInformationType"), "ByPolygonVertex")
	d.AddString(d.AddNode(uvs, "ReferenceInformationType"), "Direct")
	d.AddFloat64Array(d.AddNode(uvs, "UV"), []float64{
		0, 0,
		0.5, 0,
		0.25, 0.5,
		0.5, 0,
		1, 0,
		1, 0.5,
		0.25, 0.5,
	}, false)

	addModelElement(d, objects, 2003, "Model::multimat")
	return d
}

func addGeometryElement(d *fbxtree.Document, objects fbxtree.NodeID, id int64, name string) fbxtree.NodeID {
	geom := d.AddNode(objects, "Geometry")
	d.AddInt64(geom, id)
	d.AddString(geom, name)
	d.AddString(geom, "Mesh")
	return geom
}

func addModelElement(d *fbxtree.Document, objects fbxtree.NodeID, id int64, name string) fbxtree.NodeID {
	model := d.AddNode(objects, "Model")
	d.AddInt64(model, id)
	d.AddString(model, name)
	d.AddString(model, "Mesh")
	return model
}
