// Package threemf writes triangle meshes as 3MF packages: an OPC zip
// container holding a 3D model XML part, with per-component materials
// so multi-color printers can assign a filament per mesh component.
package threemf

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/qrforge/pkg/mesh"
)

// 3MF errors.
var (
	ErrEmptyMesh = errors.New("threemf: mesh has no triangles")
	ErrNoColor   = errors.New("threemf: no color assigned to component tag")
)

const coreNamespace = "http://schemas.microsoft.com/3dmanufacturing/core/2015/02"

// Options control 3MF serialization.
type Options struct {
	// Title names the model (and the single mesh object).
	Title string

	// Colors assigns a display color per component tag. Every tag
	// present in the component map must have one.
	Colors map[mesh.Tag]Color

	// SeparateComponents emits one named mesh object per tag instead
	// of a single object with per-triangle materials. Slicers then
	// treat each component as its own solid.
	SeparateComponents bool
}

// Model is the root of the 3dmodel.model part.
type Model struct {
	XMLName   xml.Name  `xml:"model"`
	Unit      string    `xml:"unit,attr"`
	Namespace string    `xml:"xmlns,attr"`
	Resources Resources `xml:"resources"`
	Build     Build     `xml:"build"`
}

// Resources holds material groups and mesh objects.
type Resources struct {
	BaseMaterials []BaseMaterials `xml:"basematerials"`
	Objects       []Object        `xml:"object"`
}

// BaseMaterials is a material group resource.
type BaseMaterials struct {
	ID        int            `xml:"id,attr"`
	Materials []BaseMaterial `xml:"base"`
}

// BaseMaterial is one named, colored material.
type BaseMaterial struct {
	Name         string `xml:"name,attr"`
	DisplayColor string `xml:"displaycolor,attr"`
}

// Object is a mesh object resource.
type Object struct {
	ID     int     `xml:"id,attr"`
	Type   string  `xml:"type,attr"`
	Name   string  `xml:"name,attr,omitempty"`
	PID    int     `xml:"pid,attr,omitempty"`
	PIndex *int    `xml:"pindex,attr,omitempty"`
	Mesh   MeshXML `xml:"mesh"`
}

// MeshXML is the vertex and triangle payload of an object.
type MeshXML struct {
	Vertices  VerticesXML  `xml:"vertices"`
	Triangles TrianglesXML `xml:"triangles"`
}

// VerticesXML wraps the vertex list.
type VerticesXML struct {
	Vertices []VertexXML `xml:"vertex"`
}

// VertexXML is one vertex position in millimeters.
type VertexXML struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	Z float64 `xml:"z,attr"`
}

// TrianglesXML wraps the triangle list.
type TrianglesXML struct {
	Triangles []TriangleXML `xml:"triangle"`
}

// TriangleXML is one triangle, optionally bound to a material.
type TriangleXML struct {
	V1  int  `xml:"v1,attr"`
	V2  int  `xml:"v2,attr"`
	V3  int  `xml:"v3,attr"`
	PID int  `xml:"pid,attr,omitempty"`
	P1  *int `xml:"p1,attr,omitempty"`
}

// Build lists the objects placed on the build plate.
type Build struct {
	Items []Item `xml:"item"`
}

// Item places one object.
type Item struct {
	ObjectID int `xml:"objectid,attr"`
}

// Write serializes the mesh and its component map as a 3MF package.
// comps may be nil for a geometry-only model.
func Write(w io.Writer, m *mesh.Mesh, comps *mesh.ComponentMap, opts Options) error {
	if m == nil || len(m.Triangles) == 0 {
		return ErrEmptyMesh
	}

	model, err := buildModel(m, comps, opts)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relsXML)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("threemf: creating %s: %w", p.name, err)
		}
		if _, err := f.Write(p.content); err != nil {
			return fmt.Errorf("threemf: writing %s: %w", p.name, err)
		}
	}

	f, err := zw.Create("3D/3dmodel.model")
	if err != nil {
		return fmt.Errorf("threemf: creating model part: %w", err)
	}
	if _, err := f.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("threemf: writing model part: %w", err)
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", " ")
	if err := enc.Encode(model); err != nil {
		return fmt.Errorf("threemf: encoding model: %w", err)
	}

	return zw.Close()
}

// WriteFile writes the 3MF package to path.
func WriteFile(path string, m *mesh.Mesh, comps *mesh.ComponentMap, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("threemf: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := Write(f, m, comps, opts); err != nil {
		return err
	}
	return f.Close()
}

func buildModel(m *mesh.Mesh, comps *mesh.ComponentMap, opts Options) (*Model, error) {
	model := &Model{
		Unit:      "millimeter",
		Namespace: coreNamespace,
	}

	if comps == nil || comps.Len() == 0 {
		obj := Object{ID: 1, Type: "model", Name: opts.Title, Mesh: meshToXML(m)}
		model.Resources.Objects = []Object{obj}
		model.Build.Items = []Item{{ObjectID: 1}}
		return model, nil
	}

	tags := comps.Tags()
	group := BaseMaterials{ID: 1}
	matIndex := make(map[mesh.Tag]int, len(tags))
	for i, tag := range tags {
		color, ok := opts.Colors[tag]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoColor, tag)
		}
		matIndex[tag] = i
		group.Materials = append(group.Materials, BaseMaterial{
			Name:         tag.String(),
			DisplayColor: color.String(),
		})
	}
	model.Resources.BaseMaterials = []BaseMaterials{group}

	if opts.SeparateComponents {
		id := 2
		for _, tag := range tags {
			sub := &mesh.Mesh{}
			for i := 0; i < comps.Len(); i++ {
				t, start, end := comps.Range(i)
				if t == tag {
					sub.Merge(m.Extract(start, end))
				}
			}
			idx := matIndex[tag]
			obj := Object{
				ID:     id,
				Type:   "model",
				Name:   tag.String(),
				PID:    group.ID,
				PIndex: &idx,
				Mesh:   meshToXML(sub),
			}
			model.Resources.Objects = append(model.Resources.Objects, obj)
			model.Build.Items = append(model.Build.Items, Item{ObjectID: id})
			id++
		}
		return model, nil
	}

	obj := Object{ID: 2, Type: "model", Name: opts.Title, PID: group.ID, Mesh: meshToXML(m)}
	for i := range obj.Mesh.Triangles.Triangles {
		tag, ok := comps.Lookup(i)
		if !ok {
			continue
		}
		idx := matIndex[tag]
		obj.Mesh.Triangles.Triangles[i].PID = group.ID
		obj.Mesh.Triangles.Triangles[i].P1 = &idx
	}
	model.Resources.Objects = []Object{obj}
	model.Build.Items = []Item{{ObjectID: 2}}
	return model, nil
}

func meshToXML(m *mesh.Mesh) MeshXML {
	out := MeshXML{}
	out.Vertices.Vertices = make([]VertexXML, len(m.Vertices))
	for i, v := range m.Vertices {
		out.Vertices.Vertices[i] = VertexXML{X: v.X, Y: v.Y, Z: v.Z}
	}
	out.Triangles.Triangles = make([]TriangleXML, len(m.Triangles))
	for i, t := range m.Triangles {
		out.Triangles.Triangles[i] = TriangleXML{V1: t.A, V2: t.B, V3: t.C}
	}
	return out
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
 <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
 <Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml"/>
</Types>
`

const relsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
 <Relationship Id="rel0" Target="/3D/3dmodel.model" Type="http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"/>
</Relationships>
`
