// Package scenegen renders a scene's object tree as a Gameplay3D .scene file.
package scenegen

import (
	"fmt"
	stdmath "math"
	"strings"

	"cogentcore.org/core/ordmap"

	"github.com/Faultbox/gp3d-export/pkg/document"
	"github.com/Faultbox/gp3d-export/pkg/math"
	"github.com/Faultbox/gp3d-export/pkg/textfmt"
)

// AssetCatalog maps a mesh data block to the assets scene and object that
// own its exported geometry.
type AssetCatalog interface {
	Lookup(data string) (document.Asset, bool)
}

// Serializer renders scenes. Light and camera data blocks are looked up in Doc.
type Serializer struct {
	Doc     *document.Document
	Catalog AssetCatalog
}

// Result is a rendered scene. Warnings hold one MissingReferenceError per
// reference that could not be resolved; the text is still usable.
type Result struct {
	Text     string
	Warnings []error
}

// New returns a serializer over doc.
func New(doc *document.Document, catalog AssetCatalog) *Serializer {
	return &Serializer{Doc: doc, Catalog: catalog}
}

// Serialize renders scene, whose parent links must be set (Load and Decode
// do this). Light and camera definitions follow the scene
// block, once per data block in the order first referenced.
func (s *Serializer) Serialize(scene *document.Scene) Result {
	w := &sceneWriter{
		Serializer: s,
		scene:      scene,
		lights:     ordmap.New[string, string](),
		cameras:    ordmap.New[string, string](),
	}

	w.b.Open(0, "scene "+scene.Name)
	if scene.World != nil {
		c := scene.World.AmbientColor
		w.b.Attr(1, "ambientColor", textfmt.Triple(c.R, c.G, c.B))
	}
	if scene.ActiveCamera != "" {
		w.b.Attr(1, "activeCamera", StripSuffix(scene.ActiveCamera))
	}
	for _, n := range scene.Objects {
		w.node(1, n, nil)
	}
	w.b.Close(0)

	for _, def := range w.lights.Values() {
		w.b.Append(def)
	}
	for _, def := range w.cameras.Values() {
		w.b.Append(def)
	}
	return Result{Text: w.b.String(), Warnings: w.warnings}
}

// WriteFile renders scene and writes it to path, replacing any existing file.
func (s *Serializer) WriteFile(path string, scene *document.Scene) (Result, error) {
	res := s.Serialize(scene)
	if err := textfmt.WriteFile(path, []byte(res.Text)); err != nil {
		return res, err
	}
	return res, nil
}

type sceneWriter struct {
	*Serializer
	scene    *document.Scene
	b        textfmt.Builder
	lights   *ordmap.Map[string, string]
	cameras  *ordmap.Map[string, string]
	warnings []error
}

func (w *sceneWriter) warn(kind, name string, n *document.Node) {
	w.warnings = append(w.warnings, &document.MissingReferenceError{Kind: kind, Name: name, Node: n.Name})
}

func (w *sceneWriter) node(depth int, n, parent *document.Node) {
	var asset document.Asset
	if n.Kind == document.KindMesh {
		var ok bool
		if w.Catalog != nil {
			asset, ok = w.Catalog.Lookup(n.Data)
		}
		if !ok {
			w.warn("mesh asset", n.Data, n)
			return
		}
	}

	w.b.Open(depth, "node "+StripSuffix(n.Name))
	props := depth + 1

	switch n.Kind {
	case document.KindMesh:
		w.b.Attr(props, "url", fmt.Sprintf("res/gpb/%s.gpb#%s", asset.Scene, asset.Object))
		if len(n.Materials) > 0 && n.Materials[0] != "" {
			mat := strings.ReplaceAll(n.Materials[0], ".", "_")
			w.b.Attr(props, "material", fmt.Sprintf("res/materials/%s.material#%s", asset.Scene, mat))
		}
	case document.KindLight:
		if w.defineLight(n) {
			w.b.Attr(props, "light", w.sceneRef(n.Data))
		}
	case document.KindCamera:
		if w.defineCamera(n) {
			w.b.Attr(props, "camera", w.sceneRef(n.Data))
		}
	}

	w.transform(props, nodeMatrix(n, parent))

	if n.Visible() {
		w.b.Attr(props, "enabled", textfmt.Bool(true))
	}
	if tags := n.TagList(); len(tags) > 0 {
		w.b.Open(props, "tags")
		for _, tag := range tags {
			w.b.Line(props+1, "%s", tag)
		}
		w.b.Close(props)
	}

	for _, c := range n.Children {
		w.node(depth+1, c, n)
	}
	w.b.Close(depth)
}

func (w *sceneWriter) sceneRef(data string) string {
	return fmt.Sprintf("res/scenes/%s.scene#%s", w.scene.Name, data)
}

// nodeMatrix picks the matrix written for n. Nodes without a parent, or
// parented to a skeleton, are placed in scene space; lights and cameras get
// an extra -90 degree turn about X so they look down -Z in a Y-up scene.
func nodeMatrix(n, parent *document.Node) math.Mat4 {
	if !document.SkeletonParentOrNone(parent) {
		return n.Transform.Matrix()
	}
	world := n.World()
	if n.Kind == document.KindLight || n.Kind == document.KindCamera {
		return world.Mul(math.RotateX(math.Radians(-90)))
	}
	return world
}

func (w *sceneWriter) transform(depth int, m math.Mat4) {
	t, q, s := m.Decompose()
	axis, angle := q.ToAxisAngle()

	t = t.YUp()
	axis = axis.YUp()
	w.b.Attr(depth, "translate", textfmt.Triple(t.X, t.Y, t.Z))
	w.b.Attr(depth, "rotate", textfmt.Triple(axis.X, axis.Y, axis.Z)+", "+textfmt.Deci(math.Degrees(angle)))
	w.b.Attr(depth, "scale", textfmt.Triple(s.X, s.Z, s.Y))
}

// defineLight records the light definition for n's data block the first
// time it is seen. It reports false when the data block does not exist.
func (w *sceneWriter) defineLight(n *document.Node) bool {
	if _, ok := w.lights.ValueByKeyTry(n.Data); ok {
		return true
	}
	l, ok := w.Doc.LightByName(n.Data)
	if !ok {
		w.warn("light", n.Data, n)
		return false
	}
	w.lights.Add(l.Name, LightDefinition(l))
	return true
}

func (w *sceneWriter) defineCamera(n *document.Node) bool {
	if _, ok := w.cameras.ValueByKeyTry(n.Data); ok {
		return true
	}
	c, ok := w.Doc.CameraByName(n.Data)
	if !ok {
		w.warn("camera", n.Data, n)
		return false
	}
	w.cameras.Add(c.Name, CameraDefinition(c, w.scene.Render))
	return true
}

// LightDefinition renders a top-level light block.
func LightDefinition(l *document.Light) string {
	var b textfmt.Builder
	b.Open(0, "light "+l.Name)
	typ := strings.ToUpper(string(l.Type))
	if l.Type == document.LightSun {
		typ = "DIRECTIONAL"
	}
	b.Attr(1, "type", typ)
	b.Attr(1, "color", textfmt.Triple(l.Color.R, l.Color.G, l.Color.B))
	if l.Type == document.LightSpot || l.Type == document.LightPoint {
		b.Attr(1, "range", textfmt.Deci(l.Distance))
		if l.Type == document.LightSpot {
			b.Attr(1, "innerAngle", textfmt.Deci(1))
			b.Attr(1, "outerAngle", textfmt.Deci(l.SpotSize))
		}
	}
	b.Close(0)
	return b.String()
}

// CameraDefinition renders a top-level camera block. Panoramic cameras
// carry only their clip planes.
func CameraDefinition(c *document.Camera, r document.RenderSettings) string {
	var b textfmt.Builder
	b.Open(0, "camera "+c.Name)
	switch c.Type {
	case document.CameraPerspective:
		b.Attr(1, "type", "PERSPECTIVE")
		b.Attr(1, "fieldOfView", textfmt.Deci(FieldOfView(c.Angle, r.AspectRatio())))
	case document.CameraOrthographic:
		zx, zy := OrthoZoom(c.OrthoScale, r.ResolutionX, r.ResolutionY)
		b.Attr(1, "type", "ORTHOGRAPHIC")
		b.Attr(1, "zoomX", textfmt.Deci(zx))
		b.Attr(1, "zoomY", textfmt.Deci(zy))
	}
	b.Attr(1, "nearPlane", textfmt.Deci(c.ClipStart))
	b.Attr(1, "farPlane", textfmt.Deci(c.ClipEnd))
	b.Close(0)
	return b.String()
}

// FieldOfView converts a raw lens angle in radians to the vertical field of
// view in degrees for the given output aspect ratio.
func FieldOfView(angle, aspect float64) float64 {
	return math.Degrees(2 * stdmath.Atan(stdmath.Tan(angle/2)/aspect))
}

// OrthoZoom returns the horizontal and vertical zoom of an orthographic
// camera rendered at the given resolution.
func OrthoZoom(scale float64, resX, resY int) (float64, float64) {
	return scale, float64(resY) * scale / float64(resX)
}

// StripSuffix removes a trailing ".001", the suffix given to the first
// duplicate of a name. Later suffixes such as ".002" are kept.
func StripSuffix(name string) string {
	if base, ok := strings.CutSuffix(name, ".001"); ok && base != "" {
		return base
	}
	return name
}
