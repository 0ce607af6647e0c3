// Package gltfimport builds a document snapshot from a glTF 2.0 file so
// scenes authored outside the original tool can be exported too.
//
// glTF is Y-up; the snapshot is Z-up like the authoring tool, so every
// transform is converted on the way in and converted back by the exporter.
package gltfimport

import (
	"fmt"
	stdmath "math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"

	"github.com/Faultbox/gp3d-export/pkg/document"
	"github.com/Faultbox/gp3d-export/pkg/math"
)

// DefaultFarPlane is used for perspective cameras with an infinite far plane.
const DefaultFarPlane = 1000

// Options control the conversion.
type Options struct {
	// AssetScene is the scene name written into mesh catalog entries, which
	// becomes the .gpb and .material file name. Empty means the file's base name.
	AssetScene string
	// Render is applied to every imported scene. A zero value means
	// document.DefaultRenderSettings.
	Render document.RenderSettings
}

// Open reads a .gltf or .glb file and converts it.
func Open(path string, opts Options) (*document.Document, error) {
	src, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Convert(src, base, opts)
}

// Convert builds a document from a decoded glTF file. name is used for
// unnamed scenes and as the default asset scene.
func Convert(src *gltf.Document, name string, opts Options) (*document.Document, error) {
	if opts.AssetScene == "" {
		opts.AssetScene = name
	}
	if opts.Render == (document.RenderSettings{}) {
		opts.Render = document.DefaultRenderSettings()
	}

	c := &converter{
		src:       src,
		opts:      opts,
		doc:       &document.Document{},
		skeletons: skeletonRoots(src),
		meshes:    make(map[int]string),
		cameras:   make(map[int]string),
		lights:    make(map[int]string),
		names:     make(map[string]bool),
		assets:    make(map[string]bool),
	}
	if err := c.convertScenes(name); err != nil {
		return nil, err
	}
	c.doc.Link()
	return c.doc, nil
}

type converter struct {
	src       *gltf.Document
	opts      Options
	doc       *document.Document
	skeletons map[int]bool

	// data block names by glTF index
	meshes  map[int]string
	cameras map[int]string
	lights  map[int]string
	names   map[string]bool // data block names in use
	assets  map[string]bool // mesh data blocks already in the catalog
}

func (c *converter) convertScenes(name string) error {
	for i, gs := range c.src.Scenes {
		sceneName := gs.Name
		switch {
		case sceneName != "":
		case len(c.src.Scenes) == 1:
			sceneName = name
		default:
			sceneName = fmt.Sprintf("%s_%d", name, i)
		}

		scene := &document.Scene{
			Name:   sceneName,
			Type:   document.SceneGame,
			Render: c.opts.Render,
		}
		visiting := make(map[int]bool)
		for _, idx := range gs.Nodes {
			n, err := c.node(scene, idx, nil, visiting)
			if err != nil {
				return fmt.Errorf("scene %q: %w", sceneName, err)
			}
			scene.Objects = append(scene.Objects, n)
		}
		c.doc.Scenes = append(c.doc.Scenes, scene)
	}
	return nil
}

func (c *converter) node(scene *document.Scene, idx int, parent *document.Node, visiting map[int]bool) (*document.Node, error) {
	if idx < 0 || idx >= len(c.src.Nodes) {
		return nil, fmt.Errorf("%w: node index %d out of range", document.ErrInvalidInput, idx)
	}
	if visiting[idx] {
		return nil, fmt.Errorf("%w: node %d is its own ancestor", document.ErrInvalidInput, idx)
	}
	visiting[idx] = true
	defer delete(visiting, idx)

	gn := c.src.Nodes[idx]
	n := &document.Node{
		Name:      gn.Name,
		Kind:      document.KindEmpty,
		Transform: localTransform(gn),
		Parent:    parent,
	}
	if n.Name == "" {
		n.Name = fmt.Sprintf("Node%d", idx)
	}

	var err error
	switch {
	case gn.Mesh != nil:
		err = c.mesh(n, *gn.Mesh)
	case gn.Camera != nil:
		err = c.camera(scene, n, *gn.Camera)
	case hasLight(gn):
		err = c.light(n, gn)
	case c.skeletons[idx]:
		n.Kind = document.KindSkeleton
	}
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", n.Name, err)
	}

	if (n.Kind == document.KindCamera || n.Kind == document.KindLight) && document.SkeletonParentOrNone(parent) {
		// undone by the exporter's -90 degree correction
		n.Transform.Rotation = n.Transform.Rotation.Mul(math.QuatFromAxisAngle(math.Vec3{X: 1}, stdmath.Pi/2))
	}

	for _, child := range gn.Children {
		cn, err := c.node(scene, child, n, visiting)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}

func (c *converter) mesh(n *document.Node, idx int) error {
	if idx < 0 || idx >= len(c.src.Meshes) {
		return fmt.Errorf("%w: mesh index %d out of range", document.ErrInvalidInput, idx)
	}
	m := c.src.Meshes[idx]
	n.Kind = document.KindMesh

	data, ok := c.meshes[idx]
	if !ok {
		data = c.unique(m.Name, "Mesh", idx)
		c.meshes[idx] = data
	}
	n.Data = data

	for _, p := range m.Primitives {
		if p.Material != nil && *p.Material < len(c.src.Materials) {
			mat := c.src.Materials[*p.Material].Name
			if mat == "" {
				mat = fmt.Sprintf("Material%d", *p.Material)
			}
			n.Materials = []string{mat}
			break
		}
	}

	if !c.assets[data] {
		c.assets[data] = true
		c.doc.Assets = append(c.doc.Assets, document.Asset{Data: data, Scene: c.opts.AssetScene, Object: n.Name})
	}
	return nil
}

func (c *converter) camera(scene *document.Scene, n *document.Node, idx int) error {
	if idx < 0 || idx >= len(c.src.Cameras) {
		return fmt.Errorf("%w: camera index %d out of range", document.ErrInvalidInput, idx)
	}
	n.Kind = document.KindCamera
	if scene.ActiveCamera == "" {
		scene.ActiveCamera = n.Name
	}

	if name, ok := c.cameras[idx]; ok {
		n.Data = name
		return nil
	}
	gc := c.src.Cameras[idx]
	cam := document.Camera{Name: c.unique(gc.Name, "Camera", idx)}
	switch {
	case gc.Perspective != nil:
		p := gc.Perspective
		cam.Type = document.CameraPerspective
		cam.Angle = LensAngle(p.Yfov, c.opts.Render.AspectRatio())
		cam.ClipStart = p.Znear
		cam.ClipEnd = DefaultFarPlane
		if p.Zfar != nil {
			cam.ClipEnd = *p.Zfar
		}
	case gc.Orthographic != nil:
		o := gc.Orthographic
		cam.Type = document.CameraOrthographic
		cam.OrthoScale = 2 * o.Xmag
		cam.ClipStart = o.Znear
		cam.ClipEnd = o.Zfar
	default:
		return fmt.Errorf("%w: camera %d has no projection", document.ErrInvalidInput, idx)
	}
	c.cameras[idx] = cam.Name
	c.doc.Cameras = append(c.doc.Cameras, cam)
	n.Data = cam.Name
	return nil
}

func hasLight(gn *gltf.Node) bool {
	_, ok := gn.Extensions[lightspunctual.ExtensionName]
	return ok
}

func (c *converter) light(n *document.Node, gn *gltf.Node) error {
	idx, ok := gn.Extensions[lightspunctual.ExtensionName].(lightspunctual.LightIndex)
	if !ok {
		return fmt.Errorf("%w: unreadable %s extension", document.ErrInvalidInput, lightspunctual.ExtensionName)
	}
	lights, ok := c.src.Extensions[lightspunctual.ExtensionName].(lightspunctual.Lights)
	if !ok || int(idx) >= len(lights) {
		return fmt.Errorf("%w: light %d not defined", document.ErrInvalidInput, idx)
	}
	n.Kind = document.KindLight

	if name, ok := c.lights[int(idx)]; ok {
		n.Data = name
		return nil
	}
	gl := lights[idx]
	color := gl.ColorOrDefault()
	l := document.Light{
		Name:  c.unique(gl.Name, "Light", int(idx)),
		Color: document.Color{R: color[0], G: color[1], B: color[2]},
	}
	if gl.Range != nil {
		l.Distance = *gl.Range
	}
	switch gl.Type {
	case lightspunctual.TypeDirectional:
		l.Type = document.LightSun
	case lightspunctual.TypeSpot:
		l.Type = document.LightSpot
		outer := stdmath.Pi / 4
		if gl.Spot != nil {
			outer = gl.Spot.OuterConeAngleOrDefault()
		}
		l.SpotSize = 2 * outer
	default:
		l.Type = document.LightPoint
	}
	c.lights[int(idx)] = l.Name
	c.doc.Lights = append(c.doc.Lights, l)
	n.Data = l.Name
	return nil
}

// unique returns name, or prefix+index when name is empty, suffixed until
// it does not clash with another data block.
func (c *converter) unique(name, prefix string, idx int) string {
	if name == "" {
		name = fmt.Sprintf("%s%d", prefix, idx)
	}
	out := name
	for i := 1; c.names[out]; i++ {
		out = fmt.Sprintf("%s.%03d", name, i)
	}
	c.names[out] = true
	return out
}

// skeletonRoots returns the node indices that root a skin.
func skeletonRoots(src *gltf.Document) map[int]bool {
	roots := make(map[int]bool)
	for _, s := range src.Skins {
		switch {
		case s.Skeleton != nil:
			roots[*s.Skeleton] = true
		case len(s.Joints) > 0:
			roots[s.Joints[0]] = true
		}
	}
	return roots
}

// localTransform converts a node's Y-up local transform to Z-up.
func localTransform(gn *gltf.Node) document.Transform {
	t, q, s := nodeTRS(gn)
	return document.Transform{
		Translation: t.ZUp(),
		Rotation:    q.ZUp(),
		Scale:       math.Vec3{X: s.X, Y: s.Z, Z: s.Y},
	}
}

func nodeTRS(gn *gltf.Node) (math.Vec3, math.Quat, math.Vec3) {
	m := math.Mat4(gn.Matrix)
	if m != (math.Mat4{}) && m != math.Identity() {
		return m.Decompose()
	}

	q := math.Quat{X: gn.Rotation[0], Y: gn.Rotation[1], Z: gn.Rotation[2], W: gn.Rotation[3]}
	if q.IsZero() {
		q = math.QuatIdentity()
	}
	s := math.Vec3From(gn.Scale)
	if s.IsZero() {
		s = math.One
	}
	return math.Vec3From(gn.Translation), q.Normalize(), s
}

// LensAngle recovers the raw lens angle whose vertical field of view at
// the given aspect ratio is yfov. Both angles are in radians.
func LensAngle(yfov, aspect float64) float64 {
	return 2 * stdmath.Atan(stdmath.Tan(yfov/2)*aspect)
}
