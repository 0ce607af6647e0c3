// Package document holds the read-only snapshot of an authoring document
// that the exporters consume: scenes, their object trees, shared light and
// camera data blocks, animation actions and the author's animation groups.
package document

import (
	"strings"

	"github.com/Faultbox/gp3d-export/pkg/math"
)

// SceneType controls what the exporter produces for a scene.
type SceneType string

const (
	SceneGame       SceneType = "game_scene"  // exported as a .scene file
	SceneAssets     SceneType = "assets"      // meshes feed the asset catalog, skeletons feed .animation files
	SceneAssetGroup SceneType = "asset_group" // asset hierarchies, not exported directly
	SceneNone       SceneType = "none"        // ignored
)

// Kind is the type of an object in a scene.
type Kind string

const (
	KindMesh     Kind = "mesh"
	KindLight    Kind = "light"
	KindCamera   Kind = "camera"
	KindSkeleton Kind = "skeleton"
	KindEmpty    Kind = "empty"
)

// LightType is the type of a light data block.
type LightType string

const (
	LightPoint LightType = "point"
	LightSun   LightType = "sun"
	LightSpot  LightType = "spot"
	LightHemi  LightType = "hemi"
	LightArea  LightType = "area"
)

// CameraType is the projection of a camera data block.
type CameraType string

const (
	CameraPerspective  CameraType = "persp"
	CameraOrthographic CameraType = "ortho"
	CameraPanoramic    CameraType = "panoramic"
)

// Document is a complete snapshot of the authoring document.
type Document struct {
	Scenes  []*Scene `yaml:"scenes"`
	Lights  []Light  `yaml:"lights"`
	Cameras []Camera `yaml:"cameras"`
	Actions []Action `yaml:"actions"`
	Assets  []Asset  `yaml:"assets"`
}

// Scene is one scene of the document.
type Scene struct {
	Name         string           `yaml:"name"`
	Type         SceneType        `yaml:"type"`
	FrameStart   int              `yaml:"frame_start"`
	FrameEnd     int              `yaml:"frame_end"`
	World        *World           `yaml:"world"`
	ActiveCamera string           `yaml:"active_camera"`
	Render       RenderSettings   `yaml:"render"`
	Groups       []AnimationGroup `yaml:"animation_groups"`
	Objects      []*Node          `yaml:"objects"`
}

// World holds scene-wide environment settings.
type World struct {
	AmbientColor Color `yaml:"ambient_color"`
}

// RenderSettings describes the render output of a scene.
type RenderSettings struct {
	ResolutionX  int     `yaml:"resolution_x"`
	ResolutionY  int     `yaml:"resolution_y"`
	PixelAspectX float64 `yaml:"pixel_aspect_x"`
	PixelAspectY float64 `yaml:"pixel_aspect_y"`
}

// DefaultRenderSettings returns a 1920x1080 output with square pixels.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		ResolutionX:  1920,
		ResolutionY:  1080,
		PixelAspectX: 1,
		PixelAspectY: 1,
	}
}

// AspectRatio returns the display aspect ratio of the output, pixel aspect included.
func (r RenderSettings) AspectRatio() float64 {
	return (float64(r.ResolutionX) * r.PixelAspectX) / (float64(r.ResolutionY) * r.PixelAspectY)
}

// Color is a linear RGB color.
type Color struct {
	R, G, B float64
}

// Node is an object in a scene hierarchy. Children are owned by their parent.
type Node struct {
	Name      string    `yaml:"name"`
	Kind      Kind      `yaml:"type"`
	Data      string    `yaml:"data"`      // mesh, light or camera data block name
	Materials []string  `yaml:"materials"` // material slots in order
	Transform Transform `yaml:"transform"` // relative to Parent
	Hidden    bool      `yaml:"hidden"`
	Tags      string    `yaml:"tags"` // whitespace separated
	Tracks    []Track   `yaml:"tracks"`
	Children  []*Node   `yaml:"children"`

	Parent *Node `yaml:"-"`
}

// Visible reports whether the node is shown.
func (n *Node) Visible() bool {
	return !n.Hidden
}

// TagList splits the tag string on whitespace.
func (n *Node) TagList() []string {
	return strings.Fields(n.Tags)
}

// World returns the node's transform in scene space.
// Parent links must be set (see Document.Link).
func (n *Node) World() math.Mat4 {
	m := n.Transform.Matrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Transform.Matrix().Mul(m)
	}
	return m
}

// Track returns the track with the given name.
func (n *Node) Track(name string) (*Track, bool) {
	for i := range n.Tracks {
		if n.Tracks[i].Name == name {
			return &n.Tracks[i], true
		}
	}
	return nil, false
}

// Transform is a translation, rotation and scale.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
}

// IdentityTransform returns a transform that changes nothing.
func IdentityTransform() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: math.One}
}

// Matrix returns translation * rotation * scale.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Translation, t.Rotation, t.Scale)
}

// Light is a light data block shared by any number of light objects.
type Light struct {
	Name     string    `yaml:"name"`
	Type     LightType `yaml:"type"`
	Color    Color     `yaml:"color"`
	Distance float64   `yaml:"distance"`
	SpotSize float64   `yaml:"spot_size"` // full cone angle, radians
}

// Camera is a camera data block shared by any number of camera objects.
type Camera struct {
	Name       string     `yaml:"name"`
	Type       CameraType `yaml:"type"`
	Angle      float64    `yaml:"angle"` // raw lens angle, radians
	OrthoScale float64    `yaml:"ortho_scale"`
	ClipStart  float64    `yaml:"clip_start"`
	ClipEnd    float64    `yaml:"clip_end"`
}

// Asset is an asset catalog entry: the object that owns a mesh data block
// and the assets scene it lives in.
type Asset struct {
	Data   string `yaml:"data"`
	Scene  string `yaml:"scene"`
	Object string `yaml:"object"`
}

// LightByName returns the light data block with the given name.
func (d *Document) LightByName(name string) (*Light, bool) {
	for i := range d.Lights {
		if d.Lights[i].Name == name {
			return &d.Lights[i], true
		}
	}
	return nil, false
}

// CameraByName returns the camera data block with the given name.
func (d *Document) CameraByName(name string) (*Camera, bool) {
	for i := range d.Cameras {
		if d.Cameras[i].Name == name {
			return &d.Cameras[i], true
		}
	}
	return nil, false
}

// ActionByName returns the action with the given name.
func (d *Document) ActionByName(name string) (*Action, bool) {
	for i := range d.Actions {
		if d.Actions[i].Name == name {
			return &d.Actions[i], true
		}
	}
	return nil, false
}

// SceneByName returns the scene with the given name.
func (d *Document) SceneByName(name string) (*Scene, bool) {
	for _, s := range d.Scenes {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Link sets parent pointers on every node. Load and Decode call it.
func (d *Document) Link() {
	for _, s := range d.Scenes {
		s.Walk(func(n, parent *Node) bool {
			n.Parent = parent
			return true
		})
	}
}

// Walk visits every node depth-first with its parent (nil for roots).
// Returning false from fn skips the node's children.
func (s *Scene) Walk(fn func(n, parent *Node) bool) {
	var walk func(n, parent *Node)
	walk = func(n, parent *Node) {
		if !fn(n, parent) {
			return
		}
		for _, c := range n.Children {
			walk(c, n)
		}
	}
	for _, n := range s.Objects {
		walk(n, nil)
	}
}

// FindObject returns the object with the given name anywhere in the scene.
func (s *Scene) FindObject(name string) (*Node, bool) {
	var found *Node
	s.Walk(func(n, _ *Node) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found, found != nil
}

// RootSkeletons returns the unparented skeleton objects of the scene.
func (s *Scene) RootSkeletons() []*Node {
	var out []*Node
	for _, n := range s.Objects {
		if n.Kind == KindSkeleton {
			out = append(out, n)
		}
	}
	return out
}

// SkeletonParentOrNone reports whether parent is absent or a skeleton.
// Such objects are placed in scene space rather than relative to their parent.
func SkeletonParentOrNone(parent *Node) bool {
	return parent == nil || parent.Kind == KindSkeleton
}
