package document

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gp3d-export/pkg/math"
)

// Load reads a YAML document snapshot from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", path, err)
	}
	return doc, nil
}

// Decode reads a YAML document snapshot and links its node trees.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	doc.Link()
	return doc, nil
}

// UnmarshalYAML fills in scene defaults before decoding.
func (s *Scene) UnmarshalYAML(value *yaml.Node) error {
	type plain Scene
	p := plain{Type: SceneGame, Render: DefaultRenderSettings()}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = Scene(p)
	return nil
}

// UnmarshalYAML fills in the default clip parameters before decoding.
func (c *ClipParams) UnmarshalYAML(value *yaml.Node) error {
	type plain ClipParams
	p := plain(DefaultClipParams())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = ClipParams(p)
	return nil
}

// UnmarshalYAML accepts the authoring tool's names for some kinds.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "armature":
		*k = KindSkeleton
	case "lamp":
		*k = KindLight
	case "":
		*k = KindEmpty
	default:
		*k = Kind(s)
	}
	return nil
}

// UnmarshalYAML gives nodes without a transform the identity.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	type plain Node
	p := plain{Kind: KindEmpty, Transform: IdentityTransform()}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = Node(p)
	return nil
}

// UnmarshalYAML decodes a color from an [r, g, b] sequence.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeFloats(value, 3, "color")
	if err != nil {
		return err
	}
	*c = Color{R: v[0], G: v[1], B: v[2]}
	return nil
}

type transformYAML struct {
	Translation   []float64 `yaml:"translation"`
	Rotation      []float64 `yaml:"rotation_quaternion"` // w, x, y, z
	RotationEuler []float64 `yaml:"rotation_euler"`      // degrees, XYZ order
	Scale         []float64 `yaml:"scale"`
}

// UnmarshalYAML decodes a transform. Missing components stay at identity.
// A quaternion rotation takes priority over Euler angles.
func (t *Transform) UnmarshalYAML(value *yaml.Node) error {
	var raw transformYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	out := IdentityTransform()
	if raw.Translation != nil {
		if len(raw.Translation) != 3 {
			return fmt.Errorf("line %d: translation needs 3 values, got %d", value.Line, len(raw.Translation))
		}
		out.Translation = math.Vec3{X: raw.Translation[0], Y: raw.Translation[1], Z: raw.Translation[2]}
	}
	switch {
	case raw.Rotation != nil:
		if len(raw.Rotation) != 4 {
			return fmt.Errorf("line %d: rotation_quaternion needs 4 values, got %d", value.Line, len(raw.Rotation))
		}
		out.Rotation = math.Quat{W: raw.Rotation[0], X: raw.Rotation[1], Y: raw.Rotation[2], Z: raw.Rotation[3]}.Normalize()
	case raw.RotationEuler != nil:
		if len(raw.RotationEuler) != 3 {
			return fmt.Errorf("line %d: rotation_euler needs 3 values, got %d", value.Line, len(raw.RotationEuler))
		}
		out.Rotation = math.QuatFromEuler(
			math.Radians(raw.RotationEuler[0]),
			math.Radians(raw.RotationEuler[1]),
			math.Radians(raw.RotationEuler[2]),
		)
	}
	if raw.Scale != nil {
		if len(raw.Scale) != 3 {
			return fmt.Errorf("line %d: scale needs 3 values, got %d", value.Line, len(raw.Scale))
		}
		out.Scale = math.Vec3{X: raw.Scale[0], Y: raw.Scale[1], Z: raw.Scale[2]}
	}
	*t = out
	return nil
}

func decodeFloats(value *yaml.Node, n int, what string) ([]float64, error) {
	var v []float64
	if err := value.Decode(&v); err != nil {
		return nil, err
	}
	if len(v) != n {
		return nil, fmt.Errorf("line %d: %s needs %d values, got %d", value.Line, what, n, len(v))
	}
	return v, nil
}
