package document

import "fmt"

// Validate checks the document against the model's constraints and returns
// the first violation, wrapped in ErrInvalidInput.
func (d *Document) Validate() error {
	seenScenes := make(map[string]bool, len(d.Scenes))
	for _, s := range d.Scenes {
		if s.Name == "" {
			return invalid("scene with empty name")
		}
		if seenScenes[s.Name] {
			return invalid("duplicate scene %q", s.Name)
		}
		seenScenes[s.Name] = true
		if err := d.validateScene(s); err != nil {
			return err
		}
	}

	for _, a := range d.Actions {
		if a.Name == "" {
			return invalid("action with empty name")
		}
		if a.Clip != nil {
			if err := a.Clip.validate(); err != nil {
				return invalid("action %q: %v", a.Name, err)
			}
		}
	}
	for _, l := range d.Lights {
		switch l.Type {
		case LightPoint, LightSun, LightSpot, LightHemi, LightArea:
		default:
			return invalid("light %q: unknown type %q", l.Name, l.Type)
		}
	}
	for _, c := range d.Cameras {
		switch c.Type {
		case CameraPerspective, CameraOrthographic, CameraPanoramic:
		default:
			return invalid("camera %q: unknown type %q", c.Name, c.Type)
		}
	}
	return nil
}

func (d *Document) validateScene(s *Scene) error {
	switch s.Type {
	case SceneGame, SceneAssets, SceneAssetGroup, SceneNone:
	default:
		return invalid("scene %q: unknown type %q", s.Name, s.Type)
	}
	r := s.Render
	if r.ResolutionX <= 0 || r.ResolutionY <= 0 || r.PixelAspectX <= 0 || r.PixelAspectY <= 0 {
		return invalid("scene %q: render resolution and pixel aspect must be positive", s.Name)
	}
	if s.FrameEnd < s.FrameStart {
		return invalid("scene %q: frame end %d before frame start %d", s.Name, s.FrameEnd, s.FrameStart)
	}

	var err error
	s.Walk(func(n, _ *Node) bool {
		if err != nil {
			return false
		}
		err = d.validateNode(s, n)
		return err == nil
	})
	if err != nil {
		return err
	}

	if s.ActiveCamera != "" {
		if _, ok := s.FindObject(s.ActiveCamera); !ok {
			return invalid("scene %q: active camera %q is not an object of the scene", s.Name, s.ActiveCamera)
		}
	}

	ids := make(map[string]bool, len(s.Groups))
	for _, g := range s.Groups {
		if g.ID == "" {
			return invalid("scene %q: animation group with empty id", s.Name)
		}
		if ids[g.ID] {
			return invalid("scene %q: duplicate animation group %q", s.Name, g.ID)
		}
		ids[g.ID] = true
		for i, ref := range g.Strips {
			if ref.Track == "" || ref.Strip == "" {
				return invalid("scene %q: group %q: strip %d has an empty track or strip name", s.Name, g.ID, i)
			}
		}
	}
	return nil
}

func (d *Document) validateNode(s *Scene, n *Node) error {
	if n.Name == "" {
		return invalid("scene %q: object with empty name", s.Name)
	}
	switch n.Kind {
	case KindMesh, KindLight, KindCamera, KindSkeleton, KindEmpty:
	default:
		return invalid("scene %q: object %q: unknown type %q", s.Name, n.Name, n.Kind)
	}
	for _, t := range n.Tracks {
		for _, st := range t.Strips {
			if st.FrameEnd < st.FrameStart {
				return invalid("object %q: strip %q ends before it starts", n.Name, st.Name)
			}
			if st.Action == "" {
				continue
			}
			if _, ok := d.ActionByName(st.Action); !ok {
				return invalid("object %q: strip %q references unknown action %q", n.Name, st.Name, st.Action)
			}
		}
	}
	return nil
}

func (c ClipParams) validate() error {
	if c.RepeatCount < MinRepeatCount {
		return fmt.Errorf("repeat count %g below %g", c.RepeatCount, MinRepeatCount)
	}
	if c.Speed < MinSpeed {
		return fmt.Errorf("speed %g below %g", c.Speed, MinSpeed)
	}
	if c.LoopBlendTime < 0 {
		return fmt.Errorf("negative loop blend time %g", c.LoopBlendTime)
	}
	return nil
}
