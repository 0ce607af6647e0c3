package document

// ClipParams are the playback settings of one animation clip.
type ClipParams struct {
	Indefinite    bool    `yaml:"indefinite"`
	RepeatCount   float64 `yaml:"repeat_count"`
	Speed         float64 `yaml:"speed"`
	LoopBlendTime float64 `yaml:"loop_blend_time"`
}

// Minimum values accepted for clip parameters.
const (
	MinRepeatCount = 0.1
	MinSpeed       = 1.0
)

// DefaultClipParams returns the parameters used when an action carries none.
func DefaultClipParams() ClipParams {
	return ClipParams{RepeatCount: 1, Speed: 1}
}

// Action is a named animation action. Clip is nil when the author never
// customized its playback.
type Action struct {
	Name string      `yaml:"name"`
	Clip *ClipParams `yaml:"clip"`
}

// ClipOrDefault returns the action's clip parameters or the defaults.
func (a *Action) ClipOrDefault() ClipParams {
	if a.Clip == nil {
		return DefaultClipParams()
	}
	return *a.Clip
}

// Track is a named sequence of strips on a skeleton.
type Track struct {
	Name   string  `yaml:"name"`
	Strips []Strip `yaml:"strips"`
}

// Strip returns the strip with the given name.
func (t *Track) Strip(name string) (*Strip, bool) {
	for i := range t.Strips {
		if t.Strips[i].Name == name {
			return &t.Strips[i], true
		}
	}
	return nil, false
}

// Strip places an action on a track over an inclusive frame range.
type Strip struct {
	Name       string `yaml:"name"`
	Action     string `yaml:"action"`
	FrameStart int    `yaml:"frame_start"`
	FrameEnd   int    `yaml:"frame_end"`
}

// StripRef names a strip by its track and strip name.
type StripRef struct {
	Track string `yaml:"track"`
	Strip string `yaml:"strip"`
}

func (r StripRef) String() string {
	return r.Track + "/" + r.Strip
}

// SameStrip reports whether two refs denote the same strip. Only the strip
// name is compared; strips on different tracks with equal names match.
func SameStrip(a, b StripRef) bool {
	return a.Strip == b.Strip
}

// AnimationGroup is an author-defined ordered list of strips that plays as
// one named clip.
type AnimationGroup struct {
	ID       string     `yaml:"id"`
	BoneRoot string     `yaml:"bone_root"`
	Strips   []StripRef `yaml:"strips"`
}

// ResolvedStrip is a strip with its frame range and clip parameters looked up.
type ResolvedStrip struct {
	Track      string
	Name       string
	Action     string
	FrameStart int
	FrameEnd   int
	Clip       ClipParams
}

// TrackResolver resolves strip refs against the tracks of one skeleton.
type TrackResolver struct {
	doc      *Document
	skeleton *Node
}

// NewStripResolver returns a resolver over the skeleton's tracks. Clip
// parameters come from the document's actions.
func NewStripResolver(doc *Document, skeleton *Node) *TrackResolver {
	return &TrackResolver{doc: doc, skeleton: skeleton}
}

// ResolveStrip looks up a strip by track and strip name.
func (r *TrackResolver) ResolveStrip(track, strip string) (ResolvedStrip, bool) {
	t, ok := r.skeleton.Track(track)
	if !ok {
		return ResolvedStrip{}, false
	}
	s, ok := t.Strip(strip)
	if !ok {
		return ResolvedStrip{}, false
	}
	clip := DefaultClipParams()
	if a, ok := r.doc.ActionByName(s.Action); ok {
		clip = a.ClipOrDefault()
	}
	return ResolvedStrip{
		Track:      t.Name,
		Name:       s.Name,
		Action:     s.Action,
		FrameStart: s.FrameStart,
		FrameEnd:   s.FrameEnd,
		Clip:       clip,
	}, true
}
