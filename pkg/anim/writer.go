package anim

import (
	"fmt"

	"github.com/Faultbox/gp3d-export/pkg/document"
	"github.com/Faultbox/gp3d-export/pkg/textfmt"
)

// StripResolver looks up the frame range and clip parameters of a strip.
type StripResolver interface {
	ResolveStrip(track, strip string) (document.ResolvedStrip, bool)
}

// Render formats props as an animation file. frameCount is written on
// root blocks only.
func Render(props []Prop, frameCount int, resolver StripResolver) ([]byte, error) {
	var b textfmt.Builder
	for _, p := range props {
		if p.IsRoot() {
			b.Open(0, "animation "+p.Name)
			b.Attr(1, "frameCount", textfmt.Int(frameCount))
		} else {
			b.Open(0, "animation "+p.Name+" : "+p.Parent)
		}
		for _, ref := range p.Strips {
			s, ok := resolver.ResolveStrip(ref.Track, ref.Strip)
			if !ok {
				return nil, fmt.Errorf("%w: animation %q: strip %s not found", document.ErrInvalidInput, p.Name, ref)
			}
			writeClip(&b, s)
		}
		b.Close(0)
	}
	return b.Bytes(), nil
}

func writeClip(b *textfmt.Builder, s document.ResolvedStrip) {
	b.Open(1, "clip "+s.Name)
	b.Attr(2, "begin", textfmt.Int(s.FrameStart))
	b.Attr(2, "end", textfmt.Int(s.FrameEnd))
	if s.Clip.Indefinite {
		b.Attr(2, "repeatCount", "INDEFINITE")
	} else {
		b.Attr(2, "repeatCount", textfmt.Deci(s.Clip.RepeatCount))
	}
	b.Attr(2, "speed", textfmt.Deci(s.Clip.Speed))
	b.Attr(2, "loopBlendTime", textfmt.Deci(s.Clip.LoopBlendTime))
	b.Close(1)
}

// WriteFile renders props and writes them to path, replacing any existing file.
func WriteFile(path string, props []Prop, frameCount int, resolver StripResolver) error {
	data, err := Render(props, frameCount, resolver)
	if err != nil {
		return err
	}
	return textfmt.WriteFile(path, data)
}
