package anim

import (
	"slices"

	"github.com/Faultbox/gp3d-export/pkg/document"
)

// Prop is one aggregated clip group. A child plays its parent's strips
// first and then its own.
type Prop struct {
	Name   string
	Strips []document.StripRef
	Parent string // empty for root groups
}

// IsRoot reports whether the prop has no parent.
func (p Prop) IsRoot() bool {
	return p.Parent == ""
}

// Aggregator merges groups that share a strip prefix.
type Aggregator struct {
	// Equal decides whether two refs are the same strip. Nil means
	// document.SameStrip.
	Equal func(a, b document.StripRef) bool
}

// Aggregate merges groups with a default Aggregator.
func Aggregate(groups []Group) []Prop {
	return Aggregator{}.Aggregate(groups)
}

// Aggregate walks all groups one strip index at a time. The first group
// still present picks the pivot strip for the round. A group that runs out
// of strips is finalized with the shared prefix collected so far and becomes
// the parent of everything finalized after it. A group that disagrees with
// the pivot is finalized with the prefix plus its own remaining strips.
// Every input group appears exactly once in the result and parents are
// always emitted before their children.
func (a Aggregator) Aggregate(groups []Group) []Prop {
	equal := a.Equal
	if equal == nil {
		equal = document.SameStrip
	}

	working := slices.Clone(groups)
	props := make([]Prop, 0, len(groups))
	var base []document.StripRef
	parent := ""

	for index := 0; len(working) > 0; index++ {
		var pivot *document.StripRef
		remaining := working[:0:0]

		for _, g := range working {
			switch {
			case index >= len(g.Strips):
				props = append(props, Prop{Name: g.Name, Strips: slices.Clone(base), Parent: parent})
				base = base[:0:0]
				parent = g.Name
			case pivot == nil:
				pivot = &g.Strips[index]
				remaining = append(remaining, g)
			case !equal(*pivot, g.Strips[index]):
				strips := append(slices.Clone(base), g.Strips[index:]...)
				props = append(props, Prop{Name: g.Name, Strips: strips, Parent: parent})
			default:
				remaining = append(remaining, g)
			}
		}

		working = remaining
		if len(working) > 0 && pivot != nil {
			base = append(base, *pivot)
		}
	}
	return props
}
