// Package anim merges animation groups that share strip prefixes into a
// parent/child clip hierarchy and renders it as a Gameplay3D .animation file.
package anim

import (
	"slices"

	"github.com/Faultbox/gp3d-export/pkg/document"
)

// Group is one named, ordered list of strips to aggregate.
type Group struct {
	Name   string
	Strips []document.StripRef
}

// GroupsFrom converts a scene's animation groups, keeping their order.
func GroupsFrom(groups []document.AnimationGroup) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Name: g.ID, Strips: append([]document.StripRef(nil), g.Strips...)}
	}
	return out
}

// ReorderByFrequency rewrites every group's strips in descending order of how
// many times the strip name is used across all groups. Ties keep the order in
// which names first appear. Repeated names within a group collapse to the
// first ref seen for that name anywhere.
func ReorderByFrequency(groups []Group) []Group {
	counts := make(map[string]int)
	first := make(map[string]document.StripRef)
	var order []string
	for _, g := range groups {
		for _, s := range g.Strips {
			if _, ok := first[s.Strip]; !ok {
				first[s.Strip] = s
				order = append(order, s.Strip)
			}
			counts[s.Strip]++
		}
	}

	common := slices.Clone(order)
	slices.SortStableFunc(common, func(a, b string) int {
		return counts[b] - counts[a]
	})

	out := make([]Group, len(groups))
	for i, g := range groups {
		member := make(map[string]bool, len(g.Strips))
		for _, s := range g.Strips {
			member[s.Strip] = true
		}
		strips := make([]document.StripRef, 0, len(member))
		for _, name := range common {
			if member[name] {
				strips = append(strips, first[name])
			}
		}
		out[i] = Group{Name: g.Name, Strips: strips}
	}
	return out
}
