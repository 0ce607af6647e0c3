package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/gp3d-export/internal/config"
)

const heroDoc = `
actions:
  - name: WalkAction
scenes:
  - name: Hero
    type: assets
    frame_end: 40
    animation_groups:
      - id: Walk
        strips:
          - {track: Base, strip: Walk}
      - id: %s
        strips:
          - {track: Base, strip: Walk}
    objects:
      - name: Rig
        type: armature
        tracks:
          - name: Base
            strips:
              - {name: Walk, action: WalkAction, frame_start: 1, frame_end: 40}
`

func writeDoc(t *testing.T, secondID string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hero.yaml")
	data := []byte(fmt.Sprintf(heroDoc, secondID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCmdTree(t *testing.T) {
	tests := []struct {
		name     string
		secondID string
		want     int
	}{
		{"distinct ids", "Run", 0},
		{"duplicate ids", "Walk", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDoc(t, tt.secondID)
			if got := cmdTree(config.Default(), []string{path, "Hero"}); got != tt.want {
				t.Errorf("cmdTree() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCmdTreeUsage(t *testing.T) {
	if got := cmdTree(config.Default(), nil); got != 1 {
		t.Errorf("cmdTree() = %d, want 1", got)
	}
	if got := cmdTree(config.Default(), []string{writeDoc(t, "Run"), "Nope"}); got != 1 {
		t.Errorf("cmdTree() unknown scene = %d, want 1", got)
	}
}
