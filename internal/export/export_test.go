package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gp3d-export/internal/config"
	"github.com/Faultbox/gp3d-export/pkg/anim"
	"github.com/Faultbox/gp3d-export/pkg/document"
	"github.com/Faultbox/gp3d-export/pkg/textfmt"
)

const samplePath = "../../pkg/document/testdata/sample.yaml"

func loadSample(t *testing.T) *document.Document {
	t.Helper()
	doc, err := document.Load(samplePath)
	require.NoError(t, err)
	return doc
}

func decode(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Decode(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func newExporter(t *testing.T) (*Exporter, string) {
	t.Helper()
	out := t.TempDir()
	cfg := config.Default()
	cfg.Export.OutputDir = out
	return New(cfg), out
}

type progressCall struct {
	done, total int
	scene       string
}

func TestRunSample(t *testing.T) {
	e, out := newExporter(t)
	var calls []progressCall
	e.Progress = func(done, total int, scene string) {
		calls = append(calls, progressCall{done, total, scene})
	}

	report, err := e.Run(loadSample(t))
	require.NoError(t, err)

	scenePath := filepath.Join(out, "scenes", "Level.scene")
	animPath := filepath.Join(out, "animations", "Hero.animation")
	assert.Equal(t, []string{scenePath, animPath}, report.Written)
	assert.Empty(t, report.Failed)
	assert.Empty(t, report.Warnings)

	scene, err := os.ReadFile(scenePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(scene), "scene Level {\n"))
	assert.Contains(t, string(scene), "url = res/gpb/Props.gpb#Rock.001")

	data, err := os.ReadFile(animPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "animation walk : idle {\n")
	assert.Contains(t, string(data), "repeatCount = INDEFINITE")

	assert.Equal(t, []progressCall{
		{0, 3, "Level"},
		{1, 3, "Hero"},
		{2, 3, "Props"},
		{3, 3, ""},
	}, calls)

	assert.Equal(t, 2, e.Catalog.Len())
}

func TestRunToggles(t *testing.T) {
	tests := []struct {
		name       string
		scenes     bool
		animations bool
		want       []string
	}{
		{"scenes only", true, false, []string{"scenes/Level.scene"}},
		{"animations only", false, true, []string{"animations/Hero.animation"}},
		{"nothing", false, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, out := newExporter(t)
			e.Config.Export.Scenes = tt.scenes
			e.Config.Export.Animations = tt.animations

			report, err := e.Run(loadSample(t))
			require.NoError(t, err)

			var got []string
			for _, p := range report.Written {
				rel, err := filepath.Rel(out, p)
				require.NoError(t, err)
				got = append(got, filepath.ToSlash(rel))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunInvalidInputWritesNothing(t *testing.T) {
	e, out := newExporter(t)
	doc := loadSample(t)
	doc.Scenes[2].Name = "Level"

	report, err := e.Run(doc)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, document.ErrInvalidInput))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

const missingStrip = `
actions:
  - name: Run
scenes:
  - name: Level
    type: game_scene
  - name: Hero
    type: assets
    frame_end: 10
    animation_groups:
      - id: run
        strips:
          - {track: Base, strip: Sprint}
    objects:
      - name: Rig
        type: armature
        tracks:
          - name: Base
            strips:
              - {name: Run, action: Run, frame_start: 1, frame_end: 10}
`

func TestRunMissingStrip(t *testing.T) {
	e, out := newExporter(t)
	_, err := e.Run(decode(t, missingStrip))
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Base/Sprint")
	assert.NoFileExists(t, filepath.Join(out, "scenes", "Level.scene"))

	// Strips are only checked when animations are exported.
	e.Config.Export.Animations = false
	report, err := e.Run(decode(t, missingStrip))
	require.NoError(t, err)
	assert.Len(t, report.Written, 1)
}

func TestRunWriteFailureContinues(t *testing.T) {
	e, out := newExporter(t)
	// A plain file where the scenes directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(out, "scenes"), []byte("x"), 0644))

	report, err := e.Run(loadSample(t))
	require.Error(t, err)
	require.NotNil(t, report)
	assert.True(t, errors.Is(err, textfmt.ErrWrite))
	assert.Contains(t, err.Error(), `scene "Level"`)
	assert.Equal(t, []string{"Level"}, report.Failed)
	assert.Equal(t, []string{filepath.Join(out, "animations", "Hero.animation")}, report.Written)
	assert.FileExists(t, filepath.Join(out, "animations", "Hero.animation"))
}

func TestRunWarnings(t *testing.T) {
	e, out := newExporter(t)
	doc := decode(t, `
scenes:
  - name: Level
    type: game_scene
    objects:
      - name: Tree
        type: mesh
        data: TreeMesh
      - name: Lamp
        type: light
        data: Nope
`)
	report, err := e.Run(doc)
	require.NoError(t, err)
	require.Len(t, report.Warnings, 2)
	for _, w := range report.Warnings {
		assert.True(t, errors.Is(w, document.ErrMissingReference))
	}
	assert.FileExists(t, filepath.Join(out, "scenes", "Level.scene"))
}

func TestRunSeveralSkeletons(t *testing.T) {
	e, out := newExporter(t)
	doc := decode(t, `
actions:
  - name: Idle
scenes:
  - name: Pair
    type: assets
    frame_end: 20
    animation_groups:
      - id: idle
        strips:
          - {track: Base, strip: Idle}
    objects:
      - name: RigA
        type: armature
        tracks:
          - name: Base
            strips:
              - {name: Idle, action: Idle, frame_start: 1, frame_end: 10}
      - name: RigB
        type: armature
        tracks:
          - name: Base
            strips:
              - {name: Idle, action: Idle, frame_start: 11, frame_end: 20}
`)
	report, err := e.Run(doc)
	require.NoError(t, err)
	assert.Len(t, report.Warnings, 1)
	assert.Equal(t, []string{filepath.Join(out, "animations", "Pair.animation")}, report.Written)

	data, err := os.ReadFile(filepath.Join(out, "animations", "Pair.animation"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "begin = 11")
}

func TestProps(t *testing.T) {
	e, _ := newExporter(t)
	hero, ok := loadSample(t).SceneByName("Hero")
	require.True(t, ok)

	assert.Equal(t, anim.Aggregate(anim.ReorderByFrequency(anim.GroupsFrom(hero.Groups))), e.Props(hero))

	e.Config.Animation.ReorderByFrequency = false
	assert.Equal(t, anim.Aggregate(anim.GroupsFrom(hero.Groups)), e.Props(hero))
}

func TestAnimation(t *testing.T) {
	e, out := newExporter(t)
	doc := loadSample(t)

	hero, _ := doc.SceneByName("Hero")
	data, err := e.Animation(doc, hero)
	require.NoError(t, err)
	assert.Contains(t, string(data), "clip Wave {")

	props, _ := doc.SceneByName("Props")
	_, err = e.Animation(doc, props)
	assert.True(t, errors.Is(err, document.ErrInvalidInput))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPaths(t *testing.T) {
	e := New(&config.Config{Export: config.ExportConfig{OutputDir: "res"}})
	assert.Equal(t, filepath.Join("res", "scenes", "Hero.scene"), e.ScenePath("Hero"))
	assert.Equal(t, filepath.Join("res", "animations", "Hero.animation"), e.AnimationPath("Hero"))
}

func TestRunGroupsWithoutSkeleton(t *testing.T) {
	e, out := newExporter(t)
	doc := decode(t, `
scenes:
  - name: Loose
    type: assets
    animation_groups:
      - id: idle
        strips:
          - {track: Base, strip: Idle}
    objects:
      - name: Box
        type: mesh
        data: BoxMesh
`)
	report, err := e.Run(doc)
	require.NoError(t, err)
	assert.Empty(t, report.Written)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0].Error(), "no root skeleton")
	assert.NoFileExists(t, filepath.Join(out, "animations", "Loose.animation"))
}
