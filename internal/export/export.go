// Package export runs a full export of a document: one .scene file per game
// scene and one .animation file per animated assets scene.
package export

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/gp3d-export/internal/assets"
	"github.com/Faultbox/gp3d-export/internal/config"
	"github.com/Faultbox/gp3d-export/internal/logger"
	"github.com/Faultbox/gp3d-export/pkg/anim"
	"github.com/Faultbox/gp3d-export/pkg/document"
	"github.com/Faultbox/gp3d-export/pkg/scenegen"
)

// Output subdirectories below the configured output directory.
const (
	ScenesDir     = "scenes"
	AnimationsDir = "animations"
)

// Exporter writes export files for a document.
type Exporter struct {
	Config  *config.Config
	Catalog *assets.Catalog

	// Progress, if set, is called before each scene and once at the end
	// with done == total.
	Progress func(done, total int, scene string)
}

// Report lists what a run produced.
type Report struct {
	Written  []string // paths of files written
	Warnings []error  // unresolved references, already logged
	Failed   []string // scenes whose file could not be written
}

// New creates an exporter with an empty catalog.
func New(cfg *config.Config) *Exporter {
	return &Exporter{
		Config:  cfg,
		Catalog: assets.NewCatalog(),
	}
}

// Run validates doc, refreshes the catalog and exports every scene in
// document order. Invalid input stops the run before anything is written.
// A write failure is logged and reported but the remaining scenes are still
// exported; the returned error then combines all write failures.
func (e *Exporter) Run(doc *document.Document) (*Report, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if e.Config.Export.Animations {
		if err := CheckStrips(doc); err != nil {
			return nil, err
		}
	}

	n := e.Catalog.Populate(doc)
	logger.Debug("asset catalog refreshed", zap.Int("entries", n))

	report := &Report{}
	ser := scenegen.New(doc, e.Catalog)
	total := len(doc.Scenes)
	var errs error

	for i, s := range doc.Scenes {
		e.progress(i, total, s.Name)
		log := logger.ForScene(s.Name)

		var err error
		switch {
		case s.Type == document.SceneGame && e.Config.Export.Scenes:
			err = e.writeScene(ser, s, report, log)
		case s.Type == document.SceneAssets && e.Config.Export.Animations:
			err = e.writeAnimations(doc, s, report, log)
		default:
			log.Debug("scene skipped", zap.String("type", string(s.Type)))
		}
		if err != nil {
			log.Error("export failed", zap.Error(err))
			report.Failed = append(report.Failed, s.Name)
			errs = multierr.Append(errs, fmt.Errorf("scene %q: %w", s.Name, err))
		}
	}
	e.progress(total, total, "")

	hits, misses := e.Catalog.Stats()
	logger.Info("export finished",
		zap.Int("files", len(report.Written)),
		zap.Int("warnings", len(report.Warnings)),
		zap.Int("failed", len(report.Failed)),
		zap.Int("catalog_hits", hits),
		zap.Int("catalog_misses", misses),
	)
	return report, errs
}

func (e *Exporter) progress(done, total int, scene string) {
	if e.Progress != nil {
		e.Progress(done, total, scene)
	}
}

// ScenePath returns where the .scene file for the named scene is written.
func (e *Exporter) ScenePath(scene string) string {
	return filepath.Join(e.Config.Export.OutputDir, ScenesDir, scene+".scene")
}

// AnimationPath returns where the .animation file for the named scene is written.
func (e *Exporter) AnimationPath(scene string) string {
	return filepath.Join(e.Config.Export.OutputDir, AnimationsDir, scene+".animation")
}

func (e *Exporter) writeScene(ser *scenegen.Serializer, s *document.Scene, report *Report, log *zap.Logger) error {
	path := e.ScenePath(s.Name)
	res, err := ser.WriteFile(path, s)
	for _, w := range res.Warnings {
		log.Warn("unresolved reference", zap.Error(w))
	}
	report.Warnings = append(report.Warnings, res.Warnings...)
	if err != nil {
		return err
	}
	report.Written = append(report.Written, path)
	log.Info("scene written", zap.String("path", path))
	return nil
}

func (e *Exporter) writeAnimations(doc *document.Document, s *document.Scene, report *Report, log *zap.Logger) error {
	if len(s.Groups) == 0 {
		log.Debug("no animation groups")
		return nil
	}
	skeletons := s.RootSkeletons()
	if len(skeletons) == 0 {
		w := fmt.Errorf("%d animation groups dropped: no root skeleton", len(s.Groups))
		log.Warn("no skeleton", zap.Error(w))
		report.Warnings = append(report.Warnings, w)
		return nil
	}
	if len(skeletons) > 1 {
		w := fmt.Errorf("%d root skeletons share %s, the last one wins", len(skeletons), e.AnimationPath(s.Name))
		log.Warn("several skeletons", zap.Error(w))
		report.Warnings = append(report.Warnings, w)
	}

	props := e.Props(s)
	path := e.AnimationPath(s.Name)
	for _, skel := range skeletons {
		if err := anim.WriteFile(path, props, s.FrameEnd, document.NewStripResolver(doc, skel)); err != nil {
			return err
		}
		log.Info("animation written", zap.String("path", path), zap.String("skeleton", skel.Name), zap.Int("clips", len(props)))
	}
	report.Written = append(report.Written, path)
	return nil
}

// Props aggregates a scene's animation groups using the configured ordering.
func (e *Exporter) Props(s *document.Scene) []anim.Prop {
	groups := anim.GroupsFrom(s.Groups)
	if e.Config.Animation.ReorderByFrequency {
		groups = anim.ReorderByFrequency(groups)
	}
	return anim.Aggregate(groups)
}

// Animation renders the .animation file of an assets scene for its first
// root skeleton without writing it.
func (e *Exporter) Animation(doc *document.Document, s *document.Scene) ([]byte, error) {
	skeletons := s.RootSkeletons()
	if len(skeletons) == 0 {
		return nil, fmt.Errorf("%w: scene %q has no root skeleton", document.ErrInvalidInput, s.Name)
	}
	return anim.Render(e.Props(s), s.FrameEnd, document.NewStripResolver(doc, skeletons[0]))
}

// CheckStrips verifies that every strip referenced by an animation group of
// an assets scene exists on each of the scene's root skeletons.
func CheckStrips(doc *document.Document) error {
	var errs error
	for _, s := range doc.Scenes {
		if s.Type != document.SceneAssets || len(s.Groups) == 0 {
			continue
		}
		for _, skel := range s.RootSkeletons() {
			r := document.NewStripResolver(doc, skel)
			for _, g := range s.Groups {
				for _, ref := range g.Strips {
					if _, ok := r.ResolveStrip(ref.Track, ref.Strip); !ok {
						errs = multierr.Append(errs, fmt.Errorf("scene %q: group %q: strip %s not on skeleton %q", s.Name, g.ID, ref, skel.Name))
					}
				}
			}
		}
	}
	if errs != nil {
		return errors.Join(document.ErrInvalidInput, errs)
	}
	return nil
}
