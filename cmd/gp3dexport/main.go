// gp3dexport converts scene documents into Gameplay3D .scene and .animation files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/gp3d-export/internal/config"
	"github.com/Faultbox/gp3d-export/internal/export"
	"github.com/Faultbox/gp3d-export/internal/logger"
	"github.com/Faultbox/gp3d-export/pkg/anim"
	"github.com/Faultbox/gp3d-export/pkg/document"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	var code int
	switch command {
	case "export", "x":
		code = cmdExport(cfg, args)
	case "anim":
		code = cmdAnim(cfg, args)
	case "tree":
		code = cmdTree(cfg, args)
	case "catalog", "assets":
		code = cmdCatalog(cfg, args)
	case "validate", "check":
		code = cmdValidate(cfg, args)
	case "config":
		code = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}
	logger.Sync()
	os.Exit(code)
}

func printUsage() {
	fmt.Println(`gp3dexport - Gameplay3D scene and animation exporter

Usage:
  gp3dexport [flags] <command> [options]

Commands:
  export <doc>              Write .scene and .animation files
  anim <doc> <scene>        Print the .animation file of an assets scene
  tree <doc> <scene>        Show how animation groups were aggregated
  catalog <doc>             List the mesh asset catalog
  validate <doc>            Check a document without writing anything
  config [-save [path]]     Print the effective config, or save it

Documents are YAML files, or .gltf/.glb files converted on load.

Flags:
  -config <path>     Config file
  -out <dir>         Output directory
  -no-scenes         Skip .scene files
  -no-animations     Skip .animation files
  -watch             Re-export whenever the document changes
  -debug             Debug logging
  -log-file <path>   Also log to a rotated file

Examples:
  gp3dexport export level.yaml
  gp3dexport -out build/res -watch export level.yaml
  gp3dexport anim hero.yaml Hero
  gp3dexport config -save`)
}

func loadDocument(cfg *config.Config, path string) (*document.Document, bool) {
	doc, err := export.LoadDocument(path, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	return doc, true
}

func cmdExport(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gp3dexport export <doc>")
		return 1
	}
	path := args[0]

	e := export.New(cfg)
	e.Progress = func(done, total int, scene string) {
		if scene != "" {
			fmt.Printf("[%d/%d] %s\n", done+1, total, scene)
		}
	}

	run := func() int {
		doc, ok := loadDocument(cfg, path)
		if !ok {
			return 1
		}
		report, err := e.Run(doc)
		if report != nil {
			for _, p := range report.Written {
				fmt.Printf("  wrote %s\n", p)
			}
			for _, w := range report.Warnings {
				fmt.Printf("  warning: %v\n", w)
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	code := run()
	if !cfg.Export.Watch {
		return code
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := export.Watch(ctx, path, func() {
		fmt.Printf("%s changed, exporting\n", path)
		run()
	})
	if err != nil {
		logger.Error("watch failed", zap.Error(err))
		return 1
	}
	return code
}

func findScene(doc *document.Document, name string) (*document.Scene, bool) {
	s, ok := doc.SceneByName(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: scene %q not found\n", name)
		return nil, false
	}
	if s.Type != document.SceneAssets {
		fmt.Fprintf(os.Stderr, "Error: scene %q is a %s, not an assets scene\n", name, s.Type)
		return nil, false
	}
	return s, true
}

func cmdAnim(cfg *config.Config, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: gp3dexport anim <doc> <scene>")
		return 1
	}
	doc, ok := loadDocument(cfg, args[0])
	if !ok {
		return 1
	}
	if err := doc.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	s, ok := findScene(doc, args[1])
	if !ok {
		return 1
	}

	data, err := export.New(cfg).Animation(doc, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}

func cmdTree(cfg *config.Config, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: gp3dexport tree <doc> <scene>")
		return 1
	}
	doc, ok := loadDocument(cfg, args[0])
	if !ok {
		return 1
	}
	if err := doc.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	s, ok := findScene(doc, args[1])
	if !ok {
		return 1
	}

	props := export.New(cfg).Props(s)
	children := make(map[string][]anim.Prop)
	for _, p := range props {
		children[p.Parent] = append(children[p.Parent], p)
	}

	seen := make(map[string]bool)
	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		for _, p := range children[parent] {
			if seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			refs := make([]string, len(p.Strips))
			for i, r := range p.Strips {
				refs[i] = r.String()
			}
			fmt.Printf("%s%s [%s]\n", strings.Repeat("  ", depth), p.Name, strings.Join(refs, ", "))
			walk(p.Name, depth+1)
		}
	}
	walk("", 0)
	return 0
}

func cmdCatalog(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gp3dexport catalog <doc>")
		return 1
	}
	doc, ok := loadDocument(cfg, args[0])
	if !ok {
		return 1
	}

	e := export.New(cfg)
	e.Catalog.Populate(doc)
	fmt.Printf("%-24s %-16s %s\n", "DATA", "SCENE", "OBJECT")
	for _, a := range e.Catalog.Entries() {
		fmt.Printf("%-24s %-16s %s\n", a.Data, a.Scene, a.Object)
	}
	fmt.Printf("\n%d meshes\n", e.Catalog.Len())
	return 0
}

func cmdValidate(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gp3dexport validate <doc>")
		return 1
	}
	doc, ok := loadDocument(cfg, args[0])
	if !ok {
		return 1
	}
	if err := doc.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		return 1
	}
	if err := export.CheckStrips(doc); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		return 1
	}
	fmt.Printf("%s: %d scenes, %d actions, %d lights, %d cameras\n",
		args[0], len(doc.Scenes), len(doc.Actions), len(doc.Lights), len(doc.Cameras))
	return 0
}

func cmdConfig(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Save the effective config")
	fs.Parse(args)

	if *save {
		path := config.DefaultPath()
		if fs.NArg() > 0 {
			path = fs.Arg(0)
		}
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Saved %s\n", path)
		return 0
	}

	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}
