package export

import (
	"path/filepath"
	"strings"

	"github.com/Faultbox/gp3d-export/internal/config"
	"github.com/Faultbox/gp3d-export/pkg/document"
	"github.com/Faultbox/gp3d-export/pkg/gltfimport"
)

// LoadDocument reads a YAML document, or converts a .gltf/.glb file using the
// glTF settings of cfg.
func LoadDocument(path string, cfg *config.Config) (*document.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return gltfimport.Open(path, ImportOptions(cfg))
	default:
		return document.Load(path)
	}
}

// ImportOptions maps the glTF section of cfg to converter options.
func ImportOptions(cfg *config.Config) gltfimport.Options {
	opts := gltfimport.Options{AssetScene: cfg.GLTF.AssetScene}
	if cfg.GLTF.ResolutionX > 0 && cfg.GLTF.ResolutionY > 0 {
		opts.Render = document.RenderSettings{
			ResolutionX:  cfg.GLTF.ResolutionX,
			ResolutionY:  cfg.GLTF.ResolutionY,
			PixelAspectX: 1,
			PixelAspectY: 1,
		}
	}
	return opts
}
