package steps

import (
	"path/filepath"
	"sort"

	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
	"github.com/cheritools/cherigen/cli/render"
)

// RenderArtifacts represents the template render step.
type RenderArtifacts struct{}

// Run renders every requested artifact in memory. Nothing is written to
// disk: a later render failure must leave existing artifacts untouched.
// Artifacts are rendered in sorted key order so that failures are reported
// deterministically.
func (RenderArtifacts) Run(genCtx *generate_ctx.GenerateCtx, artCtx *ArtifactsCtx) error {
	artCtx.TargetDir = filepath.Join(genCtx.OutputDir, artCtx.Descriptor.Name)

	keys := make([]string, 0, len(artCtx.Values))
	for key := range artCtx.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		tmpl, err := artCtx.Store.Get(key)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(artCtx.TargetDir, tmpl.FileName())
		artifact, err := render.Render(tmpl, artCtx.Values[key], dstPath)
		if err != nil {
			return err
		}
		artCtx.Artifacts = append(artCtx.Artifacts, artifact)
	}
	return nil
}
