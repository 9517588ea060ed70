package steps

import (
	"github.com/apex/log"

	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
	"github.com/cheritools/cherigen/cli/render"
)

// WriteArtifacts represents the artifact write step.
type WriteArtifacts struct{}

// Run writes the rendered artifacts to the target output directory. Every
// artifact replaces its destination atomically. Skipped in check mode.
func (WriteArtifacts) Run(genCtx *generate_ctx.GenerateCtx, artCtx *ArtifactsCtx) error {
	if genCtx.CheckMode {
		return nil
	}

	for _, artifact := range artCtx.Artifacts {
		if err := render.Write(artifact); err != nil {
			return err
		}
		log.Infof("Wrote %s", artifact.Path)
	}
	return nil
}
