package steps

import (
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/pmezard/go-difflib/difflib"

	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
	"github.com/cheritools/cherigen/cli/util"
)

// CheckArtifacts represents the check mode comparison step.
type CheckArtifacts struct{}

// Run compares the rendered artifacts against the files on disk and prints
// a unified diff for every difference. Only active in check mode.
func (CheckArtifacts) Run(genCtx *generate_ctx.GenerateCtx, artCtx *ArtifactsCtx) error {
	if !genCtx.CheckMode {
		return nil
	}

	for _, artifact := range artCtx.Artifacts {
		if _, err := os.Stat(artifact.Path); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to check existing artifact %s: %s",
					artifact.Path, err)
			}
			log.Infof("Artifact %s does not exist yet", artifact.Path)
			artCtx.Drift = true
			continue
		}
		existing, err := util.GetFileContent(artifact.Path)
		if err != nil {
			return fmt.Errorf("failed to read existing artifact %s: %s",
				artifact.Path, err)
		}
		if existing == artifact.Text {
			continue
		}

		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(existing),
			B:        difflib.SplitLines(artifact.Text),
			FromFile: artifact.Path,
			ToFile:   artifact.Path + " (rendered)",
			Context:  3,
		}
		diffText, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return fmt.Errorf("failed to compute diff for %s: %s", artifact.Path, err)
		}
		fmt.Print(diffText)
		artCtx.Drift = true
	}
	return nil
}
