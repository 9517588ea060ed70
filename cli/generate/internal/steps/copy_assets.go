package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/otiai10/copy"

	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
)

const assetsDirPermissions = os.FileMode(0755)

// CopyAssets represents the static asset install step.
type CopyAssets struct{}

// Run copies the configured static asset directory next to the rendered
// artifacts. Skipped in check mode or when no asset directory is
// configured.
func (CopyAssets) Run(genCtx *generate_ctx.GenerateCtx, artCtx *ArtifactsCtx) error {
	if genCtx.CheckMode || genCtx.CliOpts.Assets.Dir == "" {
		return nil
	}

	srcDir := genCtx.CliOpts.Assets.Dir
	if _, err := os.Stat(srcDir); err != nil {
		return fmt.Errorf("failed to access assets directory %s: %s", srcDir, err)
	}

	dstDir := filepath.Join(artCtx.TargetDir, "assets")
	log.Infof("Copying assets from %s", srcDir)
	if err := copy.Copy(srcDir, dstDir); err != nil {
		return fmt.Errorf("assets copying failed: %s", err)
	}
	if err := os.Chmod(dstDir, assetsDirPermissions); err != nil {
		return fmt.Errorf("failed to change permissions of %s: %s", dstDir, err)
	}
	return nil
}
