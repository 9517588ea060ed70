package generate_ctx

import (
	"github.com/cheritools/cherigen/cli/config"
)

// GenerateCtx contains information needed to generate artifacts for a
// target.
type GenerateCtx struct {
	// TargetName is the name of the target to generate artifacts for.
	TargetName string
	// VarsFromCli contains variable definitions from --var options.
	VarsFromCli []string
	// OutputDir is the directory artifacts are written to.
	OutputDir string
	// CheckMode renders and compares against existing artifacts without
	// writing anything.
	CheckMode bool
	// ArtifactKeys restricts generation to the listed template keys.
	// Empty means all built-in artifacts.
	ArtifactKeys []string
	// CliOpts is the loaded cherigen configuration.
	CliOpts *config.CliOpts
	// WorkDir is the current working directory.
	WorkDir string
}
