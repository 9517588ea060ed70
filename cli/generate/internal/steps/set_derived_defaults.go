package steps

import (
	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
)

// SetDerivedDefaults represents the descriptor defaults derivation step.
type SetDerivedDefaults struct{}

// Run derives unset descriptor paths from the configured SDK layout and
// validates the result.
func (SetDerivedDefaults) Run(genCtx *generate_ctx.GenerateCtx, artCtx *ArtifactsCtx) error {
	artCtx.Descriptor.FillDefaults(genCtx.CliOpts.SDK.Dir, genCtx.CliOpts.SDK.SysrootSuffix)

	return artCtx.Descriptor.Validate()
}
