package steps

import (
	"fmt"

	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
	"github.com/cheritools/cherigen/cli/render"
	"github.com/cheritools/cherigen/cli/templates/builtin"
)

// BuildValues represents the substitution values resolution step.
type BuildValues struct{}

// Run builds the substitution values for every requested artifact from the
// resolved descriptor.
func (BuildValues) Run(genCtx *generate_ctx.GenerateCtx, artCtx *ArtifactsCtx) error {
	descriptor := &artCtx.Descriptor
	for _, key := range genCtx.ArtifactKeys {
		switch key {
		case builtin.CMakeToolchain:
			artCtx.Values[key] = render.Values(
				descriptor.ToolchainValues(genCtx.CliOpts.CMake.MinVersion))
		case builtin.QemuMountRootfs:
			artCtx.Values[key] = render.Values(descriptor.MountValues())
		default:
			return fmt.Errorf("unknown artifact %q, available: %s, %s",
				key, builtin.CMakeToolchain, builtin.QemuMountRootfs)
		}
	}
	return nil
}
