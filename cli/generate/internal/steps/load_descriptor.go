package steps

import (
	"github.com/apex/log"

	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
	"github.com/cheritools/cherigen/cli/target"
)

// LoadDescriptor represents the target descriptor resolution step.
type LoadDescriptor struct{}

// Run resolves the target name to a descriptor. User target files override
// built-in targets by name.
func (LoadDescriptor) Run(genCtx *generate_ctx.GenerateCtx, artCtx *ArtifactsCtx) error {
	registry := target.NewRegistry()
	if genCtx.CliOpts.Targets.Dir != "" {
		if err := registry.LoadDir(genCtx.CliOpts.Targets.Dir); err != nil {
			return err
		}
	}

	descriptor, err := registry.Get(genCtx.TargetName)
	if err != nil {
		return err
	}
	log.Debugf("Using target %q, triple %s", descriptor.Name, descriptor.Triple)
	artCtx.Descriptor = descriptor

	return nil
}
