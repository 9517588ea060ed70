// Package steps provides a set of handlers for the generate command chain
// of responsibility.
package steps

import (
	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
	"github.com/cheritools/cherigen/cli/render"
	"github.com/cheritools/cherigen/cli/target"
	"github.com/cheritools/cherigen/cli/templates"
)

// ArtifactsCtx carries mutable state between generate steps.
type ArtifactsCtx struct {
	// Store holds the loaded templates.
	Store *templates.Store
	// Descriptor is the resolved target descriptor.
	Descriptor target.Descriptor
	// Values maps template keys to their substitution values.
	Values map[string]render.Values
	// TargetDir is the per-target output directory.
	TargetDir string
	// Artifacts are the rendered artifacts in deterministic key order.
	Artifacts []*render.Artifact
	// Drift is set in check mode when an artifact differs from the file
	// on disk.
	Drift bool
}

// NewArtifactsCtx creates a new artifacts context.
func NewArtifactsCtx() ArtifactsCtx {
	return ArtifactsCtx{
		Values: make(map[string]render.Values),
	}
}

// Step is an interface for a single step in the generate chain.
type Step interface {
	Run(genCtx *generate_ctx.GenerateCtx, artCtx *ArtifactsCtx) error
}
