package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"

	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
)

const formatError = `wrong variable definition format: %s
Usage: --var "VAR_NAME=value"`

// FillVarsFromCli represents the command line variable override step.
type FillVarsFromCli struct{}

// Run applies variable definitions passed with --var on top of the values
// resolved from the descriptor. A variable no artifact references is an
// error. Values overriding a boolean must parse as a boolean, values
// overriding a list split on commas.
func (FillVarsFromCli) Run(genCtx *generate_ctx.GenerateCtx, artCtx *ArtifactsCtx) error {
	for _, varDefinition := range genCtx.VarsFromCli {
		varDefinition = strings.TrimSpace(varDefinition)
		varName, value, found := strings.Cut(varDefinition, "=")
		if !found || varName == "" || value == "" {
			return fmt.Errorf(formatError, varDefinition)
		}

		applied := false
		for key, values := range artCtx.Values {
			current, ok := values[varName]
			if !ok {
				continue
			}
			converted, err := convertOverride(varName, value, current)
			if err != nil {
				return err
			}
			log.Debugf("Setting var from CLI for %s: %s = %s", key, varName, value)
			values[varName] = converted
			applied = true
		}
		if !applied {
			return fmt.Errorf("variable %q is not used by the requested artifacts", varName)
		}
	}
	return nil
}

// convertOverride converts a textual override to the type of the value it
// replaces.
func convertOverride(name, value string, current any) (any, error) {
	switch current.(type) {
	case bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("variable %q requires a boolean value: %s", name, err)
		}
		return parsed, nil
	case []string:
		return strings.Split(value, ","), nil
	default:
		return value, nil
	}
}
