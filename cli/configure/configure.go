// Package configure locates and loads the cherigen configuration file.
package configure

import (
	"fmt"
	"os"
	"path/filepath"

	goVersion "github.com/hashicorp/go-version"
	"github.com/mitchellh/mapstructure"

	"github.com/cheritools/cherigen/cli/cmdcontext"
	"github.com/cheritools/cherigen/cli/config"
	"github.com/cheritools/cherigen/cli/util"
)

const (
	// ConfigName is the name of the cherigen configuration file.
	ConfigName = "cherigen.yaml"

	defaultCMakeMinVersion = "3.7"
	defaultOutputDirName   = "artifacts"
	defaultLogMaxSize      = 5
)

// minSupportedCMakeVersion is the oldest CMake the generated toolchain
// files work with. The configured minimum may raise it, never lower it.
var minSupportedCMakeVersion = goVersion.Must(goVersion.NewVersion("3.7"))

// Cli locates the configuration file and fills the CLI context with the
// config path and directory. A missing configuration file is not an error:
// the defaults apply.
func Cli(cmdCtx *cmdcontext.CmdCtx) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get the current working directory: %s", err)
	}

	if cmdCtx.Cli.ConfigPath != "" {
		if !util.IsRegularFile(cmdCtx.Cli.ConfigPath) {
			return fmt.Errorf("specified path to the configuration file is invalid: %s",
				cmdCtx.Cli.ConfigPath)
		}
	} else {
		candidate := filepath.Join(cwd, ConfigName)
		if util.IsRegularFile(candidate) {
			cmdCtx.Cli.ConfigPath = candidate
		}
	}

	if cmdCtx.Cli.ConfigPath != "" {
		configPath, err := filepath.Abs(cmdCtx.Cli.ConfigPath)
		if err != nil {
			return err
		}
		cmdCtx.Cli.ConfigPath = configPath
		cmdCtx.Cli.ConfigDir = filepath.Dir(configPath)
	} else {
		cmdCtx.Cli.ConfigDir = cwd
	}

	return nil
}

// defaultCliOpts returns the default cherigen options.
func defaultCliOpts() *config.CliOpts {
	return &config.CliOpts{
		SDK:     &config.SDKOpts{},
		Output:  &config.OutputOpts{Dir: defaultOutputDirName},
		Targets: &config.TargetsOpts{},
		Assets:  &config.AssetsOpts{},
		CMake:   &config.CMakeOpts{MinVersion: defaultCMakeMinVersion},
		Log:     &config.LogOpts{MaxSize: defaultLogMaxSize},
	}
}

// GetCliOpts returns cherigen options loaded from configPath, with defaults
// applied. An empty configPath yields the defaults.
func GetCliOpts(configPath string) (*config.CliOpts, error) {
	cfg := config.Config{CliConfig: defaultCliOpts()}

	if configPath != "" {
		rawConfigOpts, err := util.ParseYAML(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cherigen configuration: %s", err)
		}
		if err := mapstructure.Decode(rawConfigOpts, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse cherigen configuration: %s", err)
		}
	}

	if cfg.CliConfig == nil {
		cfg.CliConfig = defaultCliOpts()
	}

	cliOpts := cfg.CliConfig
	fillMissingOpts(cliOpts)

	if err := validateCliOpts(cliOpts); err != nil {
		return nil, err
	}

	return cliOpts, nil
}

// ResolvePathOpts makes the relative directory options absolute against
// dir, usually the directory of the configuration file. Paths in the
// configuration are relative to the file that names them, not to wherever
// cherigen happens to be invoked from.
func ResolvePathOpts(cliOpts *config.CliOpts, dir string) {
	for _, path := range []*string{
		&cliOpts.SDK.Dir,
		&cliOpts.Output.Dir,
		&cliOpts.Targets.Dir,
		&cliOpts.Assets.Dir,
		&cliOpts.Log.Dir,
	} {
		if *path != "" && !filepath.IsAbs(*path) {
			*path = filepath.Join(dir, *path)
		}
	}
}

// fillMissingOpts replaces sections dropped during decode with defaults.
func fillMissingOpts(cliOpts *config.CliOpts) {
	defaults := defaultCliOpts()
	if cliOpts.SDK == nil {
		cliOpts.SDK = defaults.SDK
	}
	if cliOpts.Output == nil {
		cliOpts.Output = defaults.Output
	}
	if cliOpts.Output.Dir == "" {
		cliOpts.Output.Dir = defaults.Output.Dir
	}
	if cliOpts.Targets == nil {
		cliOpts.Targets = defaults.Targets
	}
	if cliOpts.Assets == nil {
		cliOpts.Assets = defaults.Assets
	}
	if cliOpts.CMake == nil {
		cliOpts.CMake = defaults.CMake
	}
	if cliOpts.CMake.MinVersion == "" {
		cliOpts.CMake.MinVersion = defaults.CMake.MinVersion
	}
	if cliOpts.Log == nil {
		cliOpts.Log = defaults.Log
	}
}

// validateCliOpts checks the loaded options for consistency.
func validateCliOpts(cliOpts *config.CliOpts) error {
	minVersion, err := goVersion.NewVersion(cliOpts.CMake.MinVersion)
	if err != nil {
		return fmt.Errorf("invalid cmake.min_version %q: %s",
			cliOpts.CMake.MinVersion, err)
	}
	if minVersion.LessThan(minSupportedCMakeVersion) {
		return fmt.Errorf("cmake.min_version %q is below the supported minimum %s",
			cliOpts.CMake.MinVersion, minSupportedCMakeVersion)
	}
	return nil
}
