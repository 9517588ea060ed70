package config

// Config is used to store all information from the cherigen.yaml
// configuration file.
type Config struct {
	CliConfig *CliOpts `mapstructure:"cherigen" yaml:"cherigen"`
}

// CliOpts stores the cherigen configuration.
// Filled in when parsing the cherigen.yaml configuration file.
//
// cherigen.yaml file format:
// cherigen:
//   sdk:
//     dir: path
//     sysroot_suffix: string
//   output:
//     dir: path
//   targets:
//     dir: path
//   assets:
//     dir: path
//   cmake:
//     min_version: version string
//   log:
//     dir: path
//     maxsize: num (MB)
//     maxage: num (Days)
//     maxbackups: num

// SDKOpts is used to store the SDK location options.
type SDKOpts struct {
	// Dir is the root directory of the CHERI SDK installation.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// SysrootSuffix is appended to the default sysroot directory name,
	// e.g. "128" selects <sdk>/sysroot128.
	SysrootSuffix string `mapstructure:"sysroot_suffix" yaml:"sysroot_suffix"`
}

// OutputOpts is used to store artifact output options.
type OutputOpts struct {
	// Dir is the directory artifacts are written to, one subdirectory
	// per target.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// TargetsOpts is used to store the user target descriptor options.
type TargetsOpts struct {
	// Dir is a directory with user target descriptor files. Descriptors
	// found there override built-in targets by name.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// AssetsOpts is used to store static asset options.
type AssetsOpts struct {
	// Dir is a directory of static support files copied next to the
	// rendered artifacts of every target.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// CMakeOpts is used to store CMake related options.
type CMakeOpts struct {
	// MinVersion is the minimum CMake version declared by rendered
	// toolchain files.
	MinVersion string `mapstructure:"min_version" yaml:"min_version"`
}

// LogOpts is used to store the generation audit log options.
type LogOpts struct {
	// Dir is the directory the audit log is written to. Empty disables
	// the audit log.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSize is the maximum size in megabytes of the log file before
	// it gets rotated.
	MaxSize int `mapstructure:"maxsize" yaml:"maxsize"`
	// MaxAge is the maximum number of days to retain old log files
	// based on the timestamp encoded in their filename.
	MaxAge int `mapstructure:"maxage" yaml:"maxage"`
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int `mapstructure:"maxbackups" yaml:"maxbackups"`
}

// CliOpts is the top level structure of the cherigen options.
type CliOpts struct {
	// SDK contains the SDK location options.
	SDK *SDKOpts `mapstructure:"sdk" yaml:"sdk"`
	// Output contains the artifact output options.
	Output *OutputOpts `mapstructure:"output" yaml:"output"`
	// Targets contains the user target descriptor options.
	Targets *TargetsOpts `mapstructure:"targets" yaml:"targets"`
	// Assets contains the static asset options.
	Assets *AssetsOpts `mapstructure:"assets" yaml:"assets"`
	// CMake contains the CMake related options.
	CMake *CMakeOpts `mapstructure:"cmake" yaml:"cmake"`
	// Log contains the generation audit log options.
	Log *LogOpts `mapstructure:"log" yaml:"log"`
}
