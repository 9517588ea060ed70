package cmdcontext

// CmdCtx is the main structure of the program context.
type CmdCtx struct {
	// Cli - CLI context. Contains flags passed when starting
	// cherigen and some derived parameters.
	Cli CliCtx
	// CommandName contains the name of the command.
	CommandName string
}

// CliCtx - CLI context. Contains flags passed when starting
// cherigen and some derived parameters.
type CliCtx struct {
	// Path to the cherigen (cherigen.yaml) config.
	ConfigPath string
	// ConfigDir is the cherigen configuration file directory.
	// And the current working directory, if there is no config.
	ConfigDir string
	// Verbose logging flag. Enables debug log output.
	Verbose bool
}
