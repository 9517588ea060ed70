package util

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// ArgError represents an error made of bad command arguments.
type ArgError struct {
	msg string
}

// Error returns the error message.
func (e *ArgError) Error() string {
	return e.msg
}

// NewArgError creates and returns a new ArgError.
func NewArgError(text string) error {
	return &ArgError{text}
}

// VersionFunc is a type of function that returns a string with the current
// cherigen version.
type VersionFunc func(bool, bool) string

// InternalError shows error information, version of the tool and call stack.
func InternalError(format string, f VersionFunc, err ...interface{}) error {
	errorFmt := `whoops! It looks like something is wrong with this version of cherigen.
Error: %s
Version: %s
Stacktrace:
%s`
	version := f(false, false)

	return fmt.Errorf(errorFmt, fmt.Sprintf(format, err...), version, debug.Stack())
}

// GetFileContentBytes returns the file content as a bytes slice.
func GetFileContentBytes(path string) ([]byte, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fileContent, nil
}

// GetFileContent returns the file content as a string.
func GetFileContent(path string) (string, error) {
	fileContentBytes, err := GetFileContentBytes(path)
	if err != nil {
		return "", err
	}
	return string(fileContentBytes), nil
}

// ParseYAML parses the yaml file at the specified path.
func ParseYAML(path string) (map[string]interface{}, error) {
	fileContent, err := GetFileContentBytes(path)
	if err != nil {
		return nil, fmt.Errorf(`failed to read "%s" file: %s`, path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(fileContent, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %s", err)
	}

	return raw, nil
}

// IsDir returns true if the filePath is an existing directory.
func IsDir(filePath string) bool {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return false
	}

	return fileInfo.IsDir()
}

// IsRegularFile returns true if the filePath is an existing regular file.
func IsRegularFile(filePath string) bool {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return false
	}

	return fileInfo.Mode().IsRegular()
}

// HandleCmdErr handles an error returned by a command implementation.
// ArgError leads to the command usage output. Fatal errors terminate
// the process.
func HandleCmdErr(cmd *cobra.Command, err error) {
	if err != nil {
		var argError *ArgError
		if errors.As(err, &argError) {
			log.Error(argError.Error())
			cmd.Usage()
			os.Exit(1)
		}
		log.Fatalf(err.Error())
	}
}
