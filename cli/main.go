package main

import (
	"log"

	"github.com/cheritools/cherigen/cli/cmd"
	"github.com/cheritools/cherigen/cli/util"
	"github.com/cheritools/cherigen/cli/version"
)

func main() {
	defer func() {
		// Recover regains control of a panicking goroutine. In case the
		// program panics, the value given to panic is captured and
		// reported as an internal error below.
		if r := recover(); r != nil {
			log.Fatalf(
				"%s", util.InternalError("Unhandled internal error: %s",
					version.GetVersion, r))
		}
	}()

	cmd.InitRoot()
	cmd.Execute()
}
