package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden with -ldflags "-X github.com/abhisek/mathquest/cmd.version=...".
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the MathQuest version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mathquest", buildVersion())
	},
}

// buildVersion prefers the linker-set version, then the module version,
// then the VCS revision recorded by the go tool.
func buildVersion() string {
	if version != "" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return "(devel " + s.Value[:7] + ")"
		}
	}
	return "(devel)"
}
