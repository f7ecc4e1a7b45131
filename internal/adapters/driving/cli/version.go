package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// version is stamped by the build via SetVersion; "dev" means an
// unversioned local build.
var version = "dev"

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("memora version %s (%s %s/%s)\n",
			version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
