// tomcatctl - command line client for the Tomcat Manager application
package main

import (
	"fmt"
	"os"

	"github.com/tomcatctl/tomcatctl/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate})
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tomcatctl:", err)
		os.Exit(1)
	}
}
