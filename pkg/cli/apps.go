package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tomcatctl/tomcatctl/pkg/manager"
)

// appVersion is the parallel-deployment version flag shared by the
// commands that address an application by path.
var appVersion string

// pathCommand builds a command that takes a context path argument and
// runs one Manager operation against it.
func pathCommand(use, short string, run func(ctx context.Context, tm *manager.TomcatManager, path string) (*manager.Response, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " PATH",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := connectClient(cmd.Context())
			if err != nil {
				return err
			}
			r, err := run(cmd.Context(), tm, args[0])
			if err != nil {
				return err
			}
			return finish(r)
		},
	}
	cmd.Flags().StringVarP(&appVersion, "version", "v", "", "Parallel deployment version")
	return cmd
}

var startCmd = pathCommand("start", "Start the application at a context path",
	func(ctx context.Context, tm *manager.TomcatManager, path string) (*manager.Response, error) {
		return tm.Start(ctx, path, appVersion)
	})

var stopCmd = pathCommand("stop", "Stop the application at a context path",
	func(ctx context.Context, tm *manager.TomcatManager, path string) (*manager.Response, error) {
		return tm.Stop(ctx, path, appVersion)
	})

var restartCmd = pathCommand("restart", "Stop and start the application at a context path",
	func(ctx context.Context, tm *manager.TomcatManager, path string) (*manager.Response, error) {
		return tm.Reload(ctx, path, appVersion)
	})

var undeployCmd = pathCommand("undeploy", "Remove the application at a context path",
	func(ctx context.Context, tm *manager.TomcatManager, path string) (*manager.Response, error) {
		return tm.Undeploy(ctx, path, appVersion)
	})

var sessionsCmd = pathCommand("sessions", "Show session information for an application",
	func(ctx context.Context, tm *manager.TomcatManager, path string) (*manager.Response, error) {
		return tm.Sessions(ctx, path, appVersion)
	})

var expireIdle int

var expireCmd = pathCommand("expire", "Expire idle sessions of an application",
	func(ctx context.Context, tm *manager.TomcatManager, path string) (*manager.Response, error) {
		return tm.Expire(ctx, path, appVersion, expireIdle)
	})

func init() {
	expireCmd.Flags().IntVar(&expireIdle, "idle", 0, "Expire sessions idle for more than this many minutes (0 just reports them)")
	for _, cmd := range []*cobra.Command{startCmd, stopCmd, restartCmd, undeployCmd, sessionsCmd, expireCmd} {
		rootCmd.AddCommand(cmd)
	}
}
