package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var deployFlags struct {
	version   string
	update    bool
	serverWar string
}

var deployCmd = &cobra.Command{
	Use:   "deploy PATH [WARFILE]",
	Short: "Deploy a war file at a context path",
	Long: `Deploy an application at a context path.

With a WARFILE argument, the local war file is uploaded to the server.
With --server-war, a war already present on the server host is deployed
instead; give its java-style path without a "file:" prefix.`,
	Example: `  # upload a local war
  tomcatctl --server prod deploy /myapp ./target/myapp.war

  # redeploy over a running application
  tomcatctl --server prod deploy /myapp ./target/myapp.war --update

  # war already on the server host
  tomcatctl --server prod deploy /myapp --server-war /opt/wars/myapp.war`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		var warFile string
		if len(args) == 2 {
			warFile = args[1]
		}
		if warFile != "" && deployFlags.serverWar != "" {
			return errors.New("give either a local WARFILE or --server-war, not both")
		}
		if warFile == "" && deployFlags.serverWar == "" {
			return errors.New("nothing to deploy: give a local WARFILE or --server-war")
		}

		tm, err := connectClient(cmd.Context())
		if err != nil {
			return err
		}

		if warFile != "" {
			r, err := tm.DeployWARFile(cmd.Context(), path, warFile, deployFlags.version, deployFlags.update)
			if err != nil {
				return err
			}
			return finish(r)
		}
		r, err := tm.DeployServerWAR(cmd.Context(), path, deployFlags.serverWar, deployFlags.version, deployFlags.update)
		if err != nil {
			return err
		}
		return finish(r)
	},
}

func init() {
	deployCmd.Flags().StringVarP(&deployFlags.version, "version", "v", "", "Parallel deployment version")
	deployCmd.Flags().BoolVar(&deployFlags.update, "update", false, "Undeploy any existing application at PATH first")
	deployCmd.Flags().StringVar(&deployFlags.serverWar, "server-war", "", "Path of a war file on the server host")
	rootCmd.AddCommand(deployCmd)
}
