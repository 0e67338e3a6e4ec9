package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomcatctl/tomcatctl/pkg/manager"
)

var listFlags struct {
	byPath bool
	raw    bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications installed on the server",
	Example: `  # grouped by running state
  tomcatctl --server prod list

  # ordered by context path
  tomcatctl --server prod list --by-path`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tm, err := connectClient(cmd.Context())
		if err != nil {
			return err
		}
		r, err := tm.List(cmd.Context())
		if err != nil {
			return err
		}
		if err := r.Err(); err != nil {
			return err
		}

		if listFlags.raw {
			fmt.Println(r.Result)
			return nil
		}

		apps := r.Apps
		if listFlags.byPath {
			manager.SortByPath(apps)
		} else {
			manager.SortByState(apps)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tSTATE\tSESSIONS\tDIRECTORY")
		for _, app := range apps {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", app.Path, app.State, app.Sessions, app.DirAndVersion())
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&listFlags.byPath, "by-path", false, "Order by context path instead of state")
	listCmd.Flags().BoolVar(&listFlags.raw, "raw", false, "Print the server response unformatted")
	rootCmd.AddCommand(listCmd)
}
