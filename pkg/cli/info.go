package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomcatctl/tomcatctl/pkg/manager"
	"github.com/tomcatctl/tomcatctl/pkg/status"
)

// textCommand builds a command with no arguments whose result is printed
// as-is.
func textCommand(use, short string, run func(ctx context.Context, tm *manager.TomcatManager) (*manager.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := connectClient(cmd.Context())
			if err != nil {
				return err
			}
			r, err := run(cmd.Context(), tm)
			if err != nil {
				return err
			}
			return finish(r)
		},
	}
}

var serverInfoCmd = &cobra.Command{
	Use:   "serverinfo",
	Short: "Show information about the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tm, err := connectClient(cmd.Context())
		if err != nil {
			return err
		}
		r, err := tm.ServerInfo(cmd.Context())
		if err != nil {
			return err
		}
		if err := r.Err(); err != nil {
			return err
		}
		for _, key := range r.ServerInfo.Keys() {
			value, _ := r.ServerInfo.Get(key)
			fmt.Printf("%s: %s\n", key, value)
		}
		return nil
	},
}

var vmInfoCmd = textCommand("vminfo", "Show JVM diagnostic information",
	func(ctx context.Context, tm *manager.TomcatManager) (*manager.Response, error) {
		return tm.VMInfo(ctx)
	})

var threadDumpCmd = textCommand("threaddump", "Show a JVM thread dump",
	func(ctx context.Context, tm *manager.TomcatManager) (*manager.Response, error) {
		return tm.ThreadDump(ctx)
	})

var findLeakersCmd = &cobra.Command{
	Use:   "findleakers",
	Short: "List applications that leaked memory",
	Long: `List applications that leaked memory on stop, reload or undeploy.

This triggers a full garbage collection on the server; use with caution
on production systems.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tm, err := connectClient(cmd.Context())
		if err != nil {
			return err
		}
		r, err := tm.FindLeakers(cmd.Context())
		if err != nil {
			return err
		}
		if err := r.Err(); err != nil {
			return err
		}
		for _, leaker := range r.Leakers {
			fmt.Println(leaker)
		}
		return nil
	},
}

var resourcesType string

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List global JNDI resources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tm, err := connectClient(cmd.Context())
		if err != nil {
			return err
		}
		r, err := tm.Resources(cmd.Context(), resourcesType)
		if err != nil {
			return err
		}
		if err := r.Err(); err != nil {
			return err
		}
		for name, class := range r.Resources {
			fmt.Printf("%s: %s\n", name, class)
		}
		return nil
	},
}

var statusXMLRaw bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status (memory, connectors)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tm, err := connectClient(cmd.Context())
		if err != nil {
			return err
		}
		r, err := tm.StatusXML(cmd.Context())
		if err != nil {
			return err
		}
		if err := r.Err(); err != nil {
			return err
		}

		if statusXMLRaw {
			fmt.Println(r.StatusXML)
			return nil
		}

		st, err := status.Parse([]byte(r.StatusXML))
		if err != nil {
			return err
		}

		fmt.Printf("JVM memory: %d used / %d total / %d max\n",
			st.Memory.Used(), st.Memory.Total, st.Memory.Max)
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "CONNECTOR\tTHREADS\tBUSY\tREQUESTS\tERRORS")
		for _, conn := range st.Connectors {
			fmt.Fprintf(w, "%s\t%d/%d\t%d\t%d\t%d\n",
				conn.Name, conn.CurrentThreadCount, conn.MaxThreads,
				conn.CurrentThreadsBusy, conn.RequestCount, conn.ErrorCount)
		}
		return w.Flush()
	},
}

func init() {
	resourcesCmd.Flags().StringVar(&resourcesType, "type", "", "Fully qualified java class name to filter by")
	statusCmd.Flags().BoolVar(&statusXMLRaw, "xml", false, "Print the raw status XML")
	for _, cmd := range []*cobra.Command{serverInfoCmd, vmInfoCmd, threadDumpCmd, findLeakersCmd, resourcesCmd, statusCmd} {
		rootCmd.AddCommand(cmd)
	}
}
