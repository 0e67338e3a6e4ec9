package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tomcatctl/tomcatctl/pkg/manager"
)

var sslCiphersCmd = textCommand("ssl-connector-ciphers",
	"Show TLS ciphers configured on each connector",
	func(ctx context.Context, tm *manager.TomcatManager) (*manager.Response, error) {
		return tm.SSLConnectorCiphers(ctx)
	})

var sslCertsCmd = textCommand("ssl-connector-certs",
	"Show certificate chains configured on each virtual host",
	func(ctx context.Context, tm *manager.TomcatManager) (*manager.Response, error) {
		return tm.SSLConnectorCerts(ctx)
	})

var sslTrustedCertsCmd = textCommand("ssl-connector-trusted-certs",
	"Show trusted certificates configured on each virtual host",
	func(ctx context.Context, tm *manager.TomcatManager) (*manager.Response, error) {
		return tm.SSLConnectorTrustedCerts(ctx)
	})

var sslReloadCmd = &cobra.Command{
	Use:   "ssl-reload [HOST]",
	Short: "Reload TLS certificates, for all virtual hosts or one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var host string
		if len(args) == 1 {
			host = args[0]
		}
		tm, err := connectClient(cmd.Context())
		if err != nil {
			return err
		}
		r, err := tm.SSLReload(cmd.Context(), host)
		if err != nil {
			return err
		}
		return finish(r)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{sslCiphersCmd, sslCertsCmd, sslTrustedCertsCmd, sslReloadCmd} {
		rootCmd.AddCommand(cmd)
	}
}
