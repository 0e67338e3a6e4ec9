// Package cli implements the tomcatctl commands.
//
// Every command resolves its connection settings the same way: explicit
// flags win, then a named server from the config file (--server), then the
// TOMCATCTL_URL/USER/PASSWORD environment variables. The command connects,
// runs one Manager operation, prints the result, and exits non-zero when
// the server reports failure.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tomcatctl/tomcatctl/internal/cliconfig"
	"github.com/tomcatctl/tomcatctl/pkg/logging"
	"github.com/tomcatctl/tomcatctl/pkg/manager"
)

// connFlags holds the connection flags shared by every command.
type connFlags struct {
	server   string
	url      string
	user     string
	password string
	cert     string
	key      string
	caCert   string
	insecure bool
	timeout  float64

	logLevel  string
	logFormat string
}

var connFlagVals connFlags

var rootCmd = &cobra.Command{
	Use:   "tomcatctl",
	Short: "Manage applications on an Apache Tomcat server",
	Long: `tomcatctl talks to the Tomcat Manager web application to deploy,
undeploy, start, stop and inspect applications on a running Tomcat server.

Servers can be named in ` + "`tomcatctl.yaml`" + ` under the user config directory
and addressed with --server, or given explicitly with --url/--user.`,
	Example: `  # list applications
  tomcatctl --url http://localhost:8080/manager --user ace list

  # use a server definition from the config file
  tomcatctl --server prod list

  # deploy a local war file
  tomcatctl --server prod deploy /myapp ./target/myapp.war`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := &connFlagVals
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.server, "server", "S", "", "Named server from the config file")
	pf.StringVar(&f.url, "url", "", "Manager application URL, e.g. http://host:8080/manager")
	pf.StringVarP(&f.user, "user", "u", "", "Basic auth user")
	pf.StringVarP(&f.password, "password", "p", "", "Basic auth password (prompted when omitted)")
	pf.StringVar(&f.cert, "cert", "", "TLS client certificate file (PEM bundle when --key is omitted)")
	pf.StringVar(&f.key, "key", "", "TLS client certificate key file")
	pf.StringVar(&f.caCert, "cacert", "", "CA bundle file or directory for server verification")
	pf.BoolVarP(&f.insecure, "noverify", "k", false, "Skip server certificate verification")
	pf.Float64Var(&f.timeout, "timeout", 0, "Request timeout in seconds (0 = client default)")
	pf.StringVar(&f.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// resolveConn merges flags, the named config-file server, and environment
// variables into one set of connection settings.
func resolveConn(f *connFlags) (cliconfig.Server, error) {
	conn := cliconfig.Server{
		URL:      f.url,
		User:     f.user,
		Cert:     f.cert,
		Key:      f.key,
		CACert:   f.caCert,
		Insecure: f.insecure,
		Timeout:  f.timeout,
	}

	if f.server != "" {
		cfg, err := cliconfig.Load()
		if err != nil {
			return conn, err
		}
		named, ok := cfg.Lookup(f.server)
		if !ok {
			path, _ := cliconfig.Path()
			return conn, fmt.Errorf("server %q not defined in %s", f.server, path)
		}
		if conn.URL == "" {
			conn.URL = named.URL
		}
		if conn.User == "" {
			conn.User = named.User
		}
		if conn.Cert == "" {
			conn.Cert = named.Cert
			conn.Key = named.Key
		}
		if conn.CACert == "" {
			conn.CACert = named.CACert
		}
		if !conn.Insecure {
			conn.Insecure = named.Insecure
		}
		if conn.Timeout == 0 {
			conn.Timeout = named.Timeout
		}
	}

	if conn.URL == "" {
		conn.URL = os.Getenv(cliconfig.EnvURL)
	}
	if conn.User == "" {
		conn.User = os.Getenv(cliconfig.EnvUser)
	}
	if conn.URL == "" {
		return conn, errors.New("no server URL: use --url, --server, or TOMCATCTL_URL")
	}
	return conn, nil
}

// promptPassword asks for the password interactively.
func promptPassword(user string) (string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Password for %s", user)).
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return password, nil
}

// connectClient builds a TomcatManager from the global flags and connects
// it.
func connectClient(ctx context.Context) (*manager.TomcatManager, error) {
	f := &connFlagVals
	conn, err := resolveConn(f)
	if err != nil {
		return nil, err
	}

	password := f.password
	if password == "" {
		password = os.Getenv(cliconfig.EnvPassword)
	}
	if conn.User != "" && password == "" {
		password, err = promptPassword(conn.User)
		if err != nil {
			return nil, err
		}
	}

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(f.logLevel),
		Format: logging.ParseFormat(f.logFormat),
	})

	opts := []manager.ConnectOption{}
	if conn.User != "" {
		opts = append(opts, manager.WithAuth(conn.User, password))
	}
	if conn.Cert != "" && conn.Key != "" {
		opts = append(opts, manager.WithClientCert(conn.Cert, conn.Key))
	} else if conn.Cert != "" {
		opts = append(opts, manager.WithClientCertBundle(conn.Cert))
	}
	if conn.CACert != "" {
		opts = append(opts, manager.WithCABundle(conn.CACert))
	}
	if conn.Insecure {
		opts = append(opts, manager.WithInsecureSkipVerify())
	}
	if conn.Timeout > 0 {
		opts = append(opts, manager.WithTimeout(time.Duration(conn.Timeout*float64(time.Second))))
	}

	tm := manager.New(manager.WithLogger(logger))
	r, err := tm.Connect(ctx, conn.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", conn.URL, err)
	}
	if !r.OK() {
		return nil, fmt.Errorf("connect %s: %w", conn.URL, r.Err())
	}
	return tm, nil
}

// finish prints the textual result of a successful command and converts a
// FAIL envelope into the command's error.
func finish(r *manager.Response) error {
	if err := r.Err(); err != nil {
		return err
	}
	if r.Result != "" {
		fmt.Println(r.Result)
	}
	return nil
}
