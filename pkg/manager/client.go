package manager

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomcatctl/tomcatctl/pkg/logging"
)

// DefaultTimeout is the per-request timeout used when Connect is not given
// an explicit one.
const DefaultTimeout = 10 * time.Second

// TomcatManager is a client for the Tomcat Manager application's text
// command protocol. Create one with New, establish a connection with
// Connect, then call command methods.
//
// A TomcatManager is not safe for concurrent use: Connect replaces the
// url, credentials and detected version that command methods read. Use one
// instance per goroutine or serialize access externally.
type TomcatManager struct {
	url      string
	user     string
	password string
	certFile string
	keyFile  string
	caBundle string
	insecure bool
	timeout  time.Duration
	version  Version

	connected bool

	transport http.RoundTripper // overrides TLS setup when non-nil
	logger    *slog.Logger
	client    *http.Client
}

// Option configures a TomcatManager.
type Option func(*TomcatManager)

// WithLogger sets the logger used for request/response debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(tm *TomcatManager) {
		tm.logger = logger
	}
}

// WithTransport sets the HTTP transport. Intended for tests; when set, the
// TLS options given to Connect are not used to build a transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(tm *TomcatManager) {
		tm.transport = rt
	}
}

// New creates a disconnected TomcatManager.
func New(opts ...Option) *TomcatManager {
	tm := &TomcatManager{
		timeout: DefaultTimeout,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// ConnectOption configures one Connect attempt.
type ConnectOption func(*TomcatManager)

// WithAuth sets HTTP basic auth credentials.
func WithAuth(user, password string) ConnectOption {
	return func(tm *TomcatManager) {
		tm.user = user
		tm.password = password
	}
}

// WithClientCert sets a TLS client certificate and key file pair.
func WithClientCert(certFile, keyFile string) ConnectOption {
	return func(tm *TomcatManager) {
		tm.certFile = certFile
		tm.keyFile = keyFile
	}
}

// WithClientCertBundle sets a single PEM file containing both the TLS
// client certificate and its key.
func WithClientCertBundle(bundleFile string) ConnectOption {
	return func(tm *TomcatManager) {
		tm.certFile = bundleFile
		tm.keyFile = ""
	}
}

// WithCABundle verifies the server certificate against the given PEM file,
// or every PEM file in the given directory, instead of the system trust
// store.
func WithCABundle(path string) ConnectOption {
	return func(tm *TomcatManager) {
		tm.caBundle = path
	}
}

// WithInsecureSkipVerify disables server certificate verification.
func WithInsecureSkipVerify() ConnectOption {
	return func(tm *TomcatManager) {
		tm.insecure = true
	}
}

// WithTimeout sets the per-request timeout. Zero means no timeout, and is
// distinct from not supplying the option at all: an unsupplied timeout
// keeps the previously stored value.
func WithTimeout(d time.Duration) ConnectOption {
	return func(tm *TomcatManager) {
		tm.timeout = d
	}
}

// reset clears every connection attribute except the stored timeout. No
// partial state survives a failed connect attempt.
func (tm *TomcatManager) reset() {
	tm.url = ""
	tm.user = ""
	tm.password = ""
	tm.certFile = ""
	tm.keyFile = ""
	tm.caBundle = ""
	tm.insecure = false
	tm.version = VersionUnsupported
	tm.connected = false
	tm.client = nil
}

// Connect probes url for a Tomcat Manager application and, on success,
// records the detected server version for capability checks.
//
// The probe issues the serverinfo command against the new url directly,
// since no version is known yet. A transport-level failure (connection
// refused, TLS failure, timeout) is returned unchanged so callers can tell
// "couldn't reach a server" from "reached a server that said no". A
// reachable server whose response doesn't look like a Manager response
// yields a StatusNotFound envelope. In both failure cases the client is
// left disconnected with no attributes carried over.
//
// If the HTTP layer followed redirects to reach the serverinfo endpoint,
// the redirect target becomes the effective base URL for every subsequent
// command.
func (tm *TomcatManager) Connect(ctx context.Context, serverURL string, opts ...ConnectOption) (*Response, error) {
	tm.reset()
	tm.url = strings.TrimRight(serverURL, "/")
	for _, opt := range opts {
		opt(tm)
	}

	client, err := tm.newHTTPClient()
	if err != nil {
		tm.reset()
		return nil, err
	}
	tm.client = client

	probeURL := tm.url + "/text/" + string(CommandServerInfo)
	tm.logger.Debug("connecting", "url", probeURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		tm.reset()
		return nil, err
	}
	tm.setAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		tm.reset()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		tm.reset()
		return nil, err
	}

	r := parseResponse(resp.StatusCode, string(body))
	r.ServerInfo = ParseServerInfo(r.Result)
	if !r.OK() {
		tm.logger.Debug("connect failed", "httpStatus", r.HTTPStatus, "status", r.StatusCode)
		tm.reset()
		return r, nil
	}

	// Rebase onto wherever the redirects landed; later commands are built
	// by appending command names to this URL.
	final := resp.Request.URL.String()
	tm.url = strings.TrimSuffix(final, "/text/"+string(CommandServerInfo))
	tm.version = r.ServerInfo.Version()
	tm.connected = true
	tm.logger.Debug("connected", "url", tm.url, "version", tm.version)
	return r, nil
}

// IsConnected reports whether the last Connect succeeded.
func (tm *TomcatManager) IsConnected() bool {
	return tm.connected && tm.url != ""
}

// URL is the effective base URL, empty when disconnected.
func (tm *TomcatManager) URL() string { return tm.url }

// User is the basic-auth user, empty when disconnected or unauthenticated.
func (tm *TomcatManager) User() string { return tm.user }

// CertFile is the client certificate file, or the bundled cert+key file
// when KeyFile is empty.
func (tm *TomcatManager) CertFile() string { return tm.certFile }

// KeyFile is the client certificate key file.
func (tm *TomcatManager) KeyFile() string { return tm.keyFile }

// CABundle is the custom trust bundle path, empty when the system store is
// used.
func (tm *TomcatManager) CABundle() string { return tm.caBundle }

// InsecureSkipVerify reports whether server certificate verification is
// disabled.
func (tm *TomcatManager) InsecureSkipVerify() bool { return tm.insecure }

// Timeout is the per-request timeout; zero means no timeout.
func (tm *TomcatManager) Timeout() time.Duration { return tm.timeout }

// TomcatVersion is the server line detected by Connect.
func (tm *TomcatManager) TomcatVersion() Version { return tm.version }

func (tm *TomcatManager) newHTTPClient() (*http.Client, error) {
	if tm.transport != nil {
		return &http.Client{Transport: tm.transport, Timeout: tm.timeout}, nil
	}

	tlsConfig := &tls.Config{}
	configured := false

	if tm.insecure {
		tlsConfig.InsecureSkipVerify = true
		configured = true
	} else if tm.caBundle != "" {
		pool, err := loadCABundle(tm.caBundle)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
		configured = true
	}

	if tm.certFile != "" {
		keyFile := tm.keyFile
		if keyFile == "" {
			// single PEM file carrying both cert and key
			keyFile = tm.certFile
		}
		cert, err := tls.LoadX509KeyPair(tm.certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
		configured = true
	}

	client := &http.Client{Timeout: tm.timeout}
	if configured {
		client.Transport = &http.Transport{TLSClientConfig: tlsConfig}
	}
	return client, nil
}

// loadCABundle builds a cert pool from a PEM file or a directory of PEM
// files.
func loadCABundle(path string) (*x509.CertPool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ca bundle: %w", err)
	}

	pool := x509.NewCertPool()
	add := func(file string) error {
		pem, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("ca bundle: %w", err)
		}
		pool.AppendCertsFromPEM(pem)
		return nil
	}

	if !info.IsDir() {
		if err := add(path); err != nil {
			return nil, err
		}
		return pool, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("ca bundle: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := add(filepath.Join(path, entry.Name())); err != nil {
			return nil, err
		}
	}
	return pool, nil
}

func (tm *TomcatManager) setAuth(req *http.Request) {
	if tm.user != "" {
		req.SetBasicAuth(tm.user, tm.password)
	}
}

// gate enforces the connection and capability checks every command method
// runs before touching the network.
func (tm *TomcatManager) gate(cmd Command) error {
	if !tm.IsConnected() {
		return ErrNotConnected
	}
	if !ImplementedBy(cmd, tm.version) {
		return &NotImplementedError{Command: cmd, Version: tm.version}
	}
	return nil
}

// text issues cmd against the /text namespace with the given query
// parameters and parses the response envelope.
func (tm *TomcatManager) text(ctx context.Context, cmd Command, query url.Values) (*Response, error) {
	if err := tm.gate(cmd); err != nil {
		return nil, err
	}
	return tm.get(ctx, tm.url+"/text/"+string(cmd), query)
}

func (tm *TomcatManager) get(ctx context.Context, rawURL string, query url.Values) (*Response, error) {
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	tm.logger.Debug("manager request", "method", http.MethodGet, "url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	tm.setAuth(req)
	return tm.do(req)
}

func (tm *TomcatManager) do(req *http.Request) (*Response, error) {
	resp, err := tm.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	r := parseResponse(resp.StatusCode, body)
	tm.logger.Debug("manager response", "httpStatus", r.HTTPStatus, "status", r.StatusCode, "message", r.StatusMessage)
	return r, nil
}

func readBody(resp *http.Response) (string, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
