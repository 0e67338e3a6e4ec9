package manager

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// requirePath rejects an absent or empty path before any network I/O. An
// empty optional version is different: it is a legal "no version" and is
// simply omitted from the request.
func requirePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &ArgError{Arg: "path"}
	}
	return nil
}

// pathParams builds the query for the commands that address an application
// by path and optional parallel-deployment version.
func pathParams(path, version string) url.Values {
	q := url.Values{}
	q.Set("path", path)
	if version != "" {
		q.Set("version", version)
	}
	return q
}

// List returns the applications installed on the server in the Apps field.
func (tm *TomcatManager) List(ctx context.Context) (*Response, error) {
	r, err := tm.text(ctx, CommandList, nil)
	if err != nil {
		return nil, err
	}
	if r.OK() {
		apps, err := parseApplicationList(r.Result)
		if err != nil {
			return r, fmt.Errorf("parse application list: %w", err)
		}
		r.Apps = apps
	}
	return r, nil
}

// ServerInfo returns details about the server in the ServerInfo field.
func (tm *TomcatManager) ServerInfo(ctx context.Context) (*Response, error) {
	r, err := tm.text(ctx, CommandServerInfo, nil)
	if err != nil {
		return nil, err
	}
	r.ServerInfo = ParseServerInfo(r.Result)
	return r, nil
}

// StatusXML returns the server status XML document in both Result and
// StatusXML.
//
// This is the one command outside the /text namespace, and its response
// carries no status line. The envelope's status code and message are
// synthesized from the HTTP status instead.
func (tm *TomcatManager) StatusXML(ctx context.Context) (*Response, error) {
	if err := tm.gate(CommandStatusXML); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("XML", "true")
	statusURL := tm.url + "/status/all?" + q.Encode()
	tm.logger.Debug("manager request", "method", http.MethodGet, "url", statusURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return nil, err
	}
	tm.setAuth(req)

	resp, err := tm.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	r := &Response{HTTPStatus: resp.StatusCode, Body: body, Result: body, StatusXML: body}
	if resp.StatusCode == http.StatusOK {
		r.StatusCode = StatusOK
		r.StatusMessage = string(StatusOK)
	} else {
		r.StatusCode = StatusFail
		r.StatusMessage = string(StatusFail)
	}
	return r, nil
}

// VMInfo returns JVM diagnostic text in both Result and VMInfo.
func (tm *TomcatManager) VMInfo(ctx context.Context) (*Response, error) {
	r, err := tm.text(ctx, CommandVMInfo, nil)
	if err != nil {
		return nil, err
	}
	r.VMInfo = r.Result
	return r, nil
}

// ThreadDump returns a JVM thread dump in both Result and ThreadDump.
func (tm *TomcatManager) ThreadDump(ctx context.Context) (*Response, error) {
	r, err := tm.text(ctx, CommandThreadDump, nil)
	if err != nil {
		return nil, err
	}
	r.ThreadDump = r.Result
	return r, nil
}

// SSLConnectorCiphers returns the TLS ciphers configured on each connector
// in both Result and SSLConnectorCiphers.
func (tm *TomcatManager) SSLConnectorCiphers(ctx context.Context) (*Response, error) {
	r, err := tm.text(ctx, CommandSSLConnectorCiphers, nil)
	if err != nil {
		return nil, err
	}
	r.SSLConnectorCiphers = r.Result
	return r, nil
}

// SSLConnectorCerts returns the certificate chains configured on each
// virtual host.
func (tm *TomcatManager) SSLConnectorCerts(ctx context.Context) (*Response, error) {
	return tm.text(ctx, CommandSSLConnectorCerts, nil)
}

// SSLConnectorTrustedCerts returns the trusted certificates configured on
// each virtual host.
func (tm *TomcatManager) SSLConnectorTrustedCerts(ctx context.Context) (*Response, error) {
	return tm.text(ctx, CommandSSLConnectorTrustedCerts, nil)
}

// SSLReload reloads TLS certificates and keys. With an empty host, every
// virtual host is reloaded; otherwise only the named one.
func (tm *TomcatManager) SSLReload(ctx context.Context, host string) (*Response, error) {
	q := url.Values{}
	if host != "" {
		q.Set("tlsHostName", host)
	}
	return tm.text(ctx, CommandSSLReload, q)
}

// Resources returns the global JNDI resources in the Resources field,
// mapping resource name to java class name. A non-empty resourceType
// restricts the listing to resources of that fully qualified java class.
func (tm *TomcatManager) Resources(ctx context.Context, resourceType string) (*Response, error) {
	q := url.Values{}
	if resourceType != "" {
		q.Set("type", resourceType)
	}
	r, err := tm.text(ctx, CommandResources, q)
	if err != nil {
		return nil, err
	}
	if r.OK() {
		r.Resources = parseResources(r.Result)
	}
	return r, nil
}

// FindLeakers returns the paths of applications that leaked memory on stop,
// reload or undeploy in the Leakers field, without the duplicates the
// server may emit.
//
// This command triggers a full garbage collection on the server. Use with
// caution on production systems.
func (tm *TomcatManager) FindLeakers(ctx context.Context) (*Response, error) {
	q := url.Values{}
	q.Set("statusLine", "true")
	r, err := tm.text(ctx, CommandFindLeakers, q)
	if err != nil {
		return nil, err
	}
	if r.OK() {
		r.Leakers = parseLeakers(r.Result)
	}
	return r, nil
}

// Sessions returns session information for the application at path in both
// Result and Sessions.
func (tm *TomcatManager) Sessions(ctx context.Context, path, version string) (*Response, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	r, err := tm.text(ctx, CommandSessions, pathParams(path, version))
	if err != nil {
		return nil, err
	}
	if r.OK() {
		r.Sessions = r.Result
	}
	return r, nil
}

// Expire expires sessions of the application at path that have been idle
// for more than idle minutes. With a non-positive idle the server reports
// the session information without expiring anything.
func (tm *TomcatManager) Expire(ctx context.Context, path, version string, idle int) (*Response, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	q := pathParams(path, version)
	if idle > 0 {
		q.Set("idle", strconv.Itoa(idle))
	}
	r, err := tm.text(ctx, CommandExpire, q)
	if err != nil {
		return nil, err
	}
	if r.OK() {
		r.Sessions = r.Result
	}
	return r, nil
}

// Start starts the application at path.
func (tm *TomcatManager) Start(ctx context.Context, path, version string) (*Response, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	return tm.text(ctx, CommandStart, pathParams(path, version))
}

// Stop stops the application at path.
func (tm *TomcatManager) Stop(ctx context.Context, path, version string) (*Response, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	return tm.text(ctx, CommandStop, pathParams(path, version))
}

// Reload stops and starts the application at path.
func (tm *TomcatManager) Reload(ctx context.Context, path, version string) (*Response, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	return tm.text(ctx, CommandReload, pathParams(path, version))
}

// Undeploy removes the application at path from the server. An application
// deployed with a version needs that version to undeploy.
func (tm *TomcatManager) Undeploy(ctx context.Context, path, version string) (*Response, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	return tm.text(ctx, CommandUndeploy, pathParams(path, version))
}
