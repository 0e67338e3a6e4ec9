package manager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

func deployParams(path, version string, update bool) url.Values {
	q := pathParams(path, version)
	if update {
		q.Set("update", "true")
	}
	return q
}

// DeployWAR uploads a war read from war and deploys it at path. With
// update set, an application already deployed at path is undeployed first.
//
// The stream is handed to the HTTP layer as the PUT body without
// buffering. DeployWARFile is the variant that takes a local file path
// instead of an open stream.
func (tm *TomcatManager) DeployWAR(ctx context.Context, path string, war io.Reader, version string, update bool) (*Response, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	if war == nil {
		return nil, &ArgError{Arg: "war"}
	}
	if err := tm.gate(CommandDeploy); err != nil {
		return nil, err
	}

	deployURL := tm.url + "/text/" + string(CommandDeploy) + "?" + deployParams(path, version, update).Encode()
	tm.logger.Debug("manager request", "method", http.MethodPut, "url", deployURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, deployURL, war)
	if err != nil {
		return nil, err
	}
	tm.setAuth(req)
	return tm.do(req)
}

// DeployWARFile deploys the war file at warFile, local to this client, at
// path on the server.
func (tm *TomcatManager) DeployWARFile(ctx context.Context, path, warFile, version string, update bool) (*Response, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	if warFile == "" {
		return nil, &ArgError{Arg: "warfile"}
	}

	f, err := os.Open(warFile)
	if err != nil {
		return nil, fmt.Errorf("open war file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return tm.DeployWAR(ctx, path, f, version, update)
}

// DeployServerWAR deploys a war that already exists on the server host at
// the java-style path serverWar (no "file:" prefix).
func (tm *TomcatManager) DeployServerWAR(ctx context.Context, path, serverWar, version string, update bool) (*Response, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	if serverWar == "" {
		return nil, &ArgError{Arg: "serverwar"}
	}
	q := deployParams(path, version, update)
	q.Set("war", serverWar)
	return tm.text(ctx, CommandDeploy, q)
}
