// Package manager is a client for the Apache Tomcat Manager application's
// text command protocol.
//
// The Manager app answers HTTP GET (and one PUT) requests under
// {base}/text/{command} with plain text whose first line is
// "OK - message" or "FAIL - message". This package issues those requests
// and parses the responses into typed results.
//
// # Usage
//
//	tm := manager.New()
//	r, err := tm.Connect(ctx, "http://localhost:8080/manager",
//	    manager.WithAuth("ace", "newenglandclamchowder"))
//	if err != nil {
//	    // transport-level failure: nothing was listening, TLS failed, etc.
//	}
//	if err := r.Err(); err != nil {
//	    // reached a server, but it refused us or isn't a Tomcat Manager
//	}
//
//	r, err = tm.List(ctx)
//	for _, app := range r.Apps {
//	    fmt.Println(app.Path, app.State, app.Sessions)
//	}
//
// Connect probes the server with the serverinfo command and records the
// detected server version. Every other command is gated on that version
// through a static capability table: commands the connected server's line
// does not implement fail fast with a NotImplementedError, before any
// network traffic.
//
// Command methods return the parsed Response even when the server reports
// FAIL; the error return covers the local taxonomy (ErrNotConnected,
// NotImplementedError, ArgError) and unwrapped transport failures.
// Response.Err converts a FAIL envelope into an error for callers that
// want to treat it as one.
package manager
