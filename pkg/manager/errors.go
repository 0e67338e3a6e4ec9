package manager

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by command methods and Implements when no
// successful Connect has happened on this instance.
var ErrNotConnected = errors.New("not connected to a tomcat server")

// NotImplementedError is returned when the connected server's version does
// not support the requested command. No HTTP request is made.
type NotImplementedError struct {
	Command Command
	Version Version
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented by tomcat %s", e.Command, e.Version)
}

// ArgError reports a missing required argument. It is returned before any
// network I/O: Tomcat's own handling of empty-vs-absent parameters is
// inconsistent, so empty required values are never sent to the server.
type ArgError struct {
	Arg string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("missing required argument: %s", e.Arg)
}

// HTTPError reports a 4xx or 5xx HTTP status from the Manager application.
// Returned only by Response.Err.
type HTTPError struct {
	Status     int
	StatusText string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d %s", e.Status, e.StatusText)
}

// ServerError reports a response whose first line did not begin with OK.
// Returned only by Response.Err, and only when the HTTP request itself
// succeeded.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("tomcat error: %s", e.Message)
}
