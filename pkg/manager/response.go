package manager

import (
	"net/http"
	"strings"
)

// StatusCode is the status token from the first line of a Manager
// response.
type StatusCode string

const (
	// StatusOK and StatusFail are the two tokens the Manager app emits.
	StatusOK   StatusCode = "OK"
	StatusFail StatusCode = "FAIL"
	// StatusNotFound is synthesized by this client when the body does not
	// look like a Manager response at all, e.g. when the URL points at
	// some other web server.
	StatusNotFound StatusCode = "NOTFOUND"
)

// notFoundMessage is the status message attached to StatusNotFound.
const notFoundMessage = "Tomcat Manager not found"

// Response is the parsed result of one Manager command.
//
// StatusCode, StatusMessage and Result come from the response body;
// HTTPStatus and Body keep the raw material for diagnostics. The typed
// fields are filled in by the command that produced the response: List
// sets Apps, ServerInfo sets ServerInfo, and so on. A Response is not
// modified after the command method returns it.
type Response struct {
	StatusCode    StatusCode
	StatusMessage string
	// Result is the body with the status line removed.
	Result string

	HTTPStatus int
	Body       string

	Apps                []Application
	ServerInfo          *ServerInfo
	Resources           map[string]string
	Leakers             []string
	Sessions            string
	VMInfo              string
	ThreadDump          string
	SSLConnectorCiphers string
	StatusXML           string
}

// OK reports whether the command completed with no errors: the HTTP
// request returned 200 and the first line of the body began with OK.
func (r *Response) OK() bool {
	return r.HTTPStatus == http.StatusOK && r.StatusCode == StatusOK
}

// Err turns a failed response into an error. An HTTP-level failure (4xx or
// 5xx) is definitive and is reported first as an HTTPError; only when the
// HTTP request succeeded does a non-OK status line become a ServerError.
// Returns nil when OK() is true.
func (r *Response) Err() error {
	if r.HTTPStatus >= 400 {
		return &HTTPError{Status: r.HTTPStatus, StatusText: http.StatusText(r.HTTPStatus)}
	}
	if r.StatusCode != StatusOK {
		return &ServerError{Message: r.StatusMessage}
	}
	return nil
}

// parseResponse builds a Response from the raw HTTP status and body text.
//
// An empty body parses to nothing. A non-200 HTTP status leaves the status
// line unparsed, since the HTTP failure is what Err reports. Otherwise the
// first line is split on the first space into a status token and message;
// an unrecognized token means the server is not a Tomcat Manager and the
// response gets the synthetic NOTFOUND status.
func parseResponse(httpStatus int, body string) *Response {
	r := &Response{HTTPStatus: httpStatus, Body: body}
	if body == "" || httpStatus != http.StatusOK {
		return r
	}

	trimmed := strings.TrimSuffix(body, "\n")
	trimmed = strings.TrimSuffix(trimmed, "\r")
	lines := splitLines(trimmed)
	token, rest, _ := strings.Cut(lines[0], " ")
	switch StatusCode(token) {
	case StatusOK, StatusFail:
		r.StatusCode = StatusCode(token)
		r.StatusMessage = strings.TrimPrefix(rest, "- ")
		if len(lines) > 1 {
			r.Result = strings.Join(lines[1:], "\n")
		}
	default:
		r.StatusCode = StatusNotFound
		r.StatusMessage = notFoundMessage
	}
	return r
}

// parseResources parses resources output: "name:classname" per line,
// split on the first colon with the class name left-trimmed. The server
// interleaves "FAIL - ..." diagnostics for broken resources; those lines
// are dropped rather than reported as resources.
func parseResources(result string) map[string]string {
	resources := make(map[string]string)
	for _, line := range splitLines(result) {
		name, class, ok := strings.Cut(strings.TrimRight(line, " \t\r"), ":")
		if !ok {
			continue
		}
		class = strings.TrimLeft(class, " \t")
		if strings.HasPrefix(class, string(StatusFail)+" - ") {
			continue
		}
		resources[name] = class
	}
	return resources
}

// parseLeakers splits findleaks output into application paths, dropping
// duplicates while keeping first-occurrence order. The server repeats a
// path when an app leaked both before and after a reload; callers get
// each leaker once.
func parseLeakers(result string) []string {
	if result == "" {
		return nil
	}
	seen := make(map[string]bool)
	var leakers []string
	for _, line := range splitLines(result) {
		path := strings.TrimRight(line, " \t\r")
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		leakers = append(leakers, path)
	}
	return leakers
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
