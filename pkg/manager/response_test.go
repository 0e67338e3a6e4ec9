package manager

import (
	"errors"
	"testing"
)

func TestParseResponse_OK(t *testing.T) {
	r := parseResponse(200, "OK - Listed applications for virtual host localhost\n/:running:0:ROOT")
	if r.StatusCode != StatusOK {
		t.Errorf("StatusCode = %q, want OK", r.StatusCode)
	}
	if r.StatusMessage != "Listed applications for virtual host localhost" {
		t.Errorf("StatusMessage = %q", r.StatusMessage)
	}
	if r.Result != "/:running:0:ROOT" {
		t.Errorf("Result = %q", r.Result)
	}
	if !r.OK() {
		t.Error("OK() = false for 200/OK response")
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestParseResponse_Fail(t *testing.T) {
	r := parseResponse(200, "FAIL - Invalid context path null was specified")
	if r.StatusCode != StatusFail {
		t.Errorf("StatusCode = %q, want FAIL", r.StatusCode)
	}
	if r.OK() {
		t.Error("OK() = true for FAIL response")
	}

	var serverErr *ServerError
	if err := r.Err(); !errors.As(err, &serverErr) {
		t.Fatalf("Err() = %v, want *ServerError", err)
	} else if serverErr.Message != "Invalid context path null was specified" {
		t.Errorf("ServerError.Message = %q", serverErr.Message)
	}
}

func TestParseResponse_NotTomcat(t *testing.T) {
	r := parseResponse(200, "<html><body>Welcome to nginx</body></html>")
	if r.StatusCode != StatusNotFound {
		t.Errorf("StatusCode = %q, want NOTFOUND", r.StatusCode)
	}
	if r.StatusMessage != "Tomcat Manager not found" {
		t.Errorf("StatusMessage = %q", r.StatusMessage)
	}
	if r.Result != "" {
		t.Errorf("Result = %q, want empty", r.Result)
	}
}

func TestParseResponse_EmptyBody(t *testing.T) {
	r := parseResponse(200, "")
	if r.StatusCode != "" || r.StatusMessage != "" || r.Result != "" {
		t.Errorf("empty body parsed to %+v, want nothing", r)
	}
}

func TestParseResponse_HTTPFailureLeavesStatusUnparsed(t *testing.T) {
	r := parseResponse(401, "Unauthorized")
	if r.StatusCode != "" {
		t.Errorf("StatusCode = %q, want unparsed", r.StatusCode)
	}

	var httpErr *HTTPError
	if err := r.Err(); !errors.As(err, &httpErr) {
		t.Fatalf("Err() = %v, want *HTTPError", err)
	} else if httpErr.Status != 401 {
		t.Errorf("HTTPError.Status = %d, want 401", httpErr.Status)
	}
}

func TestParseResponse_NoResultLines(t *testing.T) {
	r := parseResponse(200, "OK - Stopped application at context path /app")
	if r.Result != "" {
		t.Errorf("Result = %q, want empty", r.Result)
	}
}

func TestErr_HTTPErrorWins(t *testing.T) {
	// HTTP failure is definitive even when the status line also says FAIL.
	r := &Response{HTTPStatus: 500, StatusCode: StatusFail, StatusMessage: "boom"}
	var httpErr *HTTPError
	if err := r.Err(); !errors.As(err, &httpErr) {
		t.Fatalf("Err() = %v, want *HTTPError", err)
	}
}

func TestParseResources(t *testing.T) {
	result := "jdbc/main:org.apache.tomcat.jdbc.pool.DataSource\n" +
		"broken:FAIL - Encountered exception\n" +
		"jdbc/other: org.apache.tomcat.jdbc.pool.DataSource"
	resources := parseResources(result)
	if len(resources) != 2 {
		t.Fatalf("parseResources = %d entries, want 2 (FAIL line dropped)", len(resources))
	}
	if resources["jdbc/other"] != "org.apache.tomcat.jdbc.pool.DataSource" {
		t.Errorf("class name not left-trimmed: %q", resources["jdbc/other"])
	}
	if _, ok := resources["broken"]; ok {
		t.Error("FAIL-prefixed resource not dropped")
	}
}

func TestParseLeakers_Dedup(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   []string
	}{
		{"consecutive dupes", "/leaky\n/leaky\n/other", []string{"/leaky", "/other"}},
		{"non-consecutive dupes", "/a\n/b\n/a\n/c\n/b", []string{"/a", "/b", "/c"}},
		{"no dupes", "/a\n/b", []string{"/a", "/b"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLeakers(tt.result)
			if len(got) != len(tt.want) {
				t.Fatalf("parseLeakers = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseLeakers[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseServerInfo(t *testing.T) {
	info := ParseServerInfo("Tomcat Version: Apache Tomcat/8.0.32 (Ubuntu)\nOS Name: Linux\nOS Version: 4.4.0\nOS Architecture: amd64\nJVM Version: 1.8.0_292-b10\nJVM Vendor: Oracle Corporation")
	if v, _ := info.Get("OS Name"); v != "Linux" {
		t.Errorf(`Get("OS Name") = %q, want Linux`, v)
	}
	if info.TomcatVersion() != "Apache Tomcat/8.0.32 (Ubuntu)" {
		t.Errorf("TomcatVersion() = %q", info.TomcatVersion())
	}
	if info.JVMVendor() != "Oracle Corporation" {
		t.Errorf("JVMVendor() = %q", info.JVMVendor())
	}
	if info.Version() != Version8_0 {
		t.Errorf("Version() = %v, want 8.0", info.Version())
	}
	// keys keep server order
	keys := info.Keys()
	if len(keys) == 0 || keys[0] != "Tomcat Version" {
		t.Errorf("Keys() = %v, want Tomcat Version first", keys)
	}
}

func TestParseServerInfo_ValueWithColon(t *testing.T) {
	info := ParseServerInfo("JVM Version: 1.8.0:b10")
	if v := info.JVMVersion(); v != "1.8.0:b10" {
		t.Errorf("JVMVersion() = %q, want split on first colon only", v)
	}
}
