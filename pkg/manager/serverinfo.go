package manager

import "strings"

// ServerInfo holds the key/value pairs reported by the serverinfo command.
// Keys keep the order the server sent them in; the well-known entries are
// also surfaced as methods.
type ServerInfo struct {
	keys   []string
	values map[string]string
}

// ParseServerInfo parses serverinfo output: one "Key: value" pair per
// line. Keys may contain spaces, so lines split on the first colon only,
// with the value left-trimmed.
func ParseServerInfo(result string) *ServerInfo {
	info := &ServerInfo{values: make(map[string]string)}
	for _, line := range splitLines(result) {
		key, value, ok := strings.Cut(strings.TrimRight(line, " \t\r"), ":")
		if !ok {
			continue
		}
		if _, seen := info.values[key]; !seen {
			info.keys = append(info.keys, key)
		}
		info.values[key] = strings.TrimLeft(value, " \t")
	}
	return info
}

// Get returns the value for key and whether it was present.
func (si *ServerInfo) Get(key string) (string, bool) {
	v, ok := si.values[key]
	return v, ok
}

// Keys returns the keys in the order the server sent them.
func (si *ServerInfo) Keys() []string {
	return si.keys
}

func (si *ServerInfo) get(key string) string {
	return si.values[key]
}

// TomcatVersion is the full server version string, e.g.
// "Apache Tomcat/8.0.32 (Ubuntu)".
func (si *ServerInfo) TomcatVersion() string { return si.get("Tomcat Version") }

// OSName is the server operating system name.
func (si *ServerInfo) OSName() string { return si.get("OS Name") }

// OSVersion is the server operating system version.
func (si *ServerInfo) OSVersion() string { return si.get("OS Version") }

// OSArchitecture is the server operating system architecture.
func (si *ServerInfo) OSArchitecture() string { return si.get("OS Architecture") }

// JVMVersion is the server JVM version string.
func (si *ServerInfo) JVMVersion() string { return si.get("JVM Version") }

// JVMVendor is the server JVM vendor.
func (si *ServerInfo) JVMVendor() string { return si.get("JVM Vendor") }

// Version is the server line derived from the Tomcat Version value.
func (si *ServerInfo) Version() Version {
	return ParseVersion(si.TomcatVersion())
}
