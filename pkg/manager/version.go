package manager

import (
	"regexp"
	"strconv"
)

// Version identifies a major.minor line of the Tomcat server. The zero
// value is VersionUnsupported. Values are ordered: a newer server line
// always compares greater than an older one, and VersionNext compares
// greater than every released line.
type Version int

// Known server lines, oldest to newest.
const (
	VersionUnsupported Version = iota
	Version7_0
	Version8_0
	Version8_5
	Version9_0
	Version10_0
	Version10_1
	// VersionNext is any version newer than the newest line this client
	// knows about. Unknown future servers are assumed compatible.
	VersionNext
)

// String returns the major.minor form, e.g. "8.5".
func (v Version) String() string {
	switch v {
	case Version7_0:
		return "7.0"
	case Version8_0:
		return "8.0"
	case Version8_5:
		return "8.5"
	case Version9_0:
		return "9.0"
	case Version10_0:
		return "10.0"
	case Version10_1:
		return "10.1"
	case VersionNext:
		return "next"
	default:
		return "unsupported"
	}
}

// versionRe matches the version string reported by the serverinfo command,
// e.g. "Apache Tomcat/8.5.82" or "[Apache Tomcat/10.1.4]".
var versionRe = regexp.MustCompile(`\[?Apache Tomcat/(\d+)\.(\d+)`)

var knownLines = map[string]Version{
	"7.0":  Version7_0,
	"8.0":  Version8_0,
	"8.5":  Version8_5,
	"9.0":  Version9_0,
	"10.0": Version10_0,
	"10.1": Version10_1,
}

// Newest released line this client knows about.
const newestMajor, newestMinor = 10, 1

// ParseVersion maps a Tomcat version string to a Version. Strings that
// don't look like a Tomcat version, or that name a line older than the
// oldest supported one, map to VersionUnsupported. Lines newer than the
// newest known one map to VersionNext.
func ParseVersion(s string) Version {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return VersionUnsupported
	}
	if v, ok := knownLines[m[1]+"."+m[2]]; ok {
		return v
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	if major > newestMajor || (major == newestMajor && minor > newestMinor) {
		return VersionNext
	}
	return VersionUnsupported
}
