package manager

// Command names a Tomcat Manager operation. The value is the path segment
// the Manager application uses for the command in its /text namespace
// (StatusXML is the one command that lives outside it).
type Command string

// All commands this client can issue.
const (
	CommandList                     Command = "list"
	CommandServerInfo               Command = "serverinfo"
	CommandStatusXML                Command = "status"
	CommandVMInfo                   Command = "vminfo"
	CommandThreadDump               Command = "threaddump"
	CommandResources                Command = "resources"
	CommandFindLeakers              Command = "findleaks"
	CommandSessions                 Command = "sessions"
	CommandExpire                   Command = "expire"
	CommandStart                    Command = "start"
	CommandStop                     Command = "stop"
	CommandReload                   Command = "reload"
	CommandDeploy                   Command = "deploy"
	CommandUndeploy                 Command = "undeploy"
	CommandSSLConnectorCiphers      Command = "sslConnectorCiphers"
	CommandSSLConnectorCerts        Command = "sslConnectorCerts"
	CommandSSLConnectorTrustedCerts Command = "sslConnectorTrustedCerts"
	CommandSSLReload                Command = "sslReload"
)

// versionRange is a contiguous span of server lines. Every command the
// Manager app has ever shipped has remained available in later releases,
// so a range is enough.
type versionRange struct {
	from, to Version
}

func (r versionRange) contains(v Version) bool {
	return v >= r.from && v <= r.to
}

// matrix records which server lines implement each command. Built once and
// never mutated; safe for concurrent reads.
var matrix = map[Command]versionRange{
	CommandList:        {Version7_0, VersionNext},
	CommandServerInfo:  {Version7_0, VersionNext},
	CommandStatusXML:   {Version7_0, VersionNext},
	CommandVMInfo:      {Version7_0, VersionNext},
	CommandThreadDump:  {Version7_0, VersionNext},
	CommandResources:   {Version7_0, VersionNext},
	CommandFindLeakers: {Version7_0, VersionNext},
	CommandSessions:    {Version7_0, VersionNext},
	CommandExpire:      {Version7_0, VersionNext},
	CommandStart:       {Version7_0, VersionNext},
	CommandStop:        {Version7_0, VersionNext},
	CommandReload:      {Version7_0, VersionNext},
	CommandDeploy:      {Version7_0, VersionNext},
	CommandUndeploy:    {Version7_0, VersionNext},

	// The SSL commands arrived later than the rest of the protocol.
	// sslConnectorCiphers shipped with 8.0; the certificate listing and
	// reload commands with 8.5.
	CommandSSLConnectorCiphers:      {Version8_0, VersionNext},
	CommandSSLConnectorCerts:        {Version8_5, VersionNext},
	CommandSSLConnectorTrustedCerts: {Version8_5, VersionNext},
	CommandSSLReload:                {Version8_5, VersionNext},
}

// ImplementedBy reports whether the given server line implements cmd.
// Unknown commands are never implemented. Usable without a connection.
func ImplementedBy(cmd Command, v Version) bool {
	r, ok := matrix[cmd]
	return ok && r.contains(v)
}

// Implements reports whether the connected server implements cmd. Returns
// ErrNotConnected when called before a successful Connect.
func (tm *TomcatManager) Implements(cmd Command) (bool, error) {
	if !tm.IsConnected() {
		return false, ErrNotConnected
	}
	return ImplementedBy(cmd, tm.version), nil
}
