// Package cliconfig loads the tomcatctl configuration file.
//
// The file holds named server definitions so a server can be addressed on
// the command line by a short name instead of repeating the url,
// credentials and TLS settings on every invocation:
//
//	servers:
//	  prod:
//	    url: https://tomcat.example.com/manager
//	    user: admin
//	    cacert: /etc/ssl/corp-ca.pem
//	    timeout: 15
//	  dev:
//	    url: http://localhost:8080/manager
//	    user: ace
//	    insecure: true
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfig   = "TOMCATCTL_CONFIG"
	EnvURL      = "TOMCATCTL_URL"
	EnvUser     = "TOMCATCTL_USER"
	EnvPassword = "TOMCATCTL_PASSWORD"
)

const (
	configDir      = "tomcatctl"
	configFileName = "tomcatctl.yaml"
)

// Server is one named server definition.
type Server struct {
	URL  string `yaml:"url"`
	User string `yaml:"user"`
	// Cert is a client certificate file; with Key empty it is treated as
	// a single PEM bundle carrying both certificate and key.
	Cert   string `yaml:"cert"`
	Key    string `yaml:"key"`
	CACert string `yaml:"cacert"`
	// Insecure disables server certificate verification.
	Insecure bool `yaml:"insecure"`
	// Timeout is the request timeout in seconds. Zero or absent keeps the
	// client default.
	Timeout float64 `yaml:"timeout"`
}

// TimeoutDuration converts the timeout from seconds.
func (s Server) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout * float64(time.Second))
}

// Config is the parsed configuration file.
type Config struct {
	Servers map[string]Server `yaml:"servers"`
}

// Path returns the config file location: $TOMCATCTL_CONFIG when set,
// otherwise tomcatctl/tomcatctl.yaml under the user config directory.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configDir, configFileName), nil
}

// Load reads the configuration file. A missing file is not an error: it
// loads as an empty configuration.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a configuration file from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Lookup resolves a named server. The second return is false when no
// server of that name is defined.
func (c *Config) Lookup(name string) (Server, bool) {
	s, ok := c.Servers[name]
	return s, ok
}
