package manager

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ApplicationState is the running state reported by the list command.
type ApplicationState string

const (
	StateRunning ApplicationState = "running"
	StateStopped ApplicationState = "stopped"
)

// Application is one installed application as reported by the list
// command. The Version field is empty for applications deployed without a
// parallel-deployment version.
type Application struct {
	Path     string
	State    ApplicationState
	Sessions int
	Dir      string
	Version  string
}

// ParseApplication parses one line of list output. The wire grammar is
// "path:state:sessions:directory" where directory may carry a parallel
// deployment version as "dir##version".
func ParseApplication(line string) (Application, error) {
	fields := strings.SplitN(strings.TrimRight(line, "\r\n"), ":", 4)
	if len(fields) != 4 {
		return Application{}, fmt.Errorf("malformed application line %q", line)
	}
	sessions, err := strconv.Atoi(fields[2])
	if err != nil {
		return Application{}, fmt.Errorf("malformed session count in %q: %w", line, err)
	}
	app := Application{
		Path:     fields[0],
		State:    ApplicationState(fields[1]),
		Sessions: sessions,
		Dir:      fields[3],
	}
	if dir, ver, ok := strings.Cut(fields[3], "##"); ok {
		app.Dir = dir
		app.Version = ver
	}
	return app, nil
}

// DirAndVersion returns the directory field as it appears on the wire,
// with the "##version" suffix when a version is present.
func (a Application) DirAndVersion() string {
	if a.Version != "" {
		return a.Dir + "##" + a.Version
	}
	return a.Dir
}

// String renders the application in the list command's line format, so a
// parsed line round-trips.
func (a Application) String() string {
	return fmt.Sprintf("%s:%s:%d:%s", a.Path, a.State, a.Sessions, a.DirAndVersion())
}

// SortByState orders apps by state, then path, then version. This is the
// default ordering for listings grouped by running state.
func SortByState(apps []Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		if apps[i].State != apps[j].State {
			return apps[i].State < apps[j].State
		}
		if apps[i].Path != apps[j].Path {
			return apps[i].Path < apps[j].Path
		}
		return apps[i].Version < apps[j].Version
	})
}

// SortByPath orders apps by path, then version, then state.
func SortByPath(apps []Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		if apps[i].Path != apps[j].Path {
			return apps[i].Path < apps[j].Path
		}
		if apps[i].Version != apps[j].Version {
			return apps[i].Version < apps[j].Version
		}
		return apps[i].State < apps[j].State
	})
}

func parseApplicationList(result string) ([]Application, error) {
	var apps []Application
	for _, line := range splitLines(result) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		app, err := ParseApplication(line)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}
