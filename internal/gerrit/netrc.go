package gerrit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// credentials is one netrc machine entry.
type credentials struct {
	login    string
	password string
}

// loadCredentials resolves the basic-auth pair for host from the user's
// netrc file ($NETRC overrides the default ~/.netrc location).
func loadCredentials(host string) (credentials, error) {
	path := os.Getenv("NETRC")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return credentials{}, fmt.Errorf("locating netrc: %w", err)
		}
		path = filepath.Join(home, ".netrc")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return credentials{}, fmt.Errorf("reading netrc: %w", err)
	}
	cred, ok := parseNetrc(string(data), host)
	if !ok {
		return credentials{}, fmt.Errorf("no netrc entry for %s in %s", host, path)
	}
	return cred, nil
}

// parseNetrc scans the netrc token stream for the machine entry matching
// host, falling back to a default entry when present. Only the machine,
// default, login and password keywords matter here; everything else is
// skipped.
func parseNetrc(content, host string) (credentials, bool) {
	var hostCred, defCred credentials
	var hostSeen, defSeen bool
	current := ""

	fields := strings.Fields(content)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "machine":
			if i+1 >= len(fields) {
				break
			}
			i++
			current = fields[i]
			if current == host {
				hostSeen = true
			}
		case "default":
			current = "default"
			defSeen = true
		case "login", "password":
			if i+1 >= len(fields) {
				break
			}
			key := fields[i]
			i++
			var target *credentials
			switch current {
			case host:
				target = &hostCred
			case "default":
				target = &defCred
			default:
				continue
			}
			if key == "login" {
				target.login = fields[i]
			} else {
				target.password = fields[i]
			}
		}
	}

	if hostSeen {
		return hostCred, true
	}
	return defCred, defSeen
}
