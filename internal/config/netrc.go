package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bgentry/go-netrc/netrc"
)

// netrcPath returns $NETRC or ~/.netrc.
func netrcPath() string {
	if path := os.Getenv("NETRC"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".netrc")
}

// netrcCredentials returns the login and password of the entry for host,
// falling back to the default entry. A missing file yields no credentials.
func netrcCredentials(host string) (login, password string, err error) {
	path := netrcPath()
	if path == "" {
		return "", "", nil
	}

	m, err := netrc.FindMachine(path, host)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("netrc: %w", err)
	}
	if m == nil {
		return "", "", nil
	}
	return m.Login, m.Password, nil
}

// applyNetrcDefaults fills in missing username/api_token from the .netrc
// entry for {domain}.atlassian.net. A configured username must match the
// netrc login for the token to be taken.
func (c *Config) applyNetrcDefaults() error {
	conf := &c.Confluence
	if conf.Domain == "" || conf.APIToken != "" {
		return nil
	}

	login, password, err := netrcCredentials(conf.Host())
	if err != nil {
		return fmt.Errorf("config: load confluence netrc: %w", err)
	}
	if login == "" || password == "" {
		return nil
	}
	if conf.Username != "" && conf.Username != login {
		return nil
	}

	conf.Username = login
	conf.APIToken = password
	return nil
}
