package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/99designs/keyring"
	"golang.org/x/term"
)

const (
	keyringServiceName  = "confluence-request"
	envKeyringPassword  = "CONFLUENCE_KEYRING_PASSWORD"
	envKeyringDirectory = "CONFLUENCE_KEYRING_DIR"
)

// ErrKeyringPassword is returned when the file keyring needs a password and
// there is no terminal to ask for one, as under `serve`.
var ErrKeyringPassword = errors.New("keyring: file keyring is locked; set " + envKeyringPassword + " when running without a terminal")

// stdinIsTerminal reports whether a password prompt can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// openKeyring can be replaced in tests to use an in-memory keyring.
var openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
	return keyring.Open(cfg)
}

// SetOpenKeyring replaces the keyring opener and returns a restore function.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn
	return func() { openKeyring = original }
}

func keyringConfig() keyring.Config {
	cfg := keyring.Config{
		ServiceName: keyringServiceName,
		FileDir:     keyringFileDir(),
	}

	if password, ok := os.LookupEnv(envKeyringPassword); ok {
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(password)
	} else {
		cfg.FilePasswordFunc = promptPassword
	}

	return cfg
}

func promptPassword(prompt string) (string, error) {
	if !stdinIsTerminal() {
		return "", ErrKeyringPassword
	}
	return keyring.TerminalPrompt(prompt)
}

func keyringFileDir() string {
	if dir := strings.TrimSpace(os.Getenv(envKeyringDirectory)); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, keyringServiceName, "keyring")
	}
	return filepath.Join(os.TempDir(), keyringServiceName, "keyring")
}

// LookupToken returns the API token stored for username, or "" when none is
// stored.
func LookupToken(username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("keyring: username required")
	}

	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return "", fmt.Errorf("keyring: open: %w", err)
	}

	item, err := ring.Get(username)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("keyring: get: %w", err)
	}

	return string(item.Data), nil
}

// StoreToken saves the API token for username.
func StoreToken(username, token string) error {
	if username == "" {
		return fmt.Errorf("keyring: username required")
	}
	if token == "" {
		return fmt.Errorf("keyring: token required")
	}

	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("keyring: open: %w", err)
	}

	if err := ring.Set(keyring.Item{
		Key:   username,
		Data:  []byte(token),
		Label: "Confluence API token for " + username,
	}); err != nil {
		return fmt.Errorf("keyring: set: %w", err)
	}

	return nil
}

func (c *Config) applyKeyringDefaults() error {
	conf := &c.Confluence
	if !conf.UseKeyring || conf.APIToken != "" || conf.Username == "" {
		return nil
	}

	token, err := LookupToken(conf.Username)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	conf.APIToken = token
	return nil
}
