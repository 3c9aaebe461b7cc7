// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodeconfig // import "blitznote.com/src/node.sigauth/nodeconfig"

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/ini.v1"
)

// DefaultPath is where the subscription tooling puts the node's configuration.
const DefaultPath = "/etc/opt/physaci_sub/conf.ini"

// Sections and keys that are recognized.
const (
	// DefaultSection provides values to all other sections that lack them.
	DefaultSection    = "local"
	SectionNodeServer = "node_server"

	keyConfigFile = "config_file"
	keySigningKey = "node_sig_key"
)

// ErrMissingKey is the cause of errors returned by SigningKey
// if no (or an empty) 'node_sig_key' has been found.
var ErrMissingKey = errors.New("node_sig_key has not been configured")

// Mimic Python's configparser, which writes these files.
var loadOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	IgnoreContinuation:         true,
	IgnoreInlineComment:        true,
	PreserveSurroundedQuote:    true,
	AllowPythonMultilineValues: true,
}

// Config is the result of reading the node's configuration files.
//
// It is read-only and can be used by multiple goroutines.
type Config struct {
	sources  []string                     // in the order they have been merged
	sections map[string]map[string]string // section → key → value
}

// Load reads the configuration at 'primaryPath', which usually is DefaultPath.
//
// If the file cannot be read an empty Config is returned, and error is nil:
// SigningKey will report what's missing. The condition is logged
// along with the user this process runs as, which most likely lacks permissions.
//
// Should the file point to another one using 'config_file' in section "local",
// that one is read as well, and its values take precedence.
//
// Errors are returned for files that have been read but cannot be parsed.
func Load(primaryPath string, log *zap.Logger) (*Config, error) {
	if log == nil {
		log = zap.NewNop()
	}

	primary, err := os.ReadFile(primaryPath)
	if err != nil {
		log.Warn("failed to read the node configuration",
			zap.String("path", primaryPath),
			zap.String("user", currentUser()),
			zap.Error(err))
		return &Config{}, nil
	}
	f, err := ini.LoadSources(loadOptions, primary)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %s", primaryPath)
	}
	cfg := snapshot(f, primaryPath)

	overridePath, found := cfg.Get(DefaultSection, keyConfigFile)
	if !found || overridePath == "" || sameFile(overridePath, primaryPath) {
		return cfg, nil
	}

	override, err := os.ReadFile(overridePath)
	if err != nil {
		log.Warn("failed to read the overriding node configuration",
			zap.String("path", overridePath),
			zap.String("referenced_by", primaryPath),
			zap.String("user", currentUser()),
			zap.Error(err))
		return cfg, nil
	}
	f, err = ini.LoadSources(loadOptions, primary, override)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %s", overridePath)
	}
	return snapshot(f, primaryPath, overridePath), nil
}

// snapshot copies everything from 'f', which is not to be used afterwards.
func snapshot(f *ini.File, sources ...string) *Config {
	cfg := &Config{
		sources:  sources,
		sections: make(map[string]map[string]string),
	}
	for _, s := range f.Sections() {
		keys := s.Keys()
		m := make(map[string]string, len(keys))
		for _, k := range keys {
			m[k.Name()] = k.String()
		}
		cfg.sections[s.Name()] = m
	}
	return cfg
}

// Get returns the value of 'key' in 'section'.
//
// Keys are case-insensitive. If the section exists but lacks the key,
// the value from DefaultSection is used.
func (c *Config) Get(section, key string) (string, bool) {
	key = strings.ToLower(key)

	s, found := c.sections[section]
	if !found {
		return "", false
	}
	if v, found := s[key]; found {
		return v, true
	}
	v, found := c.sections[DefaultSection][key]
	return v, found
}

// Sources returns the paths of files that have been read, in order of precedence (lowest first).
func (c *Config) Sources() []string {
	return append([]string(nil), c.sources...)
}

// SigningKey returns the secret which this node shares with the server,
// which is found as 'node_sig_key' in section "node_server".
func (c *Config) SigningKey() ([]byte, error) {
	v, found := c.Get(SectionNodeServer, keySigningKey)
	if !found || v == "" {
		return nil, errors.Wrapf(ErrMissingKey, "%s in %v", SectionNodeServer, c.sources)
	}
	return []byte(v), nil
}

// sameFile is true if both paths resolve to the same file,
// or to the same location if that does not exist (yet).
func sameFile(a, b string) bool {
	if ia, err := os.Stat(a); err == nil {
		if ib, err := os.Stat(b); err == nil {
			return os.SameFile(ia, ib)
		}
	}
	return resolve(a) == resolve(b)
}

func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// currentUser is meant for log messages.
func currentUser() string {
	for _, env := range []string{"LOGNAME", "USER", "LNAME", "USERNAME"} {
		if name := os.Getenv(env); name != "" {
			return name
		}
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
