package authz

import (
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Mode is the global enforcement mode.
type Mode string

const (
	ModeDisabled Mode = "disabled"
	ModeShadow   Mode = "shadow"
	ModeEnforce  Mode = "enforce"
)

// Flags are the runtime switches kept in the flag file:
//
//	mode: enforce     # enforce | shadow | disabled
//	readonly: true    # refuse create, update and delete for every user type
type Flags struct {
	Mode     Mode
	ReadOnly bool
}

type FlagProvider interface {
	Flags() Flags
}

// StaticFlagProvider always reports the same mode with writes allowed.
type StaticFlagProvider Mode

func (s StaticFlagProvider) Flags() Flags {
	return Flags{Mode: sanitizeMode(Mode(s))}
}

// FileFlagProvider re-reads its YAML file whenever the modification time
// changes, so switches can be flipped without a restart. A missing or broken
// file keeps the last good flags.
type FileFlagProvider struct {
	path    string
	mu      sync.Mutex
	modTime time.Time
	flags   Flags
}

func NewFileFlagProvider(path string, fallback Mode) *FileFlagProvider {
	return &FileFlagProvider{
		path:  path,
		flags: Flags{Mode: sanitizeMode(fallback)},
	}
}

func (p *FileFlagProvider) Flags() Flags {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.path == "" {
		return p.flags
	}
	info, err := os.Stat(p.path)
	if err != nil || info.ModTime().Equal(p.modTime) {
		return p.flags
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return p.flags
	}
	var raw struct {
		Mode     string `yaml:"mode"`
		ReadOnly bool   `yaml:"readonly"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return p.flags
	}
	p.modTime = info.ModTime()
	if strings.TrimSpace(raw.Mode) != "" {
		p.flags.Mode = sanitizeMode(Mode(raw.Mode))
	}
	p.flags.ReadOnly = raw.ReadOnly
	return p.flags
}

func sanitizeMode(mode Mode) Mode {
	switch strings.ToLower(strings.TrimSpace(string(mode))) {
	case string(ModeDisabled):
		return ModeDisabled
	case string(ModeShadow):
		return ModeShadow
	default:
		return ModeEnforce
	}
}
