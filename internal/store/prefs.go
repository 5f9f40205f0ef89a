package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Languages the site supports.
const (
	LangFrench  = "fr"
	LangEnglish = "en"
)

// prefsFile is the durable preference set. It intentionally holds only the
// two entries the site keeps client-side: UI language and whether the admin
// sidebar is collapsed.
type prefsFile struct {
	Language         string `json:"language"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}

// Prefs is the persisted preference store. Language changes are observable;
// every write is flushed to the state file immediately.
type Prefs struct {
	fs       afero.Fs
	path     string
	language *Value[string]
	sidebar  *Value[bool]
}

// DefaultPrefsPath returns the per-user state file location.
func DefaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "mssd", "state.json")
}

// NewPrefs loads preferences from path, falling back to defaults when the
// file does not exist yet.
func NewPrefs(fs afero.Fs, path string) (*Prefs, error) {
	p := &Prefs{
		fs:       fs,
		path:     path,
		language: NewValue(LangFrench),
		sidebar:  NewValue(false),
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	var stored prefsFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if stored.Language == LangFrench || stored.Language == LangEnglish {
		p.language = NewValue(stored.Language)
	}
	p.sidebar = NewValue(stored.SidebarCollapsed)
	return p, nil
}

// Language returns the current UI language.
func (p *Prefs) Language() string { return p.language.Get() }

// SetLanguage stores and persists the UI language; unknown codes are ignored.
func (p *Prefs) SetLanguage(lang string) error {
	if lang != LangFrench && lang != LangEnglish {
		return fmt.Errorf("unsupported language %q", lang)
	}
	p.language.Set(lang)
	return p.save()
}

// ToggleLanguage flips between French and English.
func (p *Prefs) ToggleLanguage() error {
	if p.Language() == LangFrench {
		return p.SetLanguage(LangEnglish)
	}
	return p.SetLanguage(LangFrench)
}

// SubscribeLanguage registers for language changes.
func (p *Prefs) SubscribeLanguage(fn func(string)) func() {
	return p.language.Subscribe(fn)
}

// SidebarCollapsed returns the admin sidebar state.
func (p *Prefs) SidebarCollapsed() bool { return p.sidebar.Get() }

// SetSidebarCollapsed stores and persists the admin sidebar state.
func (p *Prefs) SetSidebarCollapsed(collapsed bool) error {
	p.sidebar.Set(collapsed)
	return p.save()
}

func (p *Prefs) save() error {
	if err := p.fs.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(prefsFile{
		Language:         p.language.Get(),
		SidebarCollapsed: p.sidebar.Get(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := afero.WriteFile(p.fs, p.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
