// internal/form/messages.go
//
// Trampô: forms subsystem, YAML message catalog.
//
// Context
//   Validation messages are product copy, not code.  They live in YAML so
//   the wording can change without a rebuild of the rules.  The default
//   catalog is embedded (messages.yaml); operators may layer override files
//   on top by pointing forms.messages_dir at a directory of “*.yaml” files.
//
// Workflow
//   •  Catalog mirrors the YAML: defaults (per tag) and forms → field → tag.
//   •  LoadCatalog parses one file and checks its structure.
//   •  RegisterMessages walks override directories in precedence order and
//      merges each catalog over the embedded defaults.
//   •  lookupMessage walks a schema lineage, then the per-tag defaults.
//
//------------------------------------------------------------------------------

package form

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultCatalog []byte

// fallbackMessage is used when neither the form nor the defaults know a tag.
const fallbackMessage = "Valor inválido."

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// Catalog is one parsed message file.
//
// Defaults maps a validator tag to a generic message; “{param}” is replaced
// by the tag parameter (for example the 2 in “min=2”).  Forms maps schema ID
// → field → tag → message.
type Catalog struct {
	Defaults map[string]string                       `yaml:"defaults"`
	Forms    map[string]map[string]map[string]string `yaml:"forms"`
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

var (
	catalogMu sync.RWMutex
	catalog   = mustParseCatalog(defaultCatalog)
)

func mustParseCatalog(raw []byte) *Catalog {
	c, err := parseCatalog(raw, "embedded messages.yaml")
	if err != nil {
		panic(err)
	}
	return c
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// LoadCatalog parses one YAML file and validates its structure.  It never
// touches the active catalog.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message file %s: %w", path, err)
	}
	return parseCatalog(raw, path)
}

// RegisterMessages merges every “*.yaml” under dirs into the active catalog.
// Later directories win over earlier ones, and all of them win over the
// embedded defaults.  Missing directories are skipped.
func RegisterMessages(dirs []string) error {
	if len(dirs) == 0 {
		return errors.New("RegisterMessages: no directories provided")
	}

	var loaded []*Catalog
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
				return nil
			}
			c, err := LoadCatalog(path)
			if err != nil {
				return err
			}
			loaded = append(loaded, c)
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	catalogMu.Lock()
	defer catalogMu.Unlock()
	merged := mustParseCatalog(defaultCatalog)
	for _, c := range loaded {
		merged.merge(c)
	}
	catalog = merged
	return nil
}

// Message resolves the text for field/tag under schema id, applying the
// same fallbacks as validation.  Handlers use it for form-level notices.
func Message(id, field, tag string) string {
	return lookupMessage([]string{id}, field, tag, "")
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func parseCatalog(raw []byte, path string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}
	for tag, msg := range c.Defaults {
		if strings.TrimSpace(msg) == "" {
			return nil, fmt.Errorf("message file %s: empty default for tag '%s'", path, tag)
		}
	}
	for id, fields := range c.Forms {
		for field, tags := range fields {
			for tag, msg := range tags {
				if strings.TrimSpace(msg) == "" {
					return nil, fmt.Errorf("message file %s: empty message %s.%s.%s", path, id, field, tag)
				}
			}
		}
	}
	return &c, nil
}

// merge copies every message of o over c.
func (c *Catalog) merge(o *Catalog) {
	if c.Defaults == nil {
		c.Defaults = map[string]string{}
	}
	for tag, msg := range o.Defaults {
		c.Defaults[tag] = msg
	}
	if c.Forms == nil {
		c.Forms = map[string]map[string]map[string]string{}
	}
	for id, fields := range o.Forms {
		if c.Forms[id] == nil {
			c.Forms[id] = map[string]map[string]string{}
		}
		for field, tags := range fields {
			if c.Forms[id][field] == nil {
				c.Forms[id][field] = map[string]string{}
			}
			for tag, msg := range tags {
				c.Forms[id][field][tag] = msg
			}
		}
	}
}

func lookupMessage(lineage []string, field, tag, param string) string {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	for _, id := range lineage {
		if msg, ok := catalog.Forms[id][field][tag]; ok {
			return msg
		}
	}
	if msg, ok := catalog.Defaults[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", param)
	}
	return fallbackMessage
}
