package settings

import (
	"fmt"
	"io"
	"maps"

	"gopkg.in/yaml.v3"
)

// Defaults is the read-only collaborator that supplies last-resort values.
// The engine never mutates it.
type Defaults interface {
	// DefaultsFor returns the default values registered for namespace.
	DefaultsFor(namespace string) (map[string]any, bool)

	// Default returns the default value of one property of namespace.
	Default(namespace, property string) (any, bool)

	// Canonical maps a namespace or one of its aliases to the namespace
	// settings are stored under. Unknown namespaces are returned unchanged.
	Canonical(namespace string) string
}

// Source is one configuration section with its compiled-in defaults.
type Source struct {
	// Namespace is the canonical name settings of this section are stored under.
	Namespace string `yaml:"namespace" json:"namespace"`

	// Aliases are alternative names accepted in keys, e.g. a short "Mail"
	// for the canonical "app.config.Mail".
	Aliases []string `yaml:"aliases" json:"aliases,omitempty"`

	// Values maps property names to default values.
	Values map[string]any `yaml:"values" json:"values"`
}

// DefaultTable is the in-memory [Defaults] implementation. Sources are
// registered explicitly at startup.
type DefaultTable struct {
	values  map[string]map[string]any
	aliases map[string]string
}

// NewDefaultTable registers every source and returns the table.
func NewDefaultTable(sources ...Source) (*DefaultTable, error) {
	d := &DefaultTable{
		values:  make(map[string]map[string]any),
		aliases: make(map[string]string),
	}

	for _, src := range sources {
		if err := d.Register(src); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Register adds a source. Namespaces and aliases must be unique across the
// table.
func (d *DefaultTable) Register(src Source) error {
	if src.Namespace == "" {
		return fmt.Errorf("%w: empty namespace", ErrInvalidDefaults)
	}

	names := append([]string{src.Namespace}, src.Aliases...)
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: empty alias for %q", ErrInvalidDefaults, src.Namespace)
		}
		if owner, taken := d.aliases[name]; taken {
			return fmt.Errorf("%w: %q is already registered for %q", ErrInvalidDefaults, name, owner)
		}
	}

	values := make(map[string]any, len(src.Values))
	maps.Copy(values, src.Values)
	d.values[src.Namespace] = values

	for _, name := range names {
		d.aliases[name] = src.Namespace
	}

	return nil
}

// DefaultsFor implements [Defaults]. The returned map is a copy.
func (d *DefaultTable) DefaultsFor(namespace string) (map[string]any, bool) {
	values, ok := d.values[d.Canonical(namespace)]
	if !ok {
		return nil, false
	}

	return maps.Clone(values), true
}

// Default implements [Defaults]. It reads the table in place.
func (d *DefaultTable) Default(namespace, property string) (any, bool) {
	value, ok := d.values[d.Canonical(namespace)][property]
	return value, ok
}

// Canonical implements [Defaults].
func (d *DefaultTable) Canonical(namespace string) string {
	if canonical, ok := d.aliases[namespace]; ok {
		return canonical
	}
	return namespace
}

// defaultsDocument is the YAML layout read by [LoadDefaultsYAML]:
//
//	namespaces:
//	  - namespace: app.config.Site
//	    aliases: [Site]
//	    values:
//	      siteName: Settings Test
//	      maintenance: false
type defaultsDocument struct {
	Namespaces []Source `yaml:"namespaces"`
}

// LoadDefaultsYAML builds a [DefaultTable] from a YAML document.
func LoadDefaultsYAML(r io.Reader) (*DefaultTable, error) {
	var doc defaultsDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("error decoding defaults yaml: %w", err)
	}

	return NewDefaultTable(doc.Namespaces...)
}
