package settings

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-settings/models"
)

// StaticOverrides is the YAML layout of a static overrides file:
//
//	global:
//	  Site:
//	    siteName: Pinned
//	contexts:
//	  tenant:acme:
//	    Site:
//	      siteName: ACME
type StaticOverrides struct {
	Global   map[string]map[string]any            `yaml:"global"`
	Contexts map[string]map[string]map[string]any `yaml:"contexts"`
}

// StaticHandler is a read-only handler serving overrides fixed at startup,
// e.g. values an operator pins for every instance. Set, Forget and Flush
// return [ErrNotSupported].
type StaticHandler struct {
	ReadOnly
	values *ArrayHandler
}

// NewStaticHandler loads overrides into a read-only handler. Namespaces are
// canonicalised through defaults when it is not nil.
func NewStaticHandler(overrides StaticOverrides, defaults Defaults) (*StaticHandler, error) {
	h := &StaticHandler{values: NewArrayHandler()}

	canonical := func(namespace string) string {
		if defaults == nil {
			return namespace
		}
		return defaults.Canonical(namespace)
	}

	load := func(scope models.Scope, namespaces map[string]map[string]any) error {
		for namespace, properties := range namespaces {
			for property, value := range properties {
				err := h.values.Set(context.Background(), canonical(namespace), property, value, scope)
				if err != nil {
					return fmt.Errorf("static override %s.%s: %w", namespace, property, err)
				}
			}
		}
		return nil
	}

	if err := load(models.GlobalScope, overrides.Global); err != nil {
		return nil, err
	}
	for name, namespaces := range overrides.Contexts {
		if err := load(models.InScope(name), namespaces); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// LoadStaticHandlerYAML decodes a [StaticOverrides] document and builds the
// handler.
func LoadStaticHandlerYAML(r io.Reader, defaults Defaults) (*StaticHandler, error) {
	var overrides StaticOverrides
	if err := yaml.NewDecoder(r).Decode(&overrides); err != nil && err != io.EOF {
		return nil, fmt.Errorf("error decoding static overrides yaml: %w", err)
	}

	return NewStaticHandler(overrides, defaults)
}

// Has implements [Handler].
func (h *StaticHandler) Has(ctx context.Context, namespace, property string, scope models.Scope) (bool, error) {
	return h.values.Has(ctx, namespace, property, scope)
}

// Get implements [Handler].
func (h *StaticHandler) Get(ctx context.Context, namespace, property string, scope models.Scope) (any, error) {
	return h.values.Get(ctx, namespace, property, scope)
}
