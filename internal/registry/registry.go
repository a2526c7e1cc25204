// Package registry provides the catalog of pipeline node kinds.
// It maps each kind to its default configuration, its recognized option keys
// and its port layout, so callers can initialize nodes and derive their handles
// without switching on the kind themselves.
package registry

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapflow/internal/template"
	"github.com/leapstack-labs/leapflow/pkg/core"
)

// FieldSpec describes one recognized configuration key of a node kind.
type FieldSpec struct {
	Key     string   `json:"key"`
	Default any      `json:"default"`
	Options []string `json:"options,omitempty"` // allowed values, empty for free-form
}

// KindSpec describes a node kind: its defaults and its nominal port counts.
type KindSpec struct {
	Kind        core.NodeKind `json:"type"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
	Fields      []FieldSpec   `json:"fields"`
	InputPorts  int           `json:"input_ports"`
	OutputPorts int           `json:"output_ports"`
	// DynamicInputs marks kinds whose inputs are derived from configuration
	// (Text nodes). InputPorts is then the count used when nothing is derived.
	DynamicInputs bool `json:"dynamic_inputs,omitempty"`
}

// Defaults returns a fresh copy of the kind's default configuration.
func (s *KindSpec) Defaults() core.Config {
	cfg := make(core.Config, len(s.Fields))
	for _, f := range s.Fields {
		cfg[f.Key] = f.Default
	}
	return cfg
}

// clone copies s so callers cannot change the registered spec. Default
// values are scalars and are shared.
func (s *KindSpec) clone() *KindSpec {
	out := *s
	out.Fields = slices.Clone(s.Fields)
	for i := range out.Fields {
		out.Fields[i].Options = slices.Clone(out.Fields[i].Options)
	}
	return &out
}

// field returns the FieldSpec for key, if the kind recognizes it.
func (s *KindSpec) field(key string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Registry maps node kinds to their specs. It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// specs maps the wire kind name to its spec: "filter" → *KindSpec
	specs map[core.NodeKind]*KindSpec

	// order keeps kinds in registration order for stable listings
	order []core.NodeKind
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		specs: make(map[core.NodeKind]*KindSpec),
	}
}

// NewDefault creates a registry with all built-in node kinds registered.
func NewDefault() *Registry {
	r := New()
	for _, spec := range builtinKinds() {
		r.Register(spec)
	}
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared registry of built-in kinds.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewDefault()
	})
	return defaultReg
}

// Register adds or replaces a kind spec. The registry keeps its own copy.
func (r *Registry) Register(spec *KindSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[spec.Kind]; !exists {
		r.order = append(r.order, spec.Kind)
	}
	r.specs[spec.Kind] = spec.clone()
}

// Lookup returns a copy of the spec for kind, or an UnknownNodeKindError.
func (r *Registry) Lookup(kind core.NodeKind) (*KindSpec, error) {
	spec, err := r.spec(kind)
	if err != nil {
		return nil, err
	}
	return spec.clone(), nil
}

// spec returns the registered spec itself. Callers must not modify it.
func (r *Registry) spec(kind core.NodeKind) (*KindSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[kind]
	if !ok {
		return nil, &core.UnknownNodeKindError{Kind: string(kind)}
	}
	return spec, nil
}

// Has returns true if kind is registered.
func (r *Registry) Has(kind core.NodeKind) bool {
	_, err := r.spec(kind)
	return err == nil
}

// Kinds returns copies of all registered specs in registration order.
func (r *Registry) Kinds() []*KindSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]*KindSpec, 0, len(r.order))
	for _, kind := range r.order {
		specs = append(specs, r.specs[kind].clone())
	}
	return specs
}

// Count returns the number of registered kinds.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.specs)
}

// Defaults returns a fresh copy of the default configuration of kind.
func (r *Registry) Defaults(kind core.NodeKind) (core.Config, error) {
	spec, err := r.spec(kind)
	if err != nil {
		return nil, err
	}
	return spec.Defaults(), nil
}

// Ports returns the input and output handle identifiers of a node of the given kind
// and configuration. Fixed ports are named "input-<i>" and "output-<i>"; Text inputs
// are the variables found in the "content" option.
func (r *Registry) Ports(kind core.NodeKind, cfg core.Config) (inputs, outputs []string, err error) {
	spec, err := r.spec(kind)
	if err != nil {
		return nil, nil, err
	}

	if spec.DynamicInputs {
		inputs = template.InputPorts(cfg.String("content"))
	} else {
		inputs = indexedHandles("input", spec.InputPorts)
	}
	outputs = indexedHandles("output", spec.OutputPorts)
	return inputs, outputs, nil
}

// UnrecognizedKeys returns the sorted config keys the kind does not define.
// Unknown keys are accepted; this list is informational only.
func (r *Registry) UnrecognizedKeys(kind core.NodeKind, cfg core.Config) []string {
	spec, err := r.spec(kind)
	if err != nil {
		return nil
	}

	var unknown []string
	for key := range cfg {
		if _, ok := spec.field(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// InvalidOptions returns a sorted description of every string option whose value
// is not among the field's allowed values. Like UnrecognizedKeys it never rejects.
func (r *Registry) InvalidOptions(kind core.NodeKind, cfg core.Config) []string {
	spec, err := r.spec(kind)
	if err != nil {
		return nil
	}

	var invalid []string
	for _, f := range spec.Fields {
		if len(f.Options) == 0 {
			continue
		}
		v, ok := cfg[f.Key].(string)
		if !ok || slices.Contains(f.Options, v) {
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s=%q (expected one of %s)", f.Key, v, strings.Join(f.Options, ", ")))
	}
	sort.Strings(invalid)
	return invalid
}

func indexedHandles(prefix string, n int) []string {
	if n == 0 {
		return nil
	}
	handles := make([]string, n)
	for i := range handles {
		handles[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return handles
}
