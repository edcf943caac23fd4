// Package registry provides the static model-class registry the auditor walks.
// Model libraries written in Go link against this package and self-register
// their modules and concrete classes at init time; libraries in other
// languages export the same information as a YAML manifest (see manifest.go).
// Either way the audit engine only ever sees an immutable Snapshot.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/agentstation/modelaudit/pkg/errors"
)

// Class is one concrete model class and the module that defines it.
type Class struct {
	Name   string `yaml:"name" json:"name"`
	Module string `yaml:"module" json:"module"`
}

// Module is one model-bearing module and the ordered classes it defines.
// Order is registration order; downstream comparisons are membership checks,
// but keeping the order makes reports stable.
type Module struct {
	Name    string  `yaml:"name" json:"name"`
	Classes []Class `yaml:"classes" json:"classes"`
}

// Registry accumulates module and class registrations.
type Registry struct {
	mu      sync.Mutex
	modules map[string]*Module
	owners  map[string]string // class name -> defining module
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		modules: make(map[string]*Module),
		owners:  make(map[string]string),
	}
}

// Register records classes as defined by module. A class belongs to the
// module that registers it first; later registrations of the same name from
// other modules are re-exports and are dropped, so no class is ever
// attributed to two modules.
func (r *Registry) Register(module string, classes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules[module]
	if !ok {
		m = &Module{Name: module}
		r.modules[module] = m
	}
	for _, name := range classes {
		if owner, taken := r.owners[name]; taken {
			if owner != module {
				continue // re-export, attribution stays with the definer
			}
			continue // duplicate registration from the same module
		}
		r.owners[name] = module
		m.Classes = append(m.Classes, Class{Name: name, Module: module})
	}
}

// Owner reports the defining module of a class, if registered.
func (r *Registry) Owner(class string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[class]
	return owner, ok
}

// Snapshot returns an immutable, name-sorted view of the registry.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	modules := make([]Module, 0, len(r.modules))
	for _, m := range r.modules {
		classes := make([]Class, len(m.Classes))
		copy(classes, m.Classes)
		modules = append(modules, Module{Name: m.Name, Classes: classes})
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return Snapshot{modules: modules}
}

// Snapshot is a read-only view of a registry, sorted by module name.
// The zero value is an empty snapshot.
type Snapshot struct {
	modules []Module
}

// Modules returns all modules in the snapshot.
func (s Snapshot) Modules() []Module {
	return s.modules
}

// Module looks up a module by name.
func (s Snapshot) Module(name string) (Module, bool) {
	for _, m := range s.modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// ModelModules returns the modules whose name begins with prefix, excluding
// the block-listed utility modules (shared output types, auto-dispatch
// modules, low-level helpers).
func (s Snapshot) ModelModules(prefix string, blocklist []string) []Module {
	blocked := make(map[string]bool, len(blocklist))
	for _, name := range blocklist {
		blocked[name] = true
	}

	var modules []Module
	for _, m := range s.modules {
		if strings.HasPrefix(m.Name, prefix) && !blocked[m.Name] {
			modules = append(modules, m)
		}
	}
	return modules
}

// ModelClasses returns the concrete model classes of a module: every
// registered class whose name contains none of the abstract-base marker
// substrings.
func (m Module) ModelClasses(markers []string) []Class {
	var classes []Class
	for _, c := range m.Classes {
		if containsAny(c.Name, markers) {
			continue
		}
		classes = append(classes, c)
	}
	return classes
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// defaultRegistry backs the package-level registration API used by model
// libraries that self-register in init().
var defaultRegistry = New()

// Register records classes on the default registry.
func Register(module string, classes ...string) {
	defaultRegistry.Register(module, classes...)
}

// Default returns the default registry.
func Default() *Registry {
	return defaultRegistry
}

// Validate checks a snapshot for structural problems before an audit.
func (s Snapshot) Validate() error {
	if len(s.modules) == 0 {
		return &errors.ValidationError{
			Field:   "registry",
			Message: "no modules registered",
		}
	}
	for _, m := range s.modules {
		if m.Name == "" {
			return &errors.ValidationError{
				Field:   "module",
				Message: "module with empty name",
			}
		}
	}
	return nil
}
