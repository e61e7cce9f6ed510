// Package registry collects the test groups compiled into a target and
// assembles the root test list for a run. A YAML run plan selects which
// groups participate, replacing per-build recompilation with configuration.
package registry

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/embedded-infra/ret/engine"
)

// Group is a named test list registered by a test package.
type Group struct {
	Tag   string
	Nodes []engine.Node
}

// Plan selects the groups of a run. An empty include list selects every
// registered group; excludes are applied afterwards.
type Plan struct {
	MinEngine string   `yaml:"min_engine"`
	Include   []string `yaml:"include"`
	Exclude   []string `yaml:"exclude"`
}

// Config contains registry configuration
type Config struct {
	Log      log.Logger
	PlanFile string // optional run plan; empty means run everything

	// EngineVersion is checked against the plan's min_engine constraint.
	EngineVersion string
}

// Registry manages registered test groups and the active run plan.
type Registry struct {
	config Config
	groups []Group
	index  map[string]int
	plan   *Plan
	mu     sync.RWMutex
}

// NewRegistry creates a new registry instance
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	r := &Registry{
		config: cfg,
		index:  make(map[string]int),
	}

	if cfg.PlanFile != "" {
		plan, err := LoadPlan(cfg.PlanFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load run plan: %w", err)
		}
		if err := plan.CheckEngineVersion(cfg.EngineVersion); err != nil {
			return nil, err
		}
		r.plan = plan
		cfg.Log.Debug("Run plan loaded", "path", cfg.PlanFile,
			"include", len(plan.Include), "exclude", len(plan.Exclude))
	}

	return r, nil
}

// ValidateTag checks that a tag is usable as a path token: it must be
// non-empty and must not contain the token delimiter, separators or
// whitespace that would corrupt path matching or line framing.
func ValidateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag must not be empty")
	}
	if strings.ContainsRune(tag, engine.TokenDelimiter) {
		return fmt.Errorf("tag %q must not contain %q", tag, engine.TokenDelimiter)
	}
	if strings.ContainsAny(tag, " \t\n\r,") {
		return fmt.Errorf("tag %q must not contain whitespace or separators", tag)
	}
	if tag == engine.RootTag {
		return fmt.Errorf("tag %q is reserved", tag)
	}
	return nil
}

// Register adds a group to the registry. Group tags must be unique.
func (r *Registry) Register(group Group) error {
	if err := ValidateTag(group.Tag); err != nil {
		return fmt.Errorf("invalid group tag: %w", err)
	}
	if len(group.Nodes) == 0 {
		return fmt.Errorf("group %q has no test nodes", group.Tag)
	}
	for _, node := range group.Nodes {
		if err := ValidateTag(node.Tag); err != nil {
			return fmt.Errorf("group %q: invalid node tag: %w", group.Tag, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[group.Tag]; exists {
		return fmt.Errorf("group %q is already registered", group.Tag)
	}
	r.index[group.Tag] = len(r.groups)
	r.groups = append(r.groups, group)
	r.config.Log.Debug("Test group registered", "tag", group.Tag, "nodes", len(group.Nodes))
	return nil
}

// MustRegister is Register for package-level test group wiring.
func (r *Registry) MustRegister(group Group) {
	if err := r.Register(group); err != nil {
		panic(err)
	}
}

// Groups returns all registered groups in registration order.
func (r *Registry) Groups() []Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groups
}

// Plan returns the active run plan, or nil when no plan file was given.
func (r *Registry) Plan() *Plan {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plan
}

// GetConfig returns the registry configuration
func (r *Registry) GetConfig() Config {
	return r.config
}

// Build assembles the root test list: registered groups filtered through
// the run plan, each group mounted as one branch node in registration
// order.
func (r *Registry) Build() (engine.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	selected, err := r.selectGroups()
	if err != nil {
		return engine.List{}, err
	}
	if len(selected) == 0 {
		return engine.List{}, fmt.Errorf("run plan selects no test groups")
	}

	nodes := make([]engine.Node, 0, len(selected))
	for _, g := range selected {
		nodes = append(nodes, engine.Node{
			Tag:  g.Tag,
			Func: engine.Branch(engine.NewList(g.Nodes...)),
		})
	}
	return engine.NewList(nodes...), nil
}

func (r *Registry) selectGroups() ([]Group, error) {
	if r.plan == nil {
		return r.groups, nil
	}

	// Plans may only name groups that exist: a typo silently running
	// nothing would defeat the point of a plan.
	for _, tag := range append(append([]string{}, r.plan.Include...), r.plan.Exclude...) {
		if _, ok := r.index[tag]; !ok {
			return nil, fmt.Errorf("run plan names unknown group %q", tag)
		}
	}

	included := make(map[string]bool)
	if len(r.plan.Include) == 0 {
		for tag := range r.index {
			included[tag] = true
		}
	} else {
		for _, tag := range r.plan.Include {
			included[tag] = true
		}
	}
	for _, tag := range r.plan.Exclude {
		delete(included, tag)
	}

	var selected []Group
	for _, g := range r.groups {
		if included[g.Tag] {
			selected = append(selected, g)
		}
	}
	return selected, nil
}

// LoadPlan loads a run plan from a YAML file.
func LoadPlan(path string) (*Plan, error) {
	log.Debug("Reading run plan file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}

	return &plan, nil
}

// CheckEngineVersion enforces the plan's min_engine constraint against
// the running engine version.
func (p *Plan) CheckEngineVersion(version string) error {
	if p.MinEngine == "" {
		return nil
	}
	if !semver.IsValid(p.MinEngine) {
		return fmt.Errorf("invalid min_engine %q in run plan", p.MinEngine)
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("invalid engine version %q", version)
	}
	if semver.Compare(version, p.MinEngine) < 0 {
		return fmt.Errorf("run plan requires engine %s or newer, running %s", p.MinEngine, version)
	}
	return nil
}
