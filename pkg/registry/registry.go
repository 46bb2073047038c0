// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

func LoadRegistry(path string) (*KeywordRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg KeywordRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

func SaveRegistry(path string, reg *KeywordRegistry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the invariants the scorer relies on: every tier named,
// non-empty keyword lists, lowercase keywords (matching is done against
// lowercased product names).
func (r *KeywordRegistry) Validate() error {
	if r.Version == "" {
		return fmt.Errorf("registry version is required")
	}
	if len(r.Tiers) == 0 {
		return fmt.Errorf("registry must define at least one tier")
	}
	seen := map[string]bool{}
	for _, t := range r.Tiers {
		if t.Name == "" {
			return fmt.Errorf("tier with empty name")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate tier %q", t.Name)
		}
		seen[t.Name] = true
		if len(t.Keywords) == 0 {
			return fmt.Errorf("tier %q has no keywords", t.Name)
		}
		for _, kw := range t.Keywords {
			if kw != strings.ToLower(kw) {
				return fmt.Errorf("tier %q keyword %q must be lowercase", t.Name, kw)
			}
		}
	}
	for _, kw := range r.GamingKeywords {
		if kw != strings.ToLower(kw) {
			return fmt.Errorf("gaming keyword %q must be lowercase", kw)
		}
	}
	return nil
}

// TierKeywords returns the keyword list for a tier name, or nil when the
// tier is not defined.
func (r *KeywordRegistry) TierKeywords(name string) []string {
	for _, t := range r.Tiers {
		if t.Name == name {
			return t.Keywords
		}
	}
	return nil
}
