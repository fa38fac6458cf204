package rules

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// LoadCatalog reads a YAML catalog, letting deployments swap the built-in
// rule set without rebuilding. The file uses the same field names as the
// catalog types (see the yaml struct tags).
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog unmarshals and validates a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	applyDefaults(&catalog)
	if err := catalog.validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func applyDefaults(c *Catalog) {
	for i := range c.Checklist {
		if c.Checklist[i].Category == "" {
			c.Checklist[i].Category = "checklist"
		}
	}
	for i := range c.TextExpectations {
		if c.TextExpectations[i].Category == "" {
			c.TextExpectations[i].Category = "validation"
		}
	}
	for i := range c.ImageExpectations {
		if c.ImageExpectations[i].Category == "" {
			c.ImageExpectations[i].Category = "visual"
		}
	}
}

// validate enforces the catalog invariants: ids present and unique across
// all families, checklist rules with at least one keyword, and expectations
// with at least one non-empty keyword set.
func (c *Catalog) validate() error {
	seen := make(map[string]struct{})
	claim := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%s with empty id", kind)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate rule id %q", id)
		}
		seen[id] = struct{}{}
		return nil
	}

	for _, rule := range c.Checklist {
		if err := claim("checklist rule", rule.ID); err != nil {
			return err
		}
		if len(rule.KeywordsAll) == 0 {
			return fmt.Errorf("checklist rule %q has no keywords", rule.ID)
		}
	}
	for _, exp := range c.TextExpectations {
		if err := claim("text expectation", exp.ID); err != nil {
			return err
		}
		if len(exp.KeywordsAll) == 0 && len(exp.KeywordsAny) == 0 {
			return fmt.Errorf("text expectation %q has no keyword sets", exp.ID)
		}
	}
	for _, bundle := range []FieldBundle{c.RequestFields, c.ResponseFields} {
		if bundle.ID == "" {
			continue
		}
		if err := claim("field bundle", bundle.ID); err != nil {
			return err
		}
		if len(bundle.Fields) == 0 {
			return fmt.Errorf("field bundle %q has no fields", bundle.ID)
		}
	}
	for _, exp := range c.ImageExpectations {
		if err := claim("image expectation", exp.ID); err != nil {
			return err
		}
		if len(exp.KeywordsAll) == 0 && len(exp.KeywordsAny) == 0 {
			return fmt.Errorf("image expectation %q has no keyword sets", exp.ID)
		}
	}
	return nil
}
