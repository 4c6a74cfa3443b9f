package categorizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile is the YAML layout for user-supplied rule tables:
//
//	rules:
//	  - category: Продукты
//	    keywords: [пятёрочка, магнит]
type RulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads an ordered rule table from a YAML file. A missing file is
// not an error: the built-in tables stay in effect and an empty slice comes
// back.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Rule{}, nil
		}
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rules file: %w", err)
	}
	return file.Rules, nil
}

// SaveRules writes a rule table back to a YAML file, preserving order.
func SaveRules(path string, rules []Rule) error {
	data, err := yaml.Marshal(RulesFile{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}
	return nil
}

// Overlay prepends user rules to a built-in table. User rules win because
// they are evaluated first.
func Overlay(user, builtin []Rule) []Rule {
	if len(user) == 0 {
		return builtin
	}
	merged := make([]Rule, 0, len(user)+len(builtin))
	merged = append(merged, user...)
	merged = append(merged, builtin...)
	return merged
}
