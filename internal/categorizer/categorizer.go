// Package categorizer assigns categories to ingested transactions by keyword
// matching against a user-maintained rule file. Matching is deterministic and
// offline; a miss leaves the transaction on the unclassified sentinel.
package categorizer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"contaflow/extrato-core/internal/logging"
	"contaflow/extrato-core/internal/textutils"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryRule maps a category name to the keywords that select it.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// ruleFile is the on-disk YAML layout.
type ruleFile struct {
	Categories []CategoryRule `yaml:"categories"`
}

// KeywordCategorizer matches transaction descriptions against category rules
// in declaration order, first match wins.
type KeywordCategorizer struct {
	rules []CategoryRule
}

// New creates a categorizer from an in-memory rule set.
func New(rules []CategoryRule) *KeywordCategorizer {
	return &KeywordCategorizer{rules: rules}
}

// LoadRules reads category rules from a YAML file. A missing file is not an
// error: it yields an empty rule set and every transaction stays unclassified.
func LoadRules(path string) ([]CategoryRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("No category rules file found",
				logging.Field{Key: logging.FieldFile, Value: path})
			return nil, nil
		}
		return nil, fmt.Errorf("error reading category rules: %w", err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing category rules: %w", err)
	}
	return file.Categories, nil
}

// Categorize returns the category for a description, matching keywords
// case-insensitively and accent-insensitively as substrings.
func (c *KeywordCategorizer) Categorize(description string) (string, bool) {
	if c == nil || len(c.rules) == 0 {
		return "", false
	}

	normalized := strings.ToUpper(textutils.StripAccents(description))
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(normalized, strings.ToUpper(textutils.StripAccents(keyword))) {
				log.Debug("Transaction categorized by keyword",
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: "category", Value: rule.Name})
				return rule.Name, true
			}
		}
	}
	return "", false
}
