// Package categorizer maps free-text transaction descriptions to the closed
// set of application categories using ordered keyword rule tables.
package categorizer

import (
	"strings"
	"sync"

	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
)

// Rule maps a keyword set to a category. Rules are evaluated top to bottom
// and the first match wins, so an earlier broad rule shadows later, more
// specific ones. Each bank carries its own ordered table; the ordering is
// deliberate per-bank tuning, not an accident.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Engine is a deterministic keyword classifier over one ordered rule table.
type Engine struct {
	rules  []Rule
	logger logging.Logger
}

var (
	userRulesMu sync.RWMutex
	userRules   []Rule
)

// SetUserRules installs a user-supplied rule table. Every engine built after
// this call evaluates these rules ahead of its built-in table.
func SetUserRules(rules []Rule) {
	userRulesMu.Lock()
	defer userRulesMu.Unlock()
	userRules = rules
}

// NewEngine builds an engine over the given ordered rule table, with any
// user-supplied rules prepended.
func NewEngine(rules []Rule, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	userRulesMu.RLock()
	defer userRulesMu.RUnlock()
	return &Engine{rules: Overlay(userRules, rules), logger: logger}
}

// Infer returns the category for a description. Matching is case-insensitive
// substring search; no match falls back to "Другое" for expenses and "Доход"
// for income. The function is pure and deterministic.
func (e *Engine) Infer(description string, isExpense bool) string {
	lower := strings.ToLower(description)

	for _, rule := range e.rules {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(keyword)) {
				e.logger.WithFields(
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: "category", Value: rule.Category},
				).Debug("Description categorized by keyword")
				return rule.Category
			}
		}
	}

	if isExpense {
		return models.CategoryOther
	}
	return models.CategoryIncome
}
