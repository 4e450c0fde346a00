package services

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"restaceratops/internal/data/embedded"
	"restaceratops/pkg/resttypes"
)

// IntentService classifies free-text user input into one of the fixed intent
// categories. Classification is case-insensitive substring matching over an
// ordered rule list loaded from the embedded YAML catalog; the first matching
// rule wins and rule order is a hard behavioral contract. Classification is a
// pure function of the input once the service is initialized.
type IntentService struct {
	initialized bool
	rules       []resttypes.MatchRule
}

// intentRulesFile mirrors the embedded YAML rule catalog structure.
type intentRulesFile struct {
	Rules []resttypes.MatchRule `yaml:"rules"`
}

// NewIntentService creates a new IntentService instance.
func NewIntentService() *IntentService {
	return &IntentService{
		initialized: false,
	}
}

// Name returns the service name "intent" for registration.
func (s *IntentService) Name() string {
	return "intent"
}

// Initialize loads and validates the embedded rule catalog.
func (s *IntentService) Initialize() error {
	var file intentRulesFile
	if err := yaml.Unmarshal(embedded.IntentRulesData, &file); err != nil {
		return fmt.Errorf("failed to parse intent rules: %w", err)
	}

	if len(file.Rules) == 0 {
		return fmt.Errorf("intent rule catalog is empty")
	}

	for i, rule := range file.Rules {
		if !rule.Category.IsValid() {
			return fmt.Errorf("intent rule %d has unknown category %q", i, rule.Category)
		}
		if len(rule.Keywords) == 0 && len(rule.RequireAll) == 0 {
			return fmt.Errorf("intent rule %d for %q has no keywords", i, rule.Category)
		}
	}

	s.rules = file.Rules
	s.initialized = true
	return nil
}

// Rules returns the ordered rule list. The returned slice is shared and must
// not be mutated; it is exposed so tests can assert the evaluation order.
func (s *IntentService) Rules() []resttypes.MatchRule {
	return s.rules
}

// Classify assigns exactly one intent category to the input. Rules are
// evaluated in catalog order and the first match wins; if no rule matches,
// the category is general.
func (s *IntentService) Classify(input string) resttypes.IntentCategory {
	if !s.initialized {
		return resttypes.CategoryGeneral
	}

	lowered := strings.ToLower(strings.TrimSpace(input))

	for _, rule := range s.rules {
		if ruleMatches(rule, lowered) {
			return rule.Category
		}
	}

	return resttypes.CategoryGeneral
}

// ruleMatches reports whether a single rule matches the lowercased input.
// A rule with RequireAll entries matches only when all of them are present;
// a rule with Keywords matches when any one of them is present. Rules
// carrying both lists require both conditions.
func ruleMatches(rule resttypes.MatchRule, lowered string) bool {
	for _, keyword := range rule.RequireAll {
		if !strings.Contains(lowered, strings.ToLower(keyword)) {
			return false
		}
	}

	if len(rule.Keywords) == 0 {
		return len(rule.RequireAll) > 0
	}

	for _, keyword := range rule.Keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}

// Interface compliance check
var _ resttypes.Service = (*IntentService)(nil)
