package resttypes

// IntentCategory is the closed set of categories the keyword classifier can
// assign to a user utterance. Exactly one category is assigned per input;
// CategoryGeneral is the default when no rule matches.
type IntentCategory string

const (
	CategoryGreeting       IntentCategory = "greeting"
	CategoryAuthentication IntentCategory = "authentication"
	CategoryAPITesting     IntentCategory = "api_testing"
	CategoryDebugging      IntentCategory = "debugging"
	CategoryPerformance    IntentCategory = "performance"
	CategorySecurity       IntentCategory = "security"
	CategoryTestGeneration IntentCategory = "test_generation"
	CategoryResultAnalysis IntentCategory = "result_analysis"
	CategoryGeneral        IntentCategory = "general"
)

// AllCategories lists every intent category. The guidance catalog must carry
// one document per entry; tests iterate this list to verify totality.
var AllCategories = []IntentCategory{
	CategoryGreeting,
	CategoryAuthentication,
	CategoryAPITesting,
	CategoryDebugging,
	CategoryPerformance,
	CategorySecurity,
	CategoryTestGeneration,
	CategoryResultAnalysis,
	CategoryGeneral,
}

// IsValid reports whether c is one of the known categories.
func (c IntentCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MatchRule maps a keyword set to an intent category. Rules are evaluated in
// declaration order and the first rule whose keyword set intersects the input
// wins, so the order of the rule list is a behavioral contract, not a detail.
type MatchRule struct {
	Category IntentCategory `yaml:"category"`
	Keywords []string       `yaml:"keywords"`
	// RequireAll, when set, lists keywords that must ALL be present for the
	// rule to match, in addition to any keyword from Keywords.
	RequireAll []string `yaml:"require_all,omitempty"`
}
