// Package embedded provides access to embedded guidance documents and
// classification rule data files.
package embedded

import _ "embed"

// IntentRulesData contains the embedded YAML rule catalog used by the intent
// classifier. Rule order in the file is evaluation order.
//
//go:embed intent_rules.yaml
var IntentRulesData []byte

// SpecTemplateData contains the fallback test-specification template returned
// when the remote service cannot generate one.
//
//go:embed spec_template.md
var SpecTemplateData []byte

// GreetingDocData contains the greeting guidance document.
//
//go:embed guidance/greeting.md
var GreetingDocData []byte

// AuthenticationDocData contains the authentication testing guidance document.
//
//go:embed guidance/authentication.md
var AuthenticationDocData []byte

// APITestingDocData contains the API testing guidance document.
//
//go:embed guidance/api_testing.md
var APITestingDocData []byte

// DebuggingDocData contains the debugging guidance document.
//
//go:embed guidance/debugging.md
var DebuggingDocData []byte

// PerformanceDocData contains the performance testing guidance document.
//
//go:embed guidance/performance.md
var PerformanceDocData []byte

// SecurityDocData contains the security testing guidance document.
//
//go:embed guidance/security.md
var SecurityDocData []byte

// TestGenerationDocData contains the test generation guidance document.
//
//go:embed guidance/test_generation.md
var TestGenerationDocData []byte

// ResultAnalysisDocData contains the generic test-result analysis document.
//
//go:embed guidance/result_analysis.md
var ResultAnalysisDocData []byte

// GeneralDocData contains the general capability overview document.
//
//go:embed guidance/general.md
var GeneralDocData []byte
