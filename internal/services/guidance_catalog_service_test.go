package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaceratops/pkg/resttypes"
)

func newTestCatalog(t *testing.T) *GuidanceCatalogService {
	t.Helper()
	s := NewGuidanceCatalogService()
	require.NoError(t, s.Initialize())
	return s
}

func TestGuidanceCatalogCompleteness(t *testing.T) {
	s := newTestCatalog(t)

	// Total function over the closed enumeration: every category has a
	// non-empty document.
	for _, category := range resttypes.AllCategories {
		doc := s.Lookup(category)
		assert.NotEmpty(t, doc, "missing document for %q", category)
	}
}

func TestGuidanceCatalogLookupVerbatim(t *testing.T) {
	s := newTestCatalog(t)

	// Lookup performs no interpolation: two calls return identical text.
	first := s.Lookup(resttypes.CategoryAuthentication)
	second := s.Lookup(resttypes.CategoryAuthentication)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "Authentication Testing Guidance")
}

func TestGuidanceCatalogDocumentContent(t *testing.T) {
	s := newTestCatalog(t)

	tests := []struct {
		category resttypes.IntentCategory
		contains string
	}{
		{resttypes.CategoryGreeting, "Restaceratops"},
		{resttypes.CategoryAPITesting, "API Testing Best Practices"},
		{resttypes.CategoryDebugging, "API Debugging Guide"},
		{resttypes.CategoryPerformance, "Performance Testing Guide"},
		{resttypes.CategorySecurity, "Security Testing Guide"},
		{resttypes.CategoryTestGeneration, "Test Generation Guide"},
		{resttypes.CategoryResultAnalysis, "Test Results Analysis"},
		{resttypes.CategoryGeneral, "API Testing Assistant"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Contains(t, s.Lookup(tt.category), tt.contains)
		})
	}
}

func TestGuidanceCatalogUnknownCategoryDegradesToGeneral(t *testing.T) {
	s := newTestCatalog(t)

	doc := s.Lookup(resttypes.IntentCategory("nonsense"))
	assert.Equal(t, s.Lookup(resttypes.CategoryGeneral), doc)
}

func TestGuidanceCatalogInitializeIsIdempotent(t *testing.T) {
	s := NewGuidanceCatalogService()
	require.NoError(t, s.Initialize())
	require.NoError(t, s.Initialize())
	assert.Equal(t, "guidance_catalog", s.Name())
}
