package services

import (
	"fmt"

	"restaceratops/internal/data/embedded"
	"restaceratops/pkg/resttypes"
)

// GuidanceCatalogService provides the static fallback guidance documents.
// The catalog is a total function over the closed intent category set: every
// category has exactly one document, loaded once from embedded data and
// shared read-only across all requests. Lookup returns documents verbatim;
// no templating happens on this path.
type GuidanceCatalogService struct {
	initialized bool
	documents   map[resttypes.IntentCategory]string
}

// NewGuidanceCatalogService creates a new GuidanceCatalogService instance.
func NewGuidanceCatalogService() *GuidanceCatalogService {
	return &GuidanceCatalogService{
		initialized: false,
	}
}

// Name returns the service name "guidance_catalog" for registration.
func (s *GuidanceCatalogService) Name() string {
	return "guidance_catalog"
}

// Initialize loads the embedded documents and verifies the catalog is
// complete over every intent category.
func (s *GuidanceCatalogService) Initialize() error {
	s.documents = map[resttypes.IntentCategory]string{
		resttypes.CategoryGreeting:       string(embedded.GreetingDocData),
		resttypes.CategoryAuthentication: string(embedded.AuthenticationDocData),
		resttypes.CategoryAPITesting:     string(embedded.APITestingDocData),
		resttypes.CategoryDebugging:      string(embedded.DebuggingDocData),
		resttypes.CategoryPerformance:    string(embedded.PerformanceDocData),
		resttypes.CategorySecurity:       string(embedded.SecurityDocData),
		resttypes.CategoryTestGeneration: string(embedded.TestGenerationDocData),
		resttypes.CategoryResultAnalysis: string(embedded.ResultAnalysisDocData),
		resttypes.CategoryGeneral:        string(embedded.GeneralDocData),
	}

	for _, category := range resttypes.AllCategories {
		doc, ok := s.documents[category]
		if !ok || doc == "" {
			return fmt.Errorf("guidance catalog is missing a document for %q", category)
		}
	}

	s.initialized = true
	return nil
}

// Lookup returns the guidance document for a category verbatim. The catalog
// is statically complete, so an unknown category degrades to the general
// document rather than failing.
func (s *GuidanceCatalogService) Lookup(category resttypes.IntentCategory) string {
	if doc, ok := s.documents[category]; ok {
		return doc
	}
	return s.documents[resttypes.CategoryGeneral]
}

// Interface compliance check
var _ resttypes.Service = (*GuidanceCatalogService)(nil)
