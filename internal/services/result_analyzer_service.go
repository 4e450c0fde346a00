package services

import (
	"fmt"
	"strings"

	"restaceratops/internal/data/embedded"
	"restaceratops/internal/logger"
	"restaceratops/pkg/resttypes"
)

// ResultAnalyzerService inspects pasted test-result text and produces
// status-code-specific remediation guidance. It is a deterministic, local
// analysis: no remote call is involved. The conversation fallback path does
// not use it; it is exposed as its own operation.
type ResultAnalyzerService struct {
	initialized bool
}

// resultFindings holds what the analyzer extracted from the pasted text.
type resultFindings struct {
	testFile    string
	successRate string
	statusCodes []string
	errorLines  []string
}

// NewResultAnalyzerService creates a new ResultAnalyzerService instance.
func NewResultAnalyzerService() *ResultAnalyzerService {
	return &ResultAnalyzerService{}
}

// Name returns the service name "result_analyzer" for registration.
func (s *ResultAnalyzerService) Name() string {
	return "result_analyzer"
}

// Initialize sets up the ResultAnalyzerService for operation.
func (s *ResultAnalyzerService) Initialize() error {
	s.initialized = true
	return nil
}

// Analyze extracts status codes and error lines from pasted test results and
// returns targeted remediation text. Input without recognizable findings gets
// the generic analysis document.
func (s *ResultAnalyzerService) Analyze(input string) string {
	findings := extractFindings(input)
	logger.Debug("Test results analyzed",
		"status_codes", len(findings.statusCodes), "error_lines", len(findings.errorLines))

	if len(findings.statusCodes) == 0 && len(findings.errorLines) == 0 {
		return string(embedded.ResultAnalysisDocData)
	}

	var b strings.Builder
	b.WriteString("🔍 **Test Results Analysis**\n\n")
	if findings.testFile != "" {
		fmt.Fprintf(&b, "**Test File:** %s\n", findings.testFile)
	}
	if findings.successRate != "" {
		fmt.Fprintf(&b, "**Success Rate:** %s\n", findings.successRate)
	}
	b.WriteString("\nI've analyzed your test results and found the following issues:\n\n")

	if len(findings.statusCodes) > 0 {
		b.WriteString(analyzeStatusCodes(findings.statusCodes))
	}
	if len(findings.errorLines) > 0 {
		b.WriteString(analyzeErrorLines(findings.errorLines))
	}

	b.WriteString("\n")
	b.WriteString(remediationFor(findings.statusCodes))

	return b.String()
}

// extractFindings scans the pasted text line by line for a test file name,
// a success rate, HTTP status codes, and error/failure lines.
func extractFindings(input string) resultFindings {
	var findings resultFindings

	for _, line := range strings.Split(input, "\n") {
		lowered := strings.ToLower(line)

		if _, after, ok := strings.Cut(line, "Test File:"); ok {
			findings.testFile = strings.TrimSpace(after)
		}
		if _, after, ok := strings.Cut(line, "Success Rate:"); ok {
			findings.successRate = strings.TrimSpace(after)
		}

		findings.statusCodes = append(findings.statusCodes, statusCodesInLine(line)...)

		if strings.Contains(lowered, "error") || strings.Contains(lowered, "failed") {
			findings.errorLines = append(findings.errorLines, strings.TrimSpace(line))
		}
	}

	return findings
}

// statusCodesInLine extracts HTTP status codes from a single line. A token
// counts when it is a bare three-digit number or follows "got"/"status".
func statusCodesInLine(line string) []string {
	var codes []string
	seen := make(map[string]bool)
	words := strings.Fields(line)

	record := func(code string) {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}

	for i, word := range words {
		trimmed := strings.Trim(word, ".,;:()")
		if isStatusCode(trimmed) {
			record(trimmed)
			continue
		}
		lowered := strings.ToLower(trimmed)
		if (lowered == "got" || lowered == "status") && i+1 < len(words) {
			next := strings.Trim(words[i+1], ".,;:()")
			if isStatusCode(next) {
				record(next)
			}
		}
	}

	return codes
}

// isStatusCode reports whether s looks like an HTTP status code.
func isStatusCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s[0] >= '1' && s[0] <= '5'
}

// analyzeStatusCodes renders one analysis bullet per extracted status code.
func analyzeStatusCodes(codes []string) string {
	var b strings.Builder
	b.WriteString("**Status Code Analysis:**\n")

	seen := make(map[string]bool)
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true

		switch code {
		case "401":
			b.WriteString("- **401 Unauthorized**: Authentication required. Add proper headers.\n")
		case "403":
			b.WriteString("- **403 Forbidden**: Access denied. Check permissions.\n")
		case "404":
			b.WriteString("- **404 Not Found**: URL incorrect or endpoint doesn't exist.\n")
		case "400":
			b.WriteString("- **400 Bad Request**: Invalid request format or missing parameters.\n")
		case "500":
			b.WriteString("- **500 Internal Server Error**: Server issue. Check API logs.\n")
		case "502":
			b.WriteString("- **502 Bad Gateway**: Upstream server issue.\n")
		case "503":
			b.WriteString("- **503 Service Unavailable**: Server temporarily unavailable.\n")
		default:
			fmt.Fprintf(&b, "- **%s**: Check API documentation for this status code.\n", code)
		}
	}

	return b.String()
}

// analyzeErrorLines renders analysis for the first three error lines.
func analyzeErrorLines(errorLines []string) string {
	var b strings.Builder
	b.WriteString("\n**Error Analysis:**\n")

	limit := len(errorLines)
	if limit > 3 {
		limit = 3
	}

	for _, line := range errorLines[:limit] {
		lowered := strings.ToLower(line)
		switch {
		case strings.Contains(lowered, "timeout"):
			b.WriteString("- **Timeout**: Increase timeout value or check network.\n")
		case strings.Contains(lowered, "connection"):
			b.WriteString("- **Connection Error**: Check if API is accessible.\n")
		case strings.Contains(lowered, "ssl"), strings.Contains(lowered, "certificate"):
			b.WriteString("- **SSL Error**: Check certificate or use HTTP for testing.\n")
		case strings.Contains(lowered, "json"):
			b.WriteString("- **JSON Error**: Check response format and parsing.\n")
		default:
			excerpt := line
			if len(excerpt) > 100 {
				excerpt = excerpt[:100] + "..."
			}
			fmt.Fprintf(&b, "- **Error**: %s\n", excerpt)
		}
	}

	return b.String()
}

// remediationFor picks the remediation section for the most actionable status
// code found, falling back to generic guidance.
func remediationFor(codes []string) string {
	has := make(map[string]bool, len(codes))
	for _, code := range codes {
		has[code] = true
	}

	switch {
	case has["401"]:
		return remediation401
	case has["403"]:
		return remediation403
	case has["404"]:
		return remediation404
	default:
		return remediationGeneric
	}
}

const remediation401 = `**🔐 Authentication Issue Detected (401 Unauthorized)**

Your API is returning 401 Unauthorized, which means authentication is required but not provided or invalid.

**Immediate Solutions:**

1. **Add Authentication Headers:**
   - **Bearer Token**: Add ` + "`Authorization: Bearer YOUR_TOKEN`" + `
   - **API Key**: Add ` + "`X-API-Key: YOUR_API_KEY`" + `
   - **Basic Auth**: Add ` + "`Authorization: Basic base64(username:password)`" + `

2. **Debug Steps:**
   ` + "```bash" + `
   # Test with curl to verify authentication
   curl -X GET "YOUR_API_URL/users" \
        -H "Authorization: Bearer YOUR_TOKEN" \
        -H "Content-Type: application/json"

   # Check if endpoint requires authentication
   curl -I "YOUR_API_URL/users"
   ` + "```" + `

3. **Common Authentication Issues:**
   - Missing or expired access token
   - Incorrect API key format
   - Wrong authentication method
   - Token not included in headers

**Next Steps:**
1. Check your API documentation for authentication requirements
2. Verify your access token is valid and not expired
3. Test the endpoint manually with curl first
4. Update your test case with proper authentication headers
`

const remediation403 = `**🚫 Authorization Issue Detected (403 Forbidden)**

Your API is returning 403 Forbidden, which means the request is authenticated but the user doesn't have permission.

**Solutions:**

1. **Check User Permissions:**
   - Verify the authenticated user has the required role
   - Check if the endpoint requires specific permissions
   - Test with a user account that has proper access

2. **Debug Steps:**
   ` + "```bash" + `
   # Test with different user tokens
   curl -X GET "YOUR_API_URL/users" \
        -H "Authorization: Bearer ADMIN_TOKEN"
   ` + "```" + `

**Next Steps:**
1. Check user roles and permissions
2. Test with an admin or privileged user account
3. Verify the endpoint access requirements
4. Contact the API administrator if needed
`

const remediation404 = `**🔍 Endpoint Not Found (404)**

Your API is returning 404 Not Found, which means the endpoint URL is incorrect.

**Solutions:**

1. **Verify the URL:**
   - Check the API documentation for correct endpoints
   - Ensure the base URL is correct
   - Verify the endpoint path is accurate

2. **Common URL Issues:**
   - Wrong base URL (http vs https)
   - Missing or extra slashes
   - Incorrect API version in path
   - Wrong endpoint name

3. **Debug Steps:**
   ` + "```bash" + `
   # Test the base URL first
   curl -I "YOUR_API_BASE_URL"

   # Test the specific endpoint
   curl -X GET "YOUR_API_URL/users"
   ` + "```" + `

**Next Steps:**
1. Check API documentation for correct endpoints
2. Verify the base URL and path
3. Test with a known working endpoint first
4. Update your test case with the correct URL
`

const remediationGeneric = `**Recommended Solutions:**

1. **Immediate Actions:**
   - Verify the API endpoint is accessible
   - Check if authentication is required
   - Validate request format and headers
   - Test with a simple tool like curl first

2. **Common Fixes:**
   - **401/403**: Add proper authentication headers
   - **404**: Verify the URL is correct
   - **400**: Check request body format
   - **500**: Server issue, check API logs

**Next Steps:**
1. Test the endpoint manually with curl
2. Check the API documentation
3. Verify your test environment
4. Re-run the corrected test case
`

// Interface compliance check
var _ resttypes.Service = (*ResultAnalyzerService)(nil)
