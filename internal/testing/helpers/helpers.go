package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/forgo/freelancehub/api/internal/model"
	"github.com/forgo/freelancehub/api/pkg/jwt"
)

// ============================================================================
// Token Helpers
// ============================================================================

// TestSecret signs every token produced by a TokenHelper
const TestSecret = "freelancehub-test-secret-0123456789abcdef"

// TokenHelper mints session tokens the way the server does, plus the
// broken variants tests need.
type TokenHelper struct {
	t     *testing.T
	Codec *jwt.Codec
}

// NewTokenHelper creates a token helper around a test codec
func NewTokenHelper(t *testing.T) *TokenHelper {
	t.Helper()
	return &TokenHelper{t: t, Codec: jwt.NewTestCodec(TestSecret, jwt.DefaultTTL)}
}

// GenerateToken creates a valid token for the account email
func (h *TokenHelper) GenerateToken(email string) string {
	h.t.Helper()
	token, _, err := h.Codec.Mint(email)
	if err != nil {
		h.t.Fatalf("helpers: failed to mint token: %v", err)
	}
	return token
}

// GenerateExpiredToken creates a correctly signed token that expired an hour ago
func (h *TokenHelper) GenerateExpiredToken(email string) string {
	h.t.Helper()
	now := time.Now()
	token, err := h.Codec.Encode(jwt.Claims{
		Subject:   email,
		Issuer:    "freelancehub-test",
		IssuedAt:  now.Add(-jwt.DefaultTTL - time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	if err != nil {
		h.t.Fatalf("helpers: failed to encode token: %v", err)
	}
	return token
}

// GenerateForgedToken creates a token for email signed with a different secret
func (h *TokenHelper) GenerateForgedToken(email string) string {
	h.t.Helper()
	other := jwt.NewTestCodec("not-the-server-secret-0123456789abcdef", jwt.DefaultTTL)
	token, _, err := other.Mint(email)
	if err != nil {
		h.t.Fatalf("helpers: failed to mint token: %v", err)
	}
	return token
}

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	form    url.Values
	headers map[string]string
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithForm sets a url-encoded form body
func (rb *RequestBuilder) WithForm(form url.Values) *RequestBuilder {
	rb.form = form
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithBearer adds an Authorization header carrying token
func (rb *RequestBuilder) WithBearer(token string) *RequestBuilder {
	return rb.WithHeader("Authorization", "Bearer "+token)
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	contentType := ""
	switch {
	case rb.form != nil:
		bodyReader = strings.NewReader(rb.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case rb.body != nil:
		raw, ok := rb.body.(string)
		if !ok {
			bodyBytes, err := json.Marshal(rb.body)
			if err != nil {
				rb.t.Fatalf("helpers: failed to marshal body: %v", err)
			}
			raw = string(bodyBytes)
		}
		bodyReader = bytes.NewReader([]byte(raw))
		contentType = "application/json"
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Do serves the built request against h and returns the recorder
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertProblemDetails validates an RFC 9457 Problem Details error response
func AssertProblemDetails(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) *model.ProblemDetails {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	var problem model.ProblemDetails
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v. Body: %s", err, resp.Body.String())
	}
	if problem.Status != expectedStatus {
		t.Errorf("expected problem.status %d, got %d", expectedStatus, problem.Status)
	}
	if expectedCode != 0 && problem.Code != expectedCode {
		t.Errorf("expected problem.code %d, got %d", expectedCode, problem.Code)
	}
	return &problem
}

// AssertValidationError checks for a validation error on a specific field
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	t.Helper()

	problem := AssertProblemDetails(t, resp, http.StatusUnprocessableEntity, model.ErrCodeValidation)
	for _, fe := range problem.Errors {
		if fe.Field == field {
			return
		}
	}
	t.Errorf("expected validation error on field %q, but not found. Errors: %+v", field, problem.Errors)
}

// DecodeResponse decodes the response body into the given struct
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, resp.Body.String())
	}
}

// GetDataFromResponse extracts the "data" field from a standard response
func GetDataFromResponse(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response struct {
		Data map[string]interface{} `json:"data"`
	}
	DecodeResponse(t, resp, &response)
	return response.Data
}
