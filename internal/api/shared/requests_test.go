package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBodyRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantAge   *int
		wantError bool
	}{
		{name: "object", body: `{"age": 31}`, wantAge: intPtr(31)},
		{name: "trailing whitespace", body: "{\"age\": 31}\n  ", wantAge: intPtr(31)},
		{name: "empty body", body: "", wantAge: nil},
		{name: "whitespace only", body: " \n", wantAge: nil},
		{name: "malformed", body: `{"age":`, wantError: true},
		{name: "trailing junk", body: `{"age":50} trailing`, wantError: true},
		{name: "two values", body: `{"age":50}{"age":51}`, wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var patch domain.UserPatch
			err := DecodeJSON(newBodyRequest(tc.body), &patch)
			if tc.wantError {
				assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAge, patch.Age)
		})
	}
}

func intPtr(i int) *int { return &i }

func TestDecodeOneOrMany(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLen   int
		wantMany  bool
		wantError bool
	}{
		{name: "single object", body: `{"name":"Ada","email":"a@x.com","age":36}`, wantLen: 1},
		{name: "array", body: ` [{"name":"Ada"},{"name":"Bob"}]`, wantLen: 2, wantMany: true},
		{name: "empty array", body: `[]`, wantLen: 0, wantMany: true},
		{name: "empty body", body: "  ", wantError: true},
		{name: "malformed object", body: `{"name":`, wantError: true},
		{name: "array of scalars", body: `[1,2]`, wantMany: true, wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, many, err := DecodeOneOrMany[domain.UserInput](newBodyRequest(tc.body))
			if tc.wantError {
				assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tc.wantLen)
			assert.Equal(t, tc.wantMany, many)
		})
	}
}

func TestDecodeBodyTooLarge(t *testing.T) {
	r := newBodyRequest(`{"name":"` + strings.Repeat("a", 64) + `"}`)
	r.Body = http.MaxBytesReader(httptest.NewRecorder(), r.Body, 16)

	_, _, err := DecodeOneOrMany[domain.UserInput](r)
	assert.True(t, errors.Is(err, ErrBodyTooLarge))
	assert.False(t, errors.Is(err, domain.ErrValidation))
}
