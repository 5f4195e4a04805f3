package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/phrazzld/userbase-api/internal/domain"
)

// ErrBodyTooLarge is returned when the request body exceeds the configured limit.
var ErrBodyTooLarge = errors.New("request body too large")

// ErrTrailingData is wrapped when a body holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeJSON decodes the request body into v.
// An empty body leaves v untouched. Malformed JSON and data after the first
// value are reported as domain validation errors.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return decodeError(err)
	}

	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = ErrTrailingData
		}
		return decodeError(err)
	}
	return nil
}

// DecodeOneOrMany decodes a body that holds either a single JSON object or an
// array of objects. many reports which form the client sent.
func DecodeOneOrMany[T any](r *http.Request) (items []T, many bool, err error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, false, decodeError(err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, domain.NewValidationError("body", "is required", nil)
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, true, decodeError(err)
		}
		return items, true, nil
	}

	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return nil, false, decodeError(err)
	}
	return []T{item}, false, nil
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
	}
	return domain.NewValidationError("body", "is not valid JSON", fmt.Errorf("%w: %w", domain.ErrValidation, err))
}
