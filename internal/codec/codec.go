// Package codec converts bilingual and nested attributes to and from the
// single JSON text column they are stored in.  MySQL may hand a JSON column
// back as []byte, as string, or (through some drivers and test doubles) as an
// already decoded value, so Decode inspects the runtime shape before doing any
// work.  Malformed stored text is reported as ErrMalformed and never replaced
// with an empty value.
package codec

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when stored text cannot be decoded into the
// requested shape.  Handlers translate it into a 500 response.
var ErrMalformed = errors.New("malformed structured column")

// Encode serializes v into the text stored in a structured column.
func Encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode structured column: %w", err)
	}
	return string(b), nil
}

// Decode fills dst from src.  src may be encoded text ([]byte or string),
// nil (dst is left untouched) or a value that was already decoded by the
// storage layer, in which case it is converted instead of decoded twice.
func Decode(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return decodeText(v, dst)
	case string:
		return decodeText([]byte(v), dst)
	case json.RawMessage:
		return decodeText(v, dst)
	default:
		// already decoded (map, slice, struct): round-trip through JSON
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return decodeText(b, dst)
	}
}

func decodeText(b []byte, dst any) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: empty text", ErrMalformed)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// JSON wraps a typed value so it can be scanned from and written to a
// structured column directly.  The zero value encodes T's zero value.
type JSON[T any] struct {
	V T
}

// Wrap returns a JSON column holding v.
func Wrap[T any](v T) JSON[T] { return JSON[T]{V: v} }

// Scan implements sql.Scanner.  A NULL column leaves V at its zero value;
// text that fails to decode is an error.
func (j *JSON[T]) Scan(src any) error {
	var v T
	if err := Decode(src, &v); err != nil {
		return err
	}
	j.V = v
	return nil
}

// Value implements driver.Valuer.
func (j JSON[T]) Value() (driver.Value, error) {
	return Encode(j.V)
}

// MarshalJSON lets a wrapped column appear in API responses as the plain
// structured value.
func (j JSON[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.V)
}

// UnmarshalJSON accepts the plain structured value from request bodies.
func (j *JSON[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &j.V)
}
