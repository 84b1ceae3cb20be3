// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"gopkg.in/guregu/null.v4"
)

// Error messages.
var (
	ErrSanitize = "query: can not sanitize value %v of type %s"
)

// nullBytes is a JSON null literal
var nullBytes = []byte("null")

// NullString wraps gopkg.in/guregu/null.String
type NullString null.String

// NullInt wraps gopkg.in/guregu/null.Int
type NullInt null.Int

// NewNullString creates a new NullString.
func NewNullString(s string, valid bool) NullString {
	return NullString(null.NewString(s, valid))
}

// NewNullInt creates a new NullInt.
func NewNullInt(i int64, valid bool) NullInt {
	return NullInt(null.NewInt(i, valid))
}

// SanitizeToString will convert a scanned database value to its display string.
// NULL becomes an empty string.
// Error will return if the type is not supported.
func SanitizeToString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case NullString:
		if v.Valid {
			return v.String, nil
		}
		return "", nil
	case NullInt:
		if v.Valid {
			return strconv.FormatInt(v.Int64, 10), nil
		}
		return "", nil
	case fmt.Stringer:
		return v.String(), nil
	}

	return "", fmt.Errorf(ErrSanitize, value, reflect.TypeOf(value).String())
}

// These parts are copied out of the package because otherwise JSON would not marshal or unmarshal it correctly (gopkg.in/guregu/null).

// UnmarshalJSON implements json.Unmarshaler.
// It supports string and null input.
func (s *NullString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, nullBytes) {
		s.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &s.String); err != nil {
		return fmt.Errorf("null: couldn't unmarshal JSON: %w", err)
	}
	s.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
// It will encode null if this String is null.
func (s NullString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return nullBytes, nil
	}
	return json.Marshal(s.String)
}

// UnmarshalJSON implements json.Unmarshaler.
// It supports number, string and null input.
func (i *NullInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, nullBytes) {
		i.Valid = false
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("null: couldn't unmarshal number string: %w", err)
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return fmt.Errorf("null: couldn't convert string to int: %w", err)
		}
		i.Int64 = n
		i.Valid = true
		return nil
	}
	if err := json.Unmarshal(data, &i.Int64); err != nil {
		return fmt.Errorf("null: couldn't unmarshal JSON: %w", err)
	}
	i.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
// It will encode null if this Int is null.
func (i NullInt) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return nullBytes, nil
	}
	return []byte(strconv.FormatInt(i.Int64, 10)), nil
}
