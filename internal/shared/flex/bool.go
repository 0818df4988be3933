// Package flex holds value types that normalize loosely typed fields sent by
// the wallet backend.
package flex

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Bool is a boolean that also accepts numbers and numeric strings, the way
// the backend serializes tinyint flags such as is_active and is_primary.
// null and missing values decode to false.
type Bool bool

func (b Bool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (b *Bool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := parse(s)
		if err != nil {
			return err
		}
		*b = Bool(v)
		return nil
	}

	v, err := parse(string(data))
	if err != nil {
		return err
	}
	*b = Bool(v)
	return nil
}

// Scan implements sql.Scanner for boolean, integer and text columns.
func (b *Bool) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*b = false
	case bool:
		*b = Bool(v)
	case int64:
		*b = v != 0
	case float64:
		*b = v != 0
	case []byte:
		parsed, err := parse(string(v))
		if err != nil {
			return err
		}
		*b = Bool(parsed)
	case string:
		parsed, err := parse(v)
		if err != nil {
			return err
		}
		*b = Bool(parsed)
	default:
		return fmt.Errorf("flex.Bool: cannot scan %T", src)
	}
	return nil
}

func (b Bool) Value() (driver.Value, error) {
	return bool(b), nil
}

func parse(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "f", "no":
		return false, nil
	case "true", "t", "yes":
		return true, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false, fmt.Errorf("flex.Bool: invalid value %q", s)
	}
	return n != 0, nil
}
