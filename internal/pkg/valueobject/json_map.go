// Package valueobject holds small value types shared by repositories.
package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ErrScanValueNotBytes indicates the database value is not JSON bytes.
var ErrScanValueNotBytes = errors.New("valueobject: jsonmap scan value is not []byte")

// JSONMap is a JSON object stored in a jsonb column, such as a delivery
// provider's raw response.
// @swaggertype object
type JSONMap map[string]any

// Value implements driver.Valuer. A nil map is stored as {}.
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSONMap) Scan(value any) error {
	var raw []byte

	switch v := value.(type) {
	case nil:
		*j = JSONMap{}
		return nil
	case map[string]any:
		*j = JSONMap(v)
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return ErrScanValueNotBytes
	}

	out := JSONMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*j = out
	return nil
}

// FromBody decodes a provider body into a JSONMap. A body that is not a JSON
// object is kept under the "raw" key.
func FromBody(body []byte) JSONMap {
	out := JSONMap{}
	if err := json.Unmarshal(body, &out); err != nil {
		return JSONMap{"raw": string(body)}
	}
	return out
}

// GetString returns the string at key, or "".
func (j JSONMap) GetString(key string) string {
	if v, ok := j[key].(string); ok {
		return v
	}
	return ""
}

// GetBool returns the bool at key, or false.
func (j JSONMap) GetBool(key string) bool {
	if v, ok := j[key].(bool); ok {
		return v
	}
	return false
}
