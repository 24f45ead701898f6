package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/pageza/smartcanteen/backend/internal/logging"
)

// JSONList is a slice stored in a JSONB column (TEXT on sqlite).
type JSONList[T any] []T

// Value implements the driver.Valuer interface
func (l JSONList[T]) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface. Malformed stored data scans to
// an empty list.
func (l *JSONList[T]) Scan(value interface{}) error {
	*l = JSONList[T]{}
	b, ok := columnBytes(value)
	if !ok || len(b) == 0 {
		return nil
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		logMalformed(b, err)
		return nil
	}
	*l = out
	return nil
}

func (JSONList[T]) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// JSONMap is a map stored in a JSONB column (TEXT on sqlite).
type JSONMap[K comparable, V any] map[K]V

// Value implements the driver.Valuer interface
func (m JSONMap[K, V]) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(map[K]V(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface. Malformed stored data scans to
// an empty map.
func (m *JSONMap[K, V]) Scan(value interface{}) error {
	*m = JSONMap[K, V]{}
	b, ok := columnBytes(value)
	if !ok || len(b) == 0 {
		return nil
	}
	out := map[K]V{}
	if err := json.Unmarshal(b, &out); err != nil {
		logMalformed(b, err)
		return nil
	}
	*m = out
	return nil
}

func (JSONMap[K, V]) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

func jsonColumnType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

func columnBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	}
	return nil, false
}

func logMalformed(b []byte, err error) {
	const maxLogged = 128
	if len(b) > maxLogged {
		b = b[:maxLogged]
	}
	logger := logging.Component("models")
	logger.Warn().Err(err).Str("raw", string(b)).Msg("malformed JSON column, using empty value")
}
