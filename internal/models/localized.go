package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	bcplog "atlasbcp/backend/pkg/log"

	"go.uber.org/zap"
)

// LocalizedString stores multilingual text as a JSONB column keyed by locale
// ("en", "es", "fr", ...). Legacy rows imported from the previous system sometimes
// hold corrupt JSON; Scan degrades those to an empty map instead of failing so the
// reference catalog stays renderable.
type LocalizedString map[string]string

// Get returns the text for the requested locale, falling back to "en" and then to
// any populated locale (lowest key first, so the fallback is deterministic).
func (ls LocalizedString) Get(locale string) string {
	if len(ls) == 0 {
		return ""
	}
	if v, ok := ls[locale]; ok && v != "" {
		return v
	}
	if v, ok := ls["en"]; ok && v != "" {
		return v
	}
	keys := make([]string, 0, len(ls))
	for k := range ls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if ls[k] != "" {
			return ls[k]
		}
	}
	return ""
}

// Value implements driver.Valuer for GORM.
func (ls LocalizedString) Value() (driver.Value, error) {
	if ls == nil {
		return "{}", nil
	}
	data, err := json.Marshal(ls)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal localized string: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for GORM. Corrupt JSON is logged and treated as empty.
func (ls *LocalizedString) Scan(value interface{}) error {
	*ls = LocalizedString{}
	if value == nil {
		return nil
	}
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, ls); err != nil {
		bcplog.L.Warn("Corrupt localized string column, treating as empty",
			zap.ByteString("raw", data), zap.Error(err))
		*ls = LocalizedString{}
	}
	return nil
}

// StringList stores a list of strings (e.g. hazard codes) as a JSONB column.
// Same corrupt-input degradation as LocalizedString.
type StringList []string

// Value implements driver.Valuer for GORM.
func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		return "[]", nil
	}
	data, err := json.Marshal(sl)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for GORM.
func (sl *StringList) Scan(value interface{}) error {
	*sl = StringList{}
	if value == nil {
		return nil
	}
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, sl); err != nil {
		bcplog.L.Warn("Corrupt string list column, treating as empty",
			zap.ByteString("raw", data), zap.Error(err))
		*sl = StringList{}
	}
	return nil
}

// Contains reports whether the list holds the exact value.
func (sl StringList) Contains(v string) bool {
	for _, s := range sl {
		if s == v {
			return true
		}
	}
	return false
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T for JSON scan", value)
	}
}
