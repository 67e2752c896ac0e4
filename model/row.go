package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Row is a raw record as returned by the remote store, one value per column.
type Row map[string]any

// Fields is the column/value map sent with insert and update requests.
type Fields map[string]any

// The MySQL driver hands back []byte for text and JSON columns and int64
// for integers, so every accessor below normalizes before converting.

func rowString(r Row, key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", nil
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return "", fmt.Errorf("column %s: expected text, got %T", key, v)
}

// rowID reads an identity column. Ids may come back as text or as a
// numeric key depending on the collection; both are normalized to string.
func rowID(r Row, key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", fmt.Errorf("column %s: missing", key)
	}
	switch id := v.(type) {
	case string:
		return id, nil
	case []byte:
		return string(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case int:
		return strconv.Itoa(id), nil
	case float64:
		return strconv.FormatInt(int64(id), 10), nil
	}
	return "", fmt.Errorf("column %s: expected identity, got %T", key, v)
}

func rowOptionalID(r Row, key string) (string, error) {
	if v, ok := r[key]; !ok || v == nil {
		return "", nil
	}
	return rowID(r, key)
}

func rowRequiredString(r Row, key string) (string, error) {
	s, err := rowString(r, key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("column %s: missing", key)
	}
	return s, nil
}

func rowInt(r Row, key string) (*int, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case int64:
		i := int(n)
		return &i, nil
	case int:
		i := n
		return &i, nil
	case float64:
		i := int(n)
		return &i, nil
	case []byte:
		i, err := strconv.Atoi(string(n))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", key, err)
		}
		return &i, nil
	}
	return nil, fmt.Errorf("column %s: expected integer, got %T", key, v)
}

func rowBool(r Row, key string) (bool, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case []byte:
		return string(b) == "1" || string(b) == "true", nil
	}
	return false, fmt.Errorf("column %s: expected boolean, got %T", key, v)
}

func rowTime(r Row, key string) (time.Time, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return time.Time{}, nil
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseStoreTime(key, t)
	case []byte:
		return parseStoreTime(key, string(t))
	}
	return time.Time{}, fmt.Errorf("column %s: expected timestamp, got %T", key, v)
}

func parseStoreTime(key, s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("column %s: unparseable timestamp %q", key, s)
}

func rowJSON(r Row, key string, dst any) error {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	var raw []byte
	switch b := v.(type) {
	case []byte:
		raw = b
	case string:
		raw = []byte(b)
	default:
		return fmt.Errorf("column %s: expected JSON, got %T", key, v)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("column %s: %w", key, err)
	}
	return nil
}
