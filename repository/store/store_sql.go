package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rescueops/admin-console/constant"
	"github.com/rescueops/admin-console/model"
)

type SQL struct {
	conn *sqlx.DB
}

func NewStore(conn *sqlx.DB) Store {
	return &SQL{conn: conn}
}

// collectionColumns whitelists the columns of each collection. Field maps
// are checked against it before any SQL is built.
var collectionColumns = map[string]map[string]bool{
	constant.CollectionUsers: {
		"id": true, "email": true, "full_name": true, "phone_number": true,
		"role": true, "active": true, "language": true,
	},
	constant.CollectionSearchEvents: {
		"id": true, "name": true, "status": true, "start_time": true,
		"coordinator_id": true,
	},
	constant.CollectionMissingPersons: {
		"id": true, "event_id": true, "name": true, "age": true,
		"height_cm": true, "clothing": true, "photo_url": true,
		"behavior_category": true, "prob_zones": true, "location": true,
	},
	constant.CollectionHelpContent: {
		"id": true, "section": true, "text_hu": true, "text_en": true,
		"text_sk": true, "text_ro": true, "text_pl": true,
	},
	constant.CollectionMarkers: {
		"id": true, "lat_lng": true, "type": true,
	},
}

func checkCollection(collection string) error {
	if _, ok := collectionColumns[collection]; !ok {
		return fmt.Errorf("unknown collection %q", collection)
	}
	return nil
}

// sortedFieldKeys orders the field map so the generated SQL is stable.
func sortedFieldKeys(collection string, fields model.Fields) ([]string, error) {
	cols := collectionColumns[collection]
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !cols[k] {
			return nil, fmt.Errorf("collection %s has no column %q", collection, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// bindValue converts structured payloads (prob_zones, location, lat_lng)
// to their JSON column representation.
func bindValue(v any) (any, error) {
	switch v.(type) {
	case nil, string, []byte, bool, int, int64, float64, json.RawMessage:
	default:
		return json.Marshal(v)
	}
	if raw, ok := v.(json.RawMessage); ok {
		return []byte(raw), nil
	}
	return v, nil
}

func (s *SQL) SelectAll(ctx context.Context, collection string) ([]model.Row, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY id", collection)
	rows, err := s.conn.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Row, 0)
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		result = append(result, model.Row(row))
	}
	return result, rows.Err()
}

func (s *SQL) Insert(ctx context.Context, collection string, fields model.Fields) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	keys, err := sortedFieldKeys(collection, fields)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("empty field map for insert into %s", collection)
	}

	placeholders := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		v, err := bindValue(fields[k])
		if err != nil {
			return err
		}
		placeholders = append(placeholders, "?")
		args = append(args, v)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		collection, strings.Join(keys, ", "), strings.Join(placeholders, ", "))
	_, err = s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *SQL) Update(ctx context.Context, collection string, fields model.Fields, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	keys, err := sortedFieldKeys(collection, fields)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("empty field map for update of %s", collection)
	}

	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		v, err := bindValue(fields[k])
		if err != nil {
			return err
		}
		sets = append(sets, k+" = ?")
		args = append(args, v)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", collection, strings.Join(sets, ", "))
	_, err = s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *SQL) Delete(ctx context.Context, collection string, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", collection)
	_, err := s.conn.ExecContext(ctx, query, id)
	return err
}
