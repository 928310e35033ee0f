package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// recordKey returns the key part of a SurrealDB record ID. Records are
// created as table:uuid and the API only ever sees the uuid.
func recordKey(id interface{}) string {
	raw := convertSurrealID(id)
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		raw = raw[i+1:]
	}
	raw = strings.TrimPrefix(raw, "⟨")
	raw = strings.TrimSuffix(raw, "⟩")
	return strings.Trim(raw, "`")
}

// convertSurrealID converts a SurrealDB ID (which may be a complex object) to a string
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
		return ""
	case map[string]interface{}:
		// {"tb": "project", "id": "..."} or {"Table": ..., "ID": ...}
		tb, _ := v["tb"].(string)
		if tb == "" {
			tb, _ = v["Table"].(string)
		}
		idVal, ok := v["id"]
		if !ok {
			idVal = v["ID"]
		}
		idPart := extractIDValue(idVal)
		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		return idPart
	}

	// Last resort: round trip through JSON into a RecordID
	if data, err := json.Marshal(id); err == nil {
		var rid models.RecordID
		if err := json.Unmarshal(data, &rid); err == nil && rid.Table != "" {
			return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
		}
	}
	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}:
		if s, ok := v["String"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// queryRows extracts the rows of the first statement in a SurrealDB response
func queryRows(result []interface{}) []map[string]interface{} {
	if len(result) == 0 {
		return nil
	}

	var raw []interface{}
	if resp, ok := result[0].(map[string]interface{}); ok {
		if rows, ok := resp["result"].([]interface{}); ok {
			raw = rows
		}
	}

	rows := make([]map[string]interface{}, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]interface{}); ok {
			rows = append(rows, m)
		}
	}
	return rows
}

// formatTime renders a timestamp for a <datetime> cast
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) time.Time {
	switch t := m[key].(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC()
		}
	case models.CustomDateTime:
		return t.Time.UTC()
	case *models.CustomDateTime:
		if t != nil {
			return t.Time.UTC()
		}
	}
	return time.Time{}
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getInt64 extracts an integer value from a map
func getInt64(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case uint64:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	}
	return 0
}

// getStringSlice extracts a string slice from a map
func getStringSlice(m map[string]interface{}, key string) []string {
	v, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(v))
	for _, item := range v {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
