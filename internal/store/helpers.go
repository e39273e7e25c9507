package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// nullable maps an empty string to SQL NULL, matching the nullable
// parent_path / folder_path columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// likePrefix turns a path prefix into a LIKE pattern, escaping the LIKE
// metacharacters. Underscores are ordinary characters in source paths.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

// limitClause renders an optional LIMIT. limit <= 0 means no limit.
func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

// parseTimes decodes the RFC3339 timestamp columns. Unparseable values
// decode to the zero time rather than failing a read.
func parseTimes(created, updated string) (time.Time, time.Time) {
	c, _ := time.Parse(time.RFC3339Nano, created)
	u, _ := time.Parse(time.RFC3339Nano, updated)
	return c, u
}
