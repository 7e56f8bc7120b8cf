package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseTime parses a stored RFC3339 timestamp, naming column on failure.
func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// conditions collects the terms of a WHERE clause with their arguments.
type conditions struct {
	terms []string
	args  []any
}

func (c *conditions) add(term string, args ...any) {
	c.terms = append(c.terms, term)
	c.args = append(c.args, args...)
}

// equal adds "column = ?" when value is set.
func (c *conditions) equal(column string, value *string) {
	if value != nil {
		c.add(column+" = ?", *value)
	}
}

// where returns the WHERE clause, or "" when there are no terms.
func (c *conditions) where() string {
	if len(c.terms) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.terms, " AND ")
}

// paginate appends LIMIT and OFFSET for positive values. SQLite only
// accepts OFFSET after a LIMIT, so an offset alone uses LIMIT -1.
func (c *conditions) paginate(query *strings.Builder, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		c.args = append(c.args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		c.args = append(c.args, offset)
	}
}
