package lookup

import (
	"context"
	"database/sql"
	"fmt"
)

// Row is one (key, display) pair of a lookup query
type Row struct {
	Key     interface{}
	Display interface{}
}

// Source runs a lookup query
type Source interface {
	LoadRows(ctx context.Context, query string) ([]Row, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context, query string) ([]Row, error)

func (f SourceFunc) LoadRows(ctx context.Context, query string) ([]Row, error) {
	return f(ctx, query)
}

// DBSource loads rows from a database, the first column of each row is the
// key and the second the display value. Further columns are ignored.
type DBSource struct {
	DB *sql.DB
}

func (s DBSource) LoadRows(ctx context.Context, query string) ([]Row, error) {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(columns) < 2 {
		return nil, fmt.Errorf("lookup query returns %d column(s), want key and display", len(columns))
	}

	var result []Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, Row{Key: values[0], Display: values[1]})
	}
	return result, rows.Err()
}
