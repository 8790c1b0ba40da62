package etlsql

import (
	"database/sql"

	"github.com/stdiopt/vizdata/drow"
)

// scanRow scans the current result row, driver []byte values are converted
// to string since they would be reused by the next scan.
func scanRow(rows *sql.Rows, cols []string) (Row, error) {
	vals := make([]any, len(cols))
	args := make([]any, len(cols))
	for i := range vals {
		args[i] = &vals[i]
	}
	if err := rows.Scan(args...); err != nil {
		return nil, err
	}

	row := make(Row, len(cols))
	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		row[i] = drow.F(cols[i], v)
	}
	return row, nil
}
