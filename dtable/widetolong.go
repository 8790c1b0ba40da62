package dtable

import "github.com/stdiopt/vizdata/drow"

// WideToLong pivots every non key column of each row into its own row shaped
// {indicator, value, keyColumn}. The indicator is the column label from
// labels or the raw column name. Source row order and column order are kept.
func WideToLong(t Table, keyColumn string, labels map[string]string) Table {
	ret := Table{}
	for _, r := range t {
		key := r.Value(keyColumn)
		for _, f := range r {
			if f.Name == keyColumn {
				continue
			}
			indicator := f.Name
			if l, ok := labels[f.Name]; ok {
				indicator = l
			}
			ret = append(ret, Row{
				drow.F("indicator", indicator),
				drow.F("value", f.Value),
				drow.F(keyColumn, key),
			})
		}
	}
	return ret
}
