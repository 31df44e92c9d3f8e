package catalog

import (
	"slices"
	"strings"

	"github.com/quarkdb/colcomp/format"
)

// ColumnCompressionHistory reports every compression method that has ever
// applied to a column, as a comma-joined list of method names in first-seen
// order with duplicates removed. The second result is false when the column
// does not exist or no method has ever applied.
//
// Built-in usage leaves no configuration row, so the query combines two
// sources: dependency edges from the column to built-in sentinels, then the
// column's configuration rows.
func (s *Store) ColumnCompressionHistory(relID uint32, columnName string) (string, bool, error) {
	col, ok := s.cols.LookupByName(relID, columnName)
	if !ok {
		return "", false, nil
	}

	var names []string
	record := func(m format.MethodID) error {
		name, err := s.reg.Name(m)
		if err != nil {
			return err
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}

		return nil
	}

	dep := TableColumnRef(relID, col.Num)
	for e := range s.deps.Find(EdgePattern{Dependent: &dep}) {
		if e.Referenced.Class != ClassConfig {
			continue
		}
		sid, builtin := BuiltinStorageID(ConfigID(e.Referenced.ID))
		if !builtin {
			continue
		}
		m, err := s.reg.MethodIDFromStorageID(sid)
		if err != nil {
			return "", false, err
		}
		if err := record(m); err != nil {
			return "", false, err
		}
	}

	for row := range s.rows.ScanColumn(relID, col.Num) {
		if err := record(row.Method); err != nil {
			return "", false, err
		}
	}

	if len(names) == 0 {
		return "", false, nil
	}

	return strings.Join(names, ", "), true, nil
}
