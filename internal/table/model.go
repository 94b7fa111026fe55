// Package table owns the fixed dining-room layout and the merged view
// of persisted per-table state over it.
package table

import "strconv"

const (
	StatusAvailable = "available"
	StatusOccupied  = "occupied"

	TypeInterior = "interna"
	TypeExterior = "externa"

	// Tables 1-18 are interior, 19-36 exterior.
	interiorCount = 18
	Count         = 36
)

type Table struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Layout returns the static table set. Status starts as available; the
// persisted status is merged on top by the registry.
func Layout() []Table {
	tables := make([]Table, 0, Count)
	for i := 1; i <= Count; i++ {
		typ := TypeInterior
		if i > interiorCount {
			typ = TypeExterior
		}
		tables = append(tables, Table{
			ID:     strconv.Itoa(i),
			Type:   typ,
			Status: StatusAvailable,
		})
	}
	return tables
}

// IsValid reports whether id names a table in the layout.
func IsValid(id string) bool {
	n, err := strconv.Atoi(id)
	if err != nil {
		return false
	}
	return n >= 1 && n <= Count
}
