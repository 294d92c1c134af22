// Package model contains the domain records persisted by the stores.
//
// The types carry no database tags: column mapping lives next to the SQL in
// repository/postgres. Nullable columns map to pointer fields.
package model

// Entity holds the identity shared by every persisted record. It is embedded, not inherited.
type Entity struct {
	// ID is assigned by the store on insert and never changes afterwards. Zero means the
	// record has not been persisted yet.
	ID int64 `json:"id"`
}

// IsNew reports whether the record still needs an insert.
func (e Entity) IsNew() bool {
	return e.ID == 0
}
