package entity

// Identifiable is implemented by every persisted entity. Repositories address
// rows through it instead of reflecting on a field name.
type Identifiable interface {
	GetID() int64
	SetID(id int64)
}
