package entities

// CollectionOp selects how an update treats an owned child collection
type CollectionOp int

const (
	// CollectionKeep leaves the stored collection untouched
	CollectionKeep CollectionOp = iota
	// CollectionReplace deletes every stored item and inserts Items in order
	CollectionReplace
)

// CollectionUpdate is a whole-collection write: it never merges item by item
type CollectionUpdate[T any] struct {
	Op    CollectionOp
	Items []T
}

// KeepCollection leaves the collection as stored
func KeepCollection[T any]() CollectionUpdate[T] {
	return CollectionUpdate[T]{Op: CollectionKeep}
}

// ReplaceCollection substitutes the stored collection with items; an empty
// slice clears it
func ReplaceCollection[T any](items []T) CollectionUpdate[T] {
	if items == nil {
		items = []T{}
	}
	return CollectionUpdate[T]{Op: CollectionReplace, Items: items}
}

// Replaces reports whether the update substitutes the collection
func (c CollectionUpdate[T]) Replaces() bool {
	return c.Op == CollectionReplace
}
