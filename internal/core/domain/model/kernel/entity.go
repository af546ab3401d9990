package kernel

// Identifier is satisfied by the id types aggregates and entities are keyed by.
type Identifier interface {
	comparable
	Validate() error
	String() string
}

// Entity carries the identity of an aggregate or entity. Types embed it to get
// ID and equality by identity; two entities with the same id are the same thing
// regardless of the rest of their state.
//
// Example:
//
//	type Courier struct {
//	    kernel.Entity[kernel.UUID]
//	    name string
//	}
//
//	c := &Courier{Entity: kernel.NewEntity(kernel.NewUUID())}
type Entity[ID Identifier] struct {
	id ID
}

func NewEntity[ID Identifier](id ID) Entity[ID] {
	return Entity[ID]{id: id}
}

func (e Entity[ID]) ID() ID {
	return e.id
}

// SameIdentityAs reports whether both entities carry the same id.
func (e Entity[ID]) SameIdentityAs(other Entity[ID]) bool {
	return e.id == other.id
}
