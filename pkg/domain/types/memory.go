package types

import "github.com/google/uuid"

// MemoryID is a UUID-based identifier for Memory
type MemoryID string

// NewMemoryID generates a new UUID v4 MemoryID
func NewMemoryID() MemoryID {
	return MemoryID(uuid.New().String())
}

func (id MemoryID) String() string {
	return string(id)
}

// MemoryType categorizes a memory entry. Callers may use free-form values;
// the values below are reserved by the maintenance pipeline.
type MemoryType string

const (
	// TypeConversation is the default type for raw conversation snippets
	TypeConversation MemoryType = "conversation"

	// TypePeriodicSummary marks a derived record condensing recent conversations
	TypePeriodicSummary MemoryType = "periodic_summary"

	// TypeGlobalSummary marks the rolling singleton topic summary. It is stored
	// outside the memories collection and never appears in listing results.
	TypeGlobalSummary MemoryType = "global_summary"

	// TypeSummary marks legacy maintenance artifacts that must never be embedded
	TypeSummary MemoryType = "summary"
)

func (t MemoryType) String() string {
	return string(t)
}
