package types

// Action is the mutation kind that produced a record's current local
// snapshot, and the remote-side effect a queue item stands for.
type Action string

// Mutation kinds.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Meta holds the local bookkeeping every stored record carries alongside its
// domain fields. It is never sent to the remote service.
type Meta struct {
	// Offline is true while the record's latest local change has not been
	// confirmed by the remote service.
	Offline bool `json:"_offline,omitempty"`

	// Action is the mutation kind that produced the current snapshot.
	Action Action `json:"_action,omitempty"`

	// Timestamp is the local mutation time in Unix milliseconds, used for
	// tie-breaking and staleness checks.
	Timestamp int64 `json:"_timestamp,omitempty"`
}

// Pending marks the record as locally modified and unconfirmed.
func (m *Meta) Pending(action Action, timestampMillis int64) {
	m.Offline = true
	m.Action = action
	m.Timestamp = timestampMillis
}

// Confirm marks the record as matching the remote-confirmed state.
func (m *Meta) Confirm() {
	m.Offline = false
	m.Action = ""
	m.Timestamp = 0
}
