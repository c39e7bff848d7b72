package audit

// Recorder appends immutable audit entries. Recording is a best-effort side
// effect executed strictly after the authoritative state transition: it has
// no error return because a failed write must never abort or reverse an
// already-committed profile mutation.
type Recorder interface {
	Record(entry Entry)
	List() ([]Entry, error)
}
