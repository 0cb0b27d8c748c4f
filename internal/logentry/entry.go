// Package logentry defines the single unit of data replicated between the
// master and its secondaries: a sequence number paired with an opaque
// string payload.
package logentry

// Entry is one record in the replicated log.
//
// Seq is assigned once, by the master's sequencer, and never changes.
// Payload is an opaque string; this service does not interpret it.
type Entry struct {
	Seq     uint64 `json:"seq"`
	Payload string `json:"msg"`
}
