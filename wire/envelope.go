// Package wire defines the message envelope and packed buffer formats
// exchanged between workers, grounded on the flat int-vector message
// convention in original_source/src/data/job_description.cpp and on
// the JobMessage{jobId, revision, epoch, tag} fields matched by
// JobTreeAllReduction::receive in job_tree_all_reduction.hpp.
package wire

// Kind discriminates the all-reduce protocol phase a message belongs
// to, independent of which session/tag it is routed to.
type Kind int32

const (
	// KindReduction carries a child's contribution up toward the root.
	KindReduction Kind = iota
	// KindBroadcast carries the finished aggregate back down the tree.
	KindBroadcast
	// KindDirect carries a point-to-point payload outside the
	// all-reduce state machine (history subscribe/unsubscribe/batch).
	KindDirect
)

// Tag identifies which logical all-reduce (or history/session) a
// message belongs to, mirroring MSG_ALLREDUCE_CLAUSES /
// MSG_ALLREDUCE_FILTER in anytime_sat_clause_communicator.hpp.
type Tag int32

const (
	TagAllreduceClauses Tag = iota
	TagAllreduceFilter
	TagHistorySubscribe
	TagHistoryUnsubscribe
	TagHistoryBatch
)

// Envelope is the header every message in this module carries,
// addressed to a specific job, revision, epoch, and tag so a receiver
// can reject anything not meant for its current session.
type Envelope struct {
	JobID    string
	Revision int32
	Epoch    int32
	Tag      Tag
	Kind     Kind
	Source   int
	Payload  []int32
	// Checksum is zero when checksums are disabled (config's
	// UseChecksums=false), matching the original's useChecksums flag.
	Checksum uint64
}

// Base returns the identifying fields of e, stripped of payload/kind,
// the value a JobTreeAllReduction instance pins as its "base message"
// and compares every incoming envelope against.
func (e Envelope) Base() Envelope {
	return Envelope{JobID: e.JobID, Revision: e.Revision, Epoch: e.Epoch, Tag: e.Tag}
}

// MatchesSession reports whether e belongs to the same job, revision,
// epoch, and tag as base — the acceptance test every all-reduce and
// session-routed message runs before being accepted (spec.md §4.4:
// "Messages with mismatched job/epoch/revision/tag are rejected.").
func (e Envelope) MatchesSession(base Envelope) bool {
	return e.JobID == base.JobID && e.Revision == base.Revision &&
		e.Epoch == base.Epoch && e.Tag == base.Tag
}
