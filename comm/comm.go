// Package comm implements the clause communicator: the per-job driver
// that runs one sharing epoch at a time by pairing two tree
// all-reduce instances — one merging clause buffers, one merging the
// duplicate-filter bitmap that rides along behind them — grounded on
// AnytimeSatClauseCommunicator in
// original_source/src/app/sat/job/anytime_sat_clause_communicator.hpp.
package comm

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/xDarkicex/sharesat/allreduce"
	"github.com/xDarkicex/sharesat/clause"
	"github.com/xDarkicex/sharesat/internal/taskpool"
	"github.com/xDarkicex/sharesat/sharing"
	"github.com/xDarkicex/sharesat/transport"
	"github.com/xDarkicex/sharesat/tree"
	"github.com/xDarkicex/sharesat/wire"
)

// Stage is where one epoch's session currently sits in its state
// machine, matching AnytimeSatClauseCommunicator::ClauseSharingStage.
type Stage int32

const (
	StagePreparingClauses Stage = iota
	StageMerging
	StageWaitingForClauseBcast
	StagePreparingFilter
	StageWaitingForFilterBcast
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StagePreparingClauses:
		return "preparing-clauses"
	case StageMerging:
		return "merging"
	case StageWaitingForClauseBcast:
		return "waiting-for-clause-bcast"
	case StagePreparingFilter:
		return "preparing-filter"
	case StageWaitingForFilterBcast:
		return "waiting-for-filter-bcast"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// filterBits is the fixed bitmap width carried by the filter
// all-reduce, standing in for ClauseMetadata::numBytes() — the
// original sizes this buffer to however many bytes its clause
// metadata scheme needs; here it is a single 32-bit word of refusal
// flags since this port has no metadata byte format of its own.
const filterBits = 1

// Session is one epoch's pair of in-flight all-reduce instances plus
// the stage they have reached.
type Session struct {
	mu    sync.Mutex
	epoch int32
	stage Stage

	clauseAR *allreduce.TreeAllReduce
	filterAR *allreduce.TreeAllReduce
}

// Stage returns the session's current stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// IsValid reports whether both all-reduce instances are still valid
// (neither was cancelled into an unusable state).
func (s *Session) IsValid() bool {
	return s.clauseAR.IsValid() && s.filterAR.IsValid()
}

// IsDestructible reports whether every background goroutine this
// session spawned has finished, matching Session::isDestructible.
func (s *Session) IsDestructible() bool {
	return s.clauseAR.IsDestructible() && s.filterAR.IsDestructible()
}

// elementPool supplies the scratch buffer every clause element encode
// builds its header+payload into, since a sharing job can run many
// epochs per second and each one builds several of these.
var elementPool = taskpool.NewInt32Pool(256, 1<<16)

// encodeClauseElement packs (numAggregated, winningSolverID, clauseBuffer)
// into one allreduce.Element, the wire shape for the clause
// all-reduce's contributions.
func encodeClauseElement(numAggregated int32, winningSolver int32, buf []int32) allreduce.Element {
	out := elementPool.Get(2 + len(buf))
	out = append(out, numAggregated, winningSolver)
	out = append(out, buf...)
	return allreduce.Element(out)
}

func decodeClauseElement(e allreduce.Element) (numAggregated int32, winningSolver int32, buf []int32) {
	if len(e) < 2 {
		return 0, -1, nil
	}
	return e[0], e[1], e[2:]
}

func encodeFilterElement(fb wire.FilterBuffer) allreduce.Element {
	return allreduce.Element(fb.Encode())
}

// useWatermarks controls whether the filter all-reduce's payload
// carries a leading min-epoch watermark, matching ClauseMetadata's
// enable flag being a global config setting rather than a per-message
// bit (wire.DecodeFilterBuffer needs this known out of band).
const useWatermarks = false

func decodeFilterElement(e allreduce.Element) wire.FilterBuffer {
	return wire.DecodeFilterBuffer([]int32(e), useWatermarks)
}

// Communicator drives one job's sharing epochs across the job's
// communication tree, on top of a sharing.Manager that holds the
// clause database and per-solver filters.
type Communicator struct {
	mu sync.Mutex

	jobID    string
	revision int32
	topo     tree.Topology
	endpoint transport.Endpoint

	mgr  *sharing.Manager
	host sharing.Host
	log  zerolog.Logger

	currentEpoch int32
	sessions     map[int32]*Session
}

// New builds a Communicator for one job revision, routed over
// endpoint according to topo.
func New(jobID string, revision int32, topo tree.Topology, endpoint transport.Endpoint, mgr *sharing.Manager, host sharing.Host, log zerolog.Logger) *Communicator {
	c := &Communicator{
		jobID:    jobID,
		revision: revision,
		topo:     topo,
		endpoint: endpoint,
		mgr:      mgr,
		host:     host,
		log:      log.With().Str("component", "comm").Str("job", jobID).Logger(),
		sessions: make(map[int32]*Session),
	}
	endpoint.RegisterHandler(wire.KindReduction, c.dispatch)
	endpoint.RegisterHandler(wire.KindBroadcast, c.dispatch)
	return c
}

func (c *Communicator) clauseBase(epoch int32) wire.Envelope {
	return wire.Envelope{JobID: c.jobID, Revision: c.revision, Epoch: epoch, Tag: wire.TagAllreduceClauses}
}

func (c *Communicator) filterBase(epoch int32) wire.Envelope {
	return wire.Envelope{JobID: c.jobID, Revision: c.revision, Epoch: epoch, Tag: wire.TagAllreduceFilter}
}

// BeginEpoch starts a new sharing round: exports this node's local
// clause contribution and starts the clause all-reduce producing.
// Sessions of earlier epochs may still be in flight; each epoch has
// its own Session.
func (c *Communicator) BeginEpoch(ctx context.Context) (int32, error) {
	c.mu.Lock()
	epoch := c.currentEpoch
	c.currentEpoch++

	if sess, ok := c.sessions[epoch]; ok {
		// dispatch already opened this epoch's session when a
		// neighbour's message arrived first; contribute to it rather
		// than replacing it and losing what it has received.
		c.mu.Unlock()
		bufferLimit := c.host.BufferLimit(1, sharing.RoleSelfAndChildren)
		sess.clauseAR.Produce(func() allreduce.Element {
			buf, _ := c.mgr.PrepareSharing(bufferLimit)
			return encodeClauseElement(1, -1, buf)
		})
		return epoch, nil
	}

	clauseNeutral := encodeClauseElement(0, -1, nil)
	clauseAgg := c.clauseAggregator()
	clauseAR := allreduce.New(ctx, c.topo, c.clauseBase(epoch), clauseNeutral, clauseAgg, c.endpoint)

	filterNeutral := encodeFilterElement(wire.NewFilterBuffer(filterBits, useWatermarks, 0))
	filterAgg := c.filterAggregator()
	filterAR := allreduce.New(ctx, c.topo, c.filterBase(epoch), filterNeutral, filterAgg, c.endpoint)

	sess := &Session{epoch: epoch, stage: StagePreparingClauses, clauseAR: clauseAR, filterAR: filterAR}
	c.sessions[epoch] = sess
	c.mu.Unlock()

	bufferLimit := c.host.BufferLimit(1, sharing.RoleSelfAndChildren)
	clauseAR.Produce(func() allreduce.Element {
		buf, _ := c.mgr.PrepareSharing(bufferLimit)
		return encodeClauseElement(1, -1, buf)
	})

	go c.driveEpoch(ctx, sess)
	return epoch, nil
}

// driveEpoch blocks (in its own goroutine) until the clause all-reduce
// for sess has a result, digests it, then runs the filter all-reduce
// as the trailing confirmation round.
func (c *Communicator) driveEpoch(ctx context.Context, sess *Session) {
	for !sess.clauseAR.HasResult() {
		if !sess.clauseAR.IsValid() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	_, _, buf := decodeClauseElement(sess.clauseAR.ExtractResult())

	sess.mu.Lock()
	sess.stage = StageMerging
	sess.mu.Unlock()

	c.mgr.DigestSharing(buf)

	sess.mu.Lock()
	sess.stage = StagePreparingFilter
	sess.mu.Unlock()

	sess.filterAR.Produce(func() allreduce.Element {
		return encodeFilterElement(wire.NewFilterBuffer(filterBits, useWatermarks, 0))
	})

	sess.mu.Lock()
	sess.stage = StageWaitingForFilterBcast
	sess.mu.Unlock()

	for !sess.filterAR.HasResult() {
		if !sess.filterAR.IsValid() {
			return
		}
		time.Sleep(time.Millisecond)
	}

	sess.mu.Lock()
	sess.stage = StageDone
	sess.mu.Unlock()
}

// clauseAggregator merges every child and local clause contribution
// through the shared database's merge machinery, capped at the
// buffer limit the aggregated contributor count is entitled to, and
// returns whatever did not fit to the clause database via
// ReturnClauses rather than dropping it.
func (c *Communicator) clauseAggregator() allreduce.Aggregator {
	return func(elems []allreduce.Element) allreduce.Element {
		var total int32
		winning := int32(-1)
		var buffers [][]int32
		for _, e := range elems {
			n, w, buf := decodeClauseElement(e)
			total += n
			if w >= 0 && (winning < 0 || w < winning) {
				winning = w
			}
			if len(buf) > 0 {
				buffers = append(buffers, buf)
			}
		}
		limit := c.host.BufferLimit(int(total), sharing.RoleAll)
		m := clause.NewMerger(limit)
		for _, b := range buffers {
			m.Add(clause.NewReader(b))
		}
		merged, excess := m.Merge(nil)
		if len(excess) > 0 {
			c.mgr.ReturnClauses(excess)
		}
		return encodeClauseElement(total, winning, merged)
	}
}

// filterAggregator OR-combines every contributor's refusal bitmap and
// keeps the furthest-along minimum-epoch watermark, matching the
// filter all-reduce's bitwise-OR-plus-max aggregator.
func (c *Communicator) filterAggregator() allreduce.Aggregator {
	return func(elems []allreduce.Element) allreduce.Element {
		fbs := make([]wire.FilterBuffer, len(elems))
		for i, e := range elems {
			fbs[i] = decodeFilterElement(e)
		}
		return encodeFilterElement(wire.MergeOR(fbs))
	}
}

// dispatch routes an incoming reduction/broadcast envelope to the
// clause or filter all-reduce instance of the session it addresses,
// lazily creating the session if this node has not yet called
// BeginEpoch for that epoch (it is an internal or leaf node reacting
// to its parent or child rather than initiating).
func (c *Communicator) dispatch(source int, env wire.Envelope) {
	c.mu.Lock()
	sess, ok := c.sessions[env.Epoch]
	if !ok {
		sess = c.lazySessionLocked(env.Epoch)
	}
	c.mu.Unlock()

	switch env.Tag {
	case wire.TagAllreduceClauses:
		sess.clauseAR.Receive(source, env)
	case wire.TagAllreduceFilter:
		sess.filterAR.Receive(source, env)
	}
}

// lazySessionLocked must be called with c.mu held.
func (c *Communicator) lazySessionLocked(epoch int32) *Session {
	ctx := context.Background()
	clauseNeutral := encodeClauseElement(0, -1, nil)
	clauseAR := allreduce.New(ctx, c.topo, c.clauseBase(epoch), clauseNeutral, c.clauseAggregator(), c.endpoint)
	filterNeutral := encodeFilterElement(wire.NewFilterBuffer(filterBits, useWatermarks, 0))
	filterAR := allreduce.New(ctx, c.topo, c.filterBase(epoch), filterNeutral, c.filterAggregator(), c.endpoint)
	sess := &Session{epoch: epoch, stage: StagePreparingClauses, clauseAR: clauseAR, filterAR: filterAR}
	c.sessions[epoch] = sess
	go c.driveEpoch(ctx, sess)
	return sess
}

// CancelEpoch cancels an in-flight session's two all-reduce instances,
// sending the neutral element upward in place of whatever this node
// was about to contribute.
func (c *Communicator) CancelEpoch(epoch int32) {
	c.mu.Lock()
	sess, ok := c.sessions[epoch]
	c.mu.Unlock()
	if !ok {
		return
	}
	sess.clauseAR.Cancel()
	sess.filterAR.Cancel()
}

// Session returns the session for epoch, if any, for tests and
// telemetry.
func (c *Communicator) Session(epoch int32) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[epoch]
	return s, ok
}
