// Package history implements the clause history: a per-job replay log
// that buffers learned clauses by epoch window so a worker that
// rejoins (or a child that subscribes) can catch up on everything it
// missed, grounded on ClauseHistory in
// original_source/src/app/sat/clause_history.hpp.
package history

import (
	"context"
	"sync"

	"github.com/xDarkicex/sharesat/clause"
	"github.com/xDarkicex/sharesat/transport"
	"github.com/xDarkicex/sharesat/wire"
)

// NoRank marks a Subscription with no corresponding worker.
const NoRank = -1

// Entry is one aggregation window: up to AggregationFactor clause
// buffers, one per epoch offset within the window, merged into a
// single buffer once every offset has arrived.
type Entry struct {
	Buffers    [][]int32
	Aggregated []bool
}

func newEntry(aggregationFactor int) Entry {
	return Entry{Aggregated: make([]bool, aggregationFactor)}
}

// NumAggregated counts how many offsets within the window have
// arrived.
func (e Entry) NumAggregated() int {
	n := 0
	for _, b := range e.Aggregated {
		if b {
			n++
		}
	}
	return n
}

// Empty reports whether no offset has arrived yet.
func (e Entry) Empty() bool { return e.NumAggregated() == 0 }

// Subscription is one outbound or inbound replay stream: send every
// window in [NextIndex, EndIndex) to CorrespondingRank as it becomes
// available, then stop.
type Subscription struct {
	CorrespondingRank int
	NextIndex         int
	EndIndex          int
}

func (s Subscription) active() bool { return s.CorrespondingRank != NoRank }

// Config bundles the construction parameters clause_history.hpp reads
// out of Parameters.
type Config struct {
	AggregationFactor int
	NumSTMSlots       int
	STMBufferSize     int
	LTMBufferSize     int
	UseChecksums      bool
}

// Log is the clause history for one job on one worker.
type Log struct {
	mu sync.Mutex

	cfg Config

	history       []Entry
	missingRanges [][2]int32
	latestEpoch   int32 // -1 means none seen yet

	subscribers  []Subscription
	subscription Subscription // this worker's own outbound ask, if any

	endpoint   transport.Endpoint
	jobID      string
	revision   int32
	parentRank int
}

// New creates an empty Log for jobID, rooted at parentRank (the rank
// this worker asks for missing history, tree.NoRank if this worker is
// the root and has nobody to ask).
func New(cfg Config, endpoint transport.Endpoint, jobID string, parentRank int) *Log {
	return &Log{
		cfg:          cfg,
		latestEpoch:  -1,
		subscription: Subscription{CorrespondingRank: NoRank},
		endpoint:     endpoint,
		jobID:        jobID,
		parentRank:   parentRank,
	}
}

func (l *Log) epochToIndexAndOffset(epoch int32) (index int, offset int) {
	af := int32(l.cfg.AggregationFactor)
	return int(epoch / af), int(epoch % af)
}

func (l *Log) indexToFirstEpoch(index int) int32 {
	return int32(index) * int32(l.cfg.AggregationFactor)
}

func (l *Log) isSTM(index int) bool {
	latestIndex, _ := l.epochToIndexAndOffset(l.latestEpoch)
	return latestIndex-index <= l.cfg.NumSTMSlots
}

func (l *Log) isBatchComplete(index int) bool {
	return index < len(l.history) && l.history[index].NumAggregated() == l.cfg.AggregationFactor
}

func (l *Log) isEpochPresent(epoch int32) bool {
	index, offset := l.epochToIndexAndOffset(epoch)
	if index >= len(l.history) {
		return false
	}
	return l.history[index].Aggregated[offset]
}

// AddEpoch reacts to one incoming history batch (or a locally
// produced one): records it at its window, merges the window once
// complete, tracks missing-epoch gaps, and drives this worker's own
// subscription forward.
func (l *Log) AddEpoch(ctx context.Context, epoch int32, clauses []int32, entireIndex bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	index, offset := l.epochToIndexAndOffset(epoch)

	if !l.isEpochPresent(epoch) {
		for index >= len(l.history) {
			l.history = append(l.history, newEntry(l.cfg.AggregationFactor))
		}
		l.history[index].Buffers = append(l.history[index].Buffers, clauses)
		if entireIndex {
			for i := range l.history[index].Aggregated {
				l.history[index].Aggregated[i] = true
			}
		} else {
			l.history[index].Aggregated[offset] = true
		}
		if l.isBatchComplete(index) {
			budget := l.cfg.LTMBufferSize
			if l.isSTM(index) {
				budget = l.cfg.STMBufferSize
			}
			merged := l.mergeBuffers(l.history[index].Buffers, budget)
			l.history[index].Buffers = [][]int32{merged}
		}
	}

	l.shrinkMissingRanges()
	if epoch > l.latestEpoch+1 {
		if n := len(l.missingRanges); n > 0 && l.missingRanges[n-1][1] == l.latestEpoch+1 {
			l.missingRanges[n-1][1] = epoch + 1
		} else {
			l.missingRanges = append(l.missingRanges, [2]int32{l.latestEpoch + 1, epoch + 1})
		}
	}

	l.advanceOwnSubscription(ctx, index)

	prevLatest := l.latestEpoch
	if epoch > l.latestEpoch {
		l.latestEpoch = epoch
	}
	if l.latestEpoch > prevLatest && int(l.latestEpoch) >= l.cfg.NumSTMSlots {
		indexToReduce := int(l.latestEpoch) - l.cfg.NumSTMSlots
		if l.isBatchComplete(indexToReduce) && len(l.history[indexToReduce].Buffers) > 0 &&
			clauseCount(l.history[indexToReduce].Buffers[0]) > l.cfg.LTMBufferSize {
			reduced := l.mergeBuffers(l.history[indexToReduce].Buffers[:1], l.cfg.LTMBufferSize)
			l.history[indexToReduce].Buffers[0] = reduced
		}
	}
}

// clauseCount is a coarse stand-in for "how many clauses this buffer
// holds", used only to decide whether a long-term slot has grown past
// its budget and needs re-merging under that budget.
func clauseCount(buf []int32) int {
	n := 0
	r := clause.NewReader(buf)
	for {
		_, _, ok := r.Next()
		if !ok {
			break
		}
		n++
	}
	return n
}

func (l *Log) mergeBuffers(buffers [][]int32, literalBudget int) []int32 {
	m := clause.NewMerger(literalBudget)
	for _, b := range buffers {
		m.Add(clause.NewReader(b))
	}
	merged, _ := m.Merge(nil)
	return merged
}

// shrinkMissingRanges drops epochs that have since arrived from the
// front and back of each tracked gap, erasing a range once it closes.
func (l *Log) shrinkMissingRanges() {
	kept := l.missingRanges[:0]
	for _, r := range l.missingRanges {
		from, to := r[0], r[1]
		for from < to && l.isEpochPresent(from) {
			from++
		}
		for from < to && l.isEpochPresent(to-1) {
			to--
		}
		if from != to {
			kept = append(kept, [2]int32{from, to})
		}
	}
	l.missingRanges = kept
}

// advanceOwnSubscription updates this worker's outbound subscription
// after absorbing index, closing it once it reaches its end, and
// opening a new one against the oldest missing range if none is
// active.
func (l *Log) advanceOwnSubscription(ctx context.Context, index int) {
	if l.subscription.active() {
		l.subscription.NextIndex = index + 1
		if l.subscription.NextIndex == l.subscription.EndIndex {
			l.subscription = Subscription{CorrespondingRank: NoRank}
		}
	}
	if !l.subscription.active() && len(l.missingRanges) > 0 && l.parentRank != NoRank {
		from, to := l.missingRanges[0][0], l.missingRanges[0][1]
		beginIdx, _ := l.epochToIndexAndOffset(from)
		endIdx, _ := l.epochToIndexAndOffset(to)
		l.subscription = Subscription{CorrespondingRank: l.parentRank, NextIndex: beginIdx, EndIndex: endIdx}

		env := wire.Envelope{JobID: l.jobID, Revision: l.revision, Tag: wire.TagHistorySubscribe,
			Kind: wire.KindDirect, Payload: []int32{int32(beginIdx), int32(endIdx)}}
		_ = l.endpoint.Send(ctx, l.parentRank, env)
	}
}

// SendNextBatches pushes one completed window to every subscriber
// whose next window is ready, erasing any subscription that has
// delivered its full range. Call periodically, but not so often that
// subscribers have no time to digest a batch before the next arrives.
func (l *Log) SendNextBatches(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.subscribers[:0]
	for _, sub := range l.subscribers {
		if !l.isBatchComplete(sub.NextIndex) {
			kept = append(kept, sub)
			continue
		}
		env := wire.Envelope{
			JobID: l.jobID, Revision: l.revision,
			Epoch: l.indexToFirstEpoch(sub.NextIndex),
			Tag:   wire.TagHistoryBatch, Kind: wire.KindDirect,
			Payload: l.history[sub.NextIndex].Buffers[0],
		}
		_ = l.endpoint.Send(ctx, sub.CorrespondingRank, env)

		sub.NextIndex++
		if sub.NextIndex != sub.EndIndex {
			kept = append(kept, sub)
		}
	}
	l.subscribers = kept
}

// OnSubscribe registers an inbound subscription from source for
// windows [beginIndex, endIndex).
func (l *Log) OnSubscribe(source, beginIndex, endIndex int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, Subscription{CorrespondingRank: source, NextIndex: beginIndex, EndIndex: endIndex})
}

// OnUnsubscribe removes any inbound subscription from source.
func (l *Log) OnUnsubscribe(source int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.subscribers[:0]
	for _, s := range l.subscribers {
		if s.CorrespondingRank != source {
			kept = append(kept, s)
		}
	}
	l.subscribers = kept
}

// OnSuspend cancels this worker's own outbound subscription, if any,
// telling the parent to stop sending. Must be called whenever the job
// suspends execution.
func (l *Log) OnSuspend(ctx context.Context) {
	l.mu.Lock()
	if !l.subscription.active() {
		l.mu.Unlock()
		return
	}
	rank := l.subscription.CorrespondingRank
	l.subscription = Subscription{CorrespondingRank: NoRank}
	l.mu.Unlock()

	env := wire.Envelope{JobID: l.jobID, Revision: l.revision, Tag: wire.TagHistoryUnsubscribe, Kind: wire.KindDirect}
	_ = l.endpoint.Send(ctx, rank, env)
}

// MissingRanges returns a snapshot of the currently tracked gaps, for
// telemetry and tests.
func (l *Log) MissingRanges() [][2]int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][2]int32, len(l.missingRanges))
	copy(out, l.missingRanges)
	return out
}
