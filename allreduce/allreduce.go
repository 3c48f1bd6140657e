// Package allreduce implements the asynchronous tree all-reduce used
// to aggregate and broadcast one value (a clause buffer, a filter
// bitmap, ...) across a job's binary communication tree, grounded on
// JobTreeAllReduction in
// original_source/src/comm/job_tree_all_reduction.hpp. The C++
// original drives its two background phases with std::future; this
// port uses goroutines, a sync.WaitGroup to track in-flight work for
// Wait, and transport.Endpoint in place of direct MPI
// sends.
package allreduce

import (
	"context"
	"sync"

	"github.com/xDarkicex/sharesat/transport"
	"github.com/xDarkicex/sharesat/tree"
	"github.com/xDarkicex/sharesat/wire"
)

// State is the lifecycle stage of one TreeAllReduce instance.
type State int32

const (
	StateIdle State = iota
	StateProducing
	StateGathering
	StateReducingUpward
	StateBroadcasting
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProducing:
		return "producing"
	case StateGathering:
		return "gathering"
	case StateReducingUpward:
		return "reducing-upward"
	case StateBroadcasting:
		return "broadcasting"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Element is one contribution to (or the result of) the reduction —
// a flat packed int32 payload, matching AllReduceElement.
type Element []int32

// Aggregator combines a local contribution with every received child
// contribution into one upward value.
type Aggregator func(elems []Element) Element

// TreeAllReduce drives one instance of the reduce-then-broadcast
// protocol. One instance is single-use: once a result is extracted it
// cannot be reused.
type TreeAllReduce struct {
	ctx        context.Context
	topo       tree.Topology
	base       wire.Envelope
	neutral    Element
	aggregator Aggregator
	endpoint   transport.Endpoint

	mu                  sync.Mutex
	state               State
	hasProducer         bool
	producing           bool
	localElem           Element
	localElemSet        bool
	childElems          []Element
	numExpectedChildren int
	aggregating         bool
	aggregatedElem      Element
	aggregatedSet       bool
	reductionDone       bool
	finished            bool
	valid               bool
	resultConsumed      bool

	wg sync.WaitGroup
}

// New creates a TreeAllReduce for the given session identity
// (base.Base() pins JobID/Revision/Epoch/Tag). ctx bounds any network
// sends issued by this instance's background work.
func New(ctx context.Context, topo tree.Topology, base wire.Envelope, neutral Element, aggregator Aggregator, endpoint transport.Endpoint) *TreeAllReduce {
	return &TreeAllReduce{
		ctx:                 ctx,
		topo:                topo,
		base:                base.Base(),
		neutral:             neutral,
		aggregator:          aggregator,
		endpoint:            endpoint,
		state:               StateIdle,
		numExpectedChildren: topo.NumChildren(),
		valid:               true,
	}
}

// Produce registers the local contribution function and runs it in a
// background goroutine, matching produce()'s ProcessWideThreadPool
// task in the original.
func (t *TreeAllReduce) Produce(localProducer func() Element) {
	t.mu.Lock()
	if t.hasProducer {
		t.mu.Unlock()
		panic("allreduce: Produce called twice on the same instance")
	}
	t.hasProducer = true
	t.producing = true
	t.state = StateProducing
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		elem := localProducer()
		t.mu.Lock()
		t.localElem = elem
		t.localElemSet = true
		t.producing = false
		t.mu.Unlock()
		t.advance()
	}()
}

// Receive processes an incoming envelope. It returns false if the
// envelope does not belong to this instance's session.
func (t *TreeAllReduce) Receive(source int, env wire.Envelope) bool {
	if !env.MatchesSession(t.base) {
		return false
	}
	switch env.Kind {
	case wire.KindReduction:
		t.mu.Lock()
		if !t.aggregating {
			t.childElems = append(t.childElems, Element(env.Payload))
			t.mu.Unlock()
			t.advance()
		} else {
			t.mu.Unlock()
		}
	case wire.KindBroadcast:
		t.receiveAndForwardFinal(Element(env.Payload))
	}
	return true
}

// advance re-checks whether the gather phase has completed (spawning
// the aggregator) or the aggregator has completed (forwarding
// upward), mirroring advance() in the original.
func (t *TreeAllReduce) advance() {
	t.mu.Lock()

	if t.finished {
		t.mu.Unlock()
		return
	}

	if len(t.childElems) == t.numExpectedChildren && t.hasProducer && !t.producing && !t.aggregating && !t.aggregatedSet {
		t.state = StateGathering
		elems := make([]Element, 0, len(t.childElems)+1)
		elems = append(elems, t.localElem)
		elems = append(elems, t.childElems...)
		t.aggregating = true
		t.mu.Unlock()

		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			result := t.aggregator(elems)
			t.mu.Lock()
			t.aggregatedElem = result
			t.aggregatedSet = true
			t.aggregating = false
			t.mu.Unlock()
			t.advance()
		}()
		return
	}

	if !t.aggregating && t.aggregatedSet && !t.reductionDone {
		t.reductionDone = true
		t.state = StateReducingUpward
		agg := t.aggregatedElem
		isRoot := t.topo.IsRoot()
		parent := t.topo.Parent
		t.mu.Unlock()

		if isRoot {
			t.receiveAndForwardFinal(agg)
		} else {
			env := t.base
			env.Kind = wire.KindReduction
			env.Payload = agg
			_ = t.endpoint.Send(t.ctx, parent, env)
		}
		return
	}

	t.mu.Unlock()
}

// Cancel aborts the instance. If the upward reduction had not yet
// completed, the neutral element is sent to the parent so the global
// reduction still terminates (spec.md §4.4).
func (t *TreeAllReduce) Cancel() {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return
	}
	done := t.reductionDone
	isRoot := t.topo.IsRoot()
	parent := t.topo.Parent
	t.finished = true
	t.valid = false
	t.mu.Unlock()

	if !done && !isRoot {
		env := t.base
		env.Kind = wire.KindReduction
		env.Payload = t.neutral
		_ = t.endpoint.Send(t.ctx, parent, env)
	}
}

func (t *TreeAllReduce) receiveAndForwardFinal(elem Element) {
	t.mu.Lock()
	t.finished = true
	t.state = StateBroadcasting
	t.base.Payload = elem
	children := t.topo.Children()
	t.mu.Unlock()

	for _, c := range children {
		env := t.base
		env.Kind = wire.KindBroadcast
		env.Payload = elem
		_ = t.endpoint.Send(t.ctx, c, env)
	}

	t.mu.Lock()
	t.state = StateFinished
	t.mu.Unlock()
}

// HasProducer reports whether Produce has been called.
func (t *TreeAllReduce) HasProducer() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasProducer
}

// IsValid reports whether this instance has not been cancelled or
// already had its result extracted.
func (t *TreeAllReduce) IsValid() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.valid
}

// HasResult reports whether the final result is present and not yet
// extracted.
func (t *TreeAllReduce) HasResult() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished && t.valid
}

// ExtractResult returns the final broadcast element. HasResult must
// be true; after this call HasResult returns false.
func (t *TreeAllReduce) ExtractResult() Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !(t.finished && t.valid) {
		panic("allreduce: ExtractResult called without a ready result")
	}
	t.valid = false
	return t.base.Payload
}

// State returns the current lifecycle stage, for telemetry and tests.
func (t *TreeAllReduce) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// IsDestructible reports whether it is safe to drop this instance
// without waiting for background work to finish.
func (t *TreeAllReduce) IsDestructible() bool {
	t.mu.Lock()
	producing, aggregating := t.producing, t.aggregating
	t.mu.Unlock()
	return !producing && !aggregating
}

// Wait blocks until any in-flight produce/aggregate goroutine
// completes, the Go analogue of the original destructor's
// future.get() drain.
func (t *TreeAllReduce) Wait() { t.wg.Wait() }
