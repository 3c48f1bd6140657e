package transport

import (
	"context"
	"sync"

	"github.com/xDarkicex/sharesat/wire"
)

// mailbox is a thread-safe FIFO of (source, envelope) pairs, queued
// by Send and drained by one dispatch goroutine per endpoint.
type mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []inbound
	closed bool
}

type inbound struct {
	source int
	env    wire.Envelope
}

func newMailbox() *mailbox {
	m := &mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

func (m *mailbox) push(source int, env wire.Envelope) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.items = append(m.items, inbound{source: source, env: env})
	m.cond.Signal()
}

func (m *mailbox) pop() (inbound, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.items) == 0 && !m.closed {
		m.cond.Wait()
	}
	if len(m.items) == 0 {
		return inbound{}, false
	}
	it := m.items[0]
	m.items = m.items[1:]
	return it, true
}

func (m *mailbox) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		m.cond.Broadcast()
	}
}

// Network is an in-memory fake transport connecting a fixed set of
// ranks, used by tests and the demo CLI to run a multi-worker job
// tree end to end without a real network stack.
type Network struct {
	mu        sync.RWMutex
	endpoints map[int]*memEndpoint
}

// NewNetwork creates an empty network. Call NewEndpoint for every
// rank that should participate.
func NewNetwork() *Network {
	return &Network{endpoints: make(map[int]*memEndpoint)}
}

// NewEndpoint registers and returns the Endpoint for rank. It starts
// a background dispatch goroutine that must be stopped by calling the
// returned endpoint's Close (or by closing the whole Network).
func (n *Network) NewEndpoint(rank int) *memEndpoint {
	n.mu.Lock()
	defer n.mu.Unlock()
	e := &memEndpoint{
		rank:     rank,
		net:      n,
		inbox:    newMailbox(),
		handlers: make(map[wire.Kind]Handler),
		done:     make(chan struct{}),
	}
	n.endpoints[rank] = e
	go e.dispatchLoop()
	return e
}

// Close stops every endpoint's dispatch loop.
func (n *Network) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.endpoints {
		e.Close()
	}
}

type memEndpoint struct {
	rank       int
	net        *Network
	inbox      *mailbox
	handlersMu sync.RWMutex
	handlers   map[wire.Kind]Handler
	done       chan struct{}
	closeOnce  sync.Once
}

func (e *memEndpoint) Rank() int { return e.rank }

func (e *memEndpoint) Send(ctx context.Context, dest int, env wire.Envelope) error {
	e.net.mu.RLock()
	target, ok := e.net.endpoints[dest]
	e.net.mu.RUnlock()
	if !ok {
		return &ErrUnknownDestination{Rank: dest}
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	target.inbox.push(e.rank, env)
	return nil
}

func (e *memEndpoint) RegisterHandler(kind wire.Kind, h Handler) {
	e.handlersMu.Lock()
	defer e.handlersMu.Unlock()
	e.handlers[kind] = h
}

func (e *memEndpoint) dispatchLoop() {
	for {
		it, ok := e.inbox.pop()
		if !ok {
			return
		}
		e.handlersMu.RLock()
		h, ok := e.handlers[it.env.Kind]
		e.handlersMu.RUnlock()
		if ok {
			h(it.source, it.env)
		}
	}
}

// Close stops this endpoint's dispatch loop. Safe to call more than
// once.
func (e *memEndpoint) Close() {
	e.closeOnce.Do(func() {
		e.inbox.close()
		close(e.done)
	})
}
