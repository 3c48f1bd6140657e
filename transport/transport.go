// Package transport abstracts the send/receive/poll message-passing
// substrate every other component in this module runs on top of. The
// wire format of that substrate is explicitly out of scope (spec.md
// Non-goals); this package only fixes the Go-facing contract
// (Endpoint) so allreduce, comm, and history can be written and
// tested against an in-memory fake (memnet) instead of a real
// network stack.
//
// Grounded on MessageHandler's registerCallback/pollMessages dispatch
// (original_source/src/comm/message_handler.cpp) reworked as a
// per-endpoint mailbox using the sync.Cond-guarded queue idiom from
// the CptPie-DPLL-solver worker pool.
package transport

import (
	"context"
	"fmt"

	"github.com/xDarkicex/sharesat/wire"
)

// Handler processes one received envelope. The source rank is passed
// alongside since wire.Envelope itself only optionally carries it.
type Handler func(source int, env wire.Envelope)

// Endpoint is the capability every component needs from the
// messaging substrate: know your own rank, send to another rank, and
// register a callback for a message kind.
type Endpoint interface {
	Rank() int
	Send(ctx context.Context, dest int, env wire.Envelope) error
	RegisterHandler(kind wire.Kind, h Handler)
}

// ErrUnknownDestination is returned by a Send call naming a rank the
// underlying fake has no endpoint for.
type ErrUnknownDestination struct{ Rank int }

func (e *ErrUnknownDestination) Error() string {
	return fmt.Sprintf("transport: no endpoint registered for rank %d", e.Rank)
}
