package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xDarkicex/sharesat/wire"
)

func TestSendDispatchesToRegisteredHandler(t *testing.T) {
	net := NewNetwork()
	defer net.Close()

	a := net.NewEndpoint(0)
	b := net.NewEndpoint(1)

	received := make(chan wire.Envelope, 1)
	b.RegisterHandler(wire.KindReduction, func(source int, env wire.Envelope) {
		require.Equal(t, 0, source)
		received <- env
	})

	env := wire.Envelope{JobID: "j", Epoch: 1, Kind: wire.KindReduction, Payload: []int32{7}}
	require.NoError(t, a.Send(context.Background(), 1, env))

	select {
	case got := <-received:
		require.Equal(t, []int32{7}, got.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatch")
	}
}

func TestSendToUnknownRankErrors(t *testing.T) {
	net := NewNetwork()
	defer net.Close()
	a := net.NewEndpoint(0)
	err := a.Send(context.Background(), 99, wire.Envelope{})
	require.Error(t, err)
}

func TestUnregisteredKindIsDropped(t *testing.T) {
	net := NewNetwork()
	defer net.Close()
	a := net.NewEndpoint(0)
	b := net.NewEndpoint(1)

	received := make(chan struct{}, 1)
	b.RegisterHandler(wire.KindBroadcast, func(source int, env wire.Envelope) {
		received <- struct{}{}
	})

	require.NoError(t, a.Send(context.Background(), 1, wire.Envelope{Kind: wire.KindReduction}))

	select {
	case <-received:
		t.Fatal("handler fired for an unregistered kind")
	case <-time.After(100 * time.Millisecond):
	}
}
