package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeMatchesSession(t *testing.T) {
	base := Envelope{JobID: "j1", Revision: 2, Epoch: 3, Tag: TagAllreduceClauses}
	same := Envelope{JobID: "j1", Revision: 2, Epoch: 3, Tag: TagAllreduceClauses, Kind: KindBroadcast}
	diffEpoch := base
	diffEpoch.Epoch = 4

	require.True(t, same.MatchesSession(base))
	require.False(t, diffEpoch.MatchesSession(base))
}

func TestFilterBufferSetAndEncodeRoundTrip(t *testing.T) {
	f := NewFilterBuffer(40, true, 7)
	f.SetRefused(0)
	f.SetRefused(33)

	buf := f.Encode()
	got := DecodeFilterBuffer(buf, true)
	require.Equal(t, uint64(7), got.MinEpoch)
	require.True(t, got.IsRefused(0))
	require.True(t, got.IsRefused(33))
	require.False(t, got.IsRefused(1))
}

func TestMergeORCombinesBitsAndWatermark(t *testing.T) {
	a := NewFilterBuffer(32, true, 5)
	a.SetRefused(1)
	b := NewFilterBuffer(32, true, 9)
	b.SetRefused(2)

	merged := MergeOR([]FilterBuffer{a, b})
	require.Equal(t, uint64(9), merged.MinEpoch)
	require.True(t, merged.IsRefused(1))
	require.True(t, merged.IsRefused(2))
	require.False(t, merged.IsRefused(3))
}
