package comm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xDarkicex/sharesat/allreduce"
	"github.com/xDarkicex/sharesat/cdb"
	"github.com/xDarkicex/sharesat/clause"
	"github.com/xDarkicex/sharesat/sharing"
	"github.com/xDarkicex/sharesat/telemetry"
	"github.com/xDarkicex/sharesat/transport"
	"github.com/xDarkicex/sharesat/tree"
	"github.com/xDarkicex/sharesat/wire"
)

type fakeHost struct {
	mu       sync.Mutex
	imported [][]clause.Clause
}

func (h *fakeHost) CurrentRevision(solverID int) int32 { return 0 }

func (h *fakeHost) ImportClauseBatch(solverID int, clauses []clause.Clause, accept func(clause.Clause) bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var kept []clause.Clause
	for _, c := range clauses {
		if accept(c) {
			kept = append(kept, c)
		}
	}
	h.imported = append(h.imported, kept)
}

func (h *fakeHost) SubmitLearnedClause(solverID int, c clause.Clause) {}

func (h *fakeHost) BufferLimit(aggregated int, role sharing.Role) int { return 1 << 20 }

func (h *fakeHost) totalImported() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, batch := range h.imported {
		n += len(batch)
	}
	return n
}

type node struct {
	endpoint transport.Endpoint
	mgr      *sharing.Manager
	host     *fakeHost
	comm     *Communicator
}

func setupCommTree(t *testing.T) (*transport.Network, map[int]*node) {
	net := transport.NewNetwork()
	topos := map[int]tree.Topology{
		0: tree.BinaryTreeTopology(0, 3),
		1: tree.BinaryTreeTopology(1, 3),
		2: tree.BinaryTreeTopology(2, 3),
	}
	nodes := make(map[int]*node)
	for rank, topo := range topos {
		ep := net.NewEndpoint(rank)
		host := &fakeHost{}
		hist := telemetry.NewHistograms(prometheus.NewRegistry(), "comm_test")
		cfg := sharing.Config{NumSolvers: 1, CDB: cdb.DefaultOptions(), FilterCapacityPerLen: 1000, ClauseFilterClearSecs: 3600}
		mgr := sharing.NewManager(host, cfg, hist, zerolog.Nop())
		c := New("job-1", 0, topo, ep, mgr, host, zerolog.Nop())
		nodes[rank] = &node{endpoint: ep, mgr: mgr, host: host, comm: c}
	}
	return net, nodes
}

func waitForStage(t *testing.T, c *Communicator, epoch int32, stage Stage) {
	deadline := time.After(2 * time.Second)
	for {
		if sess, ok := c.Session(epoch); ok && sess.Stage() == stage {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("epoch %d never reached stage %v", epoch, stage)
		case <-time.After(time.Millisecond):
		}
	}
}

func TestThreeNodeEpochMergesLearnedClauseEverywhere(t *testing.T) {
	net, nodes := setupCommTree(t)
	defer net.Close()

	c := clause.New([]clause.Literal{1, 2, 3}, 2)
	nodes[1].mgr.LearnedClauseCallback(0, 0, c, 0)

	ctx := context.Background()
	var epoch int32
	for _, n := range nodes {
		e, err := n.comm.BeginEpoch(ctx)
		require.NoError(t, err)
		epoch = e
	}

	for _, n := range nodes {
		waitForStage(t, n.comm, epoch, StageDone)
	}

	for rank, n := range nodes {
		if rank == 1 {
			// Rank 1 learned the clause itself, so its own solver
			// filter already holds it and the digest skips it there.
			require.Zero(t, n.host.totalImported(), "rank %d re-imported its own clause", rank)
			continue
		}
		require.NotZero(t, n.host.totalImported(), "rank %d never imported the shared clause", rank)
	}
}

func TestEncodeDecodeClauseElementRoundTrip(t *testing.T) {
	buf := []int32{7, 2, 3}
	e := encodeClauseElement(4, 2, buf)
	n, w, got := decodeClauseElement(e)
	require.Equal(t, int32(4), n)
	require.Equal(t, int32(2), w)
	require.Equal(t, buf, got)
}

func TestFilterAggregatorCombinesBitsAcrossContributors(t *testing.T) {
	var c Communicator
	agg := c.filterAggregator()

	a := wire.NewFilterBuffer(filterBits, useWatermarks, 0)
	a.SetRefused(0)
	b := wire.NewFilterBuffer(filterBits, useWatermarks, 0)

	out := decodeFilterElement(agg([]allreduce.Element{encodeFilterElement(a), encodeFilterElement(b)}))
	require.True(t, out.IsRefused(0))
}
