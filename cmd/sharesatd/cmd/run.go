package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xDarkicex/sharesat/cdb"
	"github.com/xDarkicex/sharesat/comm"
	"github.com/xDarkicex/sharesat/config"
	"github.com/xDarkicex/sharesat/sharing"
	"github.com/xDarkicex/sharesat/solverhost"
	"github.com/xDarkicex/sharesat/telemetry"
	"github.com/xDarkicex/sharesat/transport"
	"github.com/xDarkicex/sharesat/tree"
)

var (
	flagRanks      int
	flagSolvers    int
	flagEpochs     int
	flagEpochPause time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a simulated job and drive a few sharing epochs",
	RunE:  runJob,
}

func init() {
	runCmd.Flags().IntVar(&flagRanks, "ranks", 3, "number of simulated workers")
	runCmd.Flags().IntVar(&flagSolvers, "solvers-per-rank", 1, "CDCL solvers owned by each worker")
	runCmd.Flags().IntVar(&flagEpochs, "epochs", 3, "number of sharing epochs to drive")
	runCmd.Flags().DurationVar(&flagEpochPause, "epoch-pause", 50*time.Millisecond, "pause between epochs")
	rootCmd.AddCommand(runCmd)
}

// rankNode bundles everything one simulated worker owns: its solver
// pool (doubling as its sharing.Host), the manager the pool feeds,
// and the communicator that runs this rank's side of each epoch.
type rankNode struct {
	rank int
	pool *solverhost.Pool
	mgr  *sharing.Manager
	comm *comm.Communicator
}

func runJob(cobraCmd *cobra.Command, args []string) error {
	jobID := uuid.NewString()
	log := telemetry.NewLogger("sharesatd").With().Str("job", jobID).Logger()

	opts, err := config.Load(newViper())
	if err != nil {
		return fmt.Errorf("sharesatd: %w", err)
	}
	cdbOpts := cdb.DefaultOptions()
	cdbOpts.MaxClauseLength = opts.StrictClauseLengthLimit
	cdbOpts.MaxLBDPartitioningSize = opts.MaxLBDPartitioningSize
	cdbOpts.GroupClausesBySum = opts.GroupClausesByLengthLBDSum
	cdbOpts.ChunkSize = opts.ClauseBufferBaseSize
	cdbOpts.MaxTotalChunks = opts.NumChunksForExport
	shareCfg := sharing.Config{
		NumSolvers:            flagSolvers,
		CDB:                   cdbOpts,
		FilterCapacityPerLen:  int32(1000),
		ClauseFilterClearSecs: opts.ClauseFilterClearInterval,
	}

	net := transport.NewNetwork()
	defer net.Close()

	reg := prometheus.NewRegistry()
	nodes := make([]*rankNode, flagRanks)
	for rank := 0; rank < flagRanks; rank++ {
		topo := tree.BinaryTreeTopology(rank, flagRanks)
		endpoint := net.NewEndpoint(rank)
		pool := solverhost.NewPool(flagSolvers)
		hist := telemetry.NewHistograms(reg, fmt.Sprintf("sharesatd_rank%d", rank))
		rankLog := log.With().Int("rank", rank).Logger()
		mgr := sharing.NewManager(pool, shareCfg, hist, rankLog)
		pool.BindManager(mgr)
		c := comm.New(jobID, 0, topo, endpoint, mgr, pool, rankLog)
		nodes[rank] = &rankNode{rank: rank, pool: pool, mgr: mgr, comm: c}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(flagEpochs)*(flagEpochPause+time.Second))
	defer cancel()

	for e := 0; e < flagEpochs; e++ {
		if err := driveEpoch(ctx, nodes); err != nil {
			return err
		}
		time.Sleep(flagEpochPause)
	}

	log.Info().Int("epochsRun", flagEpochs).Msg("demo job complete")
	return nil
}

// driveEpoch begins one epoch on every rank concurrently and waits
// for all of them to finish, the single-epoch analog of the
// per-worker task group a real deployment runs under one job.
func driveEpoch(ctx context.Context, nodes []*rankNode) error {
	var g errgroup.Group
	epochs := make([]int32, len(nodes))
	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			epoch, err := n.comm.BeginEpoch(ctx)
			if err != nil {
				return fmt.Errorf("rank %d: begin epoch: %w", n.rank, err)
			}
			epochs[i] = epoch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	deadline := time.After(2 * time.Second)
	for _, n := range nodes {
		for {
			sess, ok := n.comm.Session(epochs[n.rank])
			if ok && sess.Stage() == comm.StageDone {
				break
			}
			select {
			case <-deadline:
				return fmt.Errorf("rank %d: epoch %d did not complete in time", n.rank, epochs[n.rank])
			case <-time.After(time.Millisecond):
			}
		}
	}
	return nil
}
