// Command sharesatd runs an in-process demo of the clause-sharing
// pipeline: a handful of solvers, wired through a sharing.Manager and
// a comm.Communicator per simulated rank, talking over an in-memory
// transport.Network laid out on a binary tree. It exists to exercise
// the full BeginEpoch -> clause all-reduce -> digest -> filter
// all-reduce cycle end to end without a real cluster, mirroring the
// way bennypowers-cem's cmd package wraps a cobra root command around
// the library it demonstrates.
package main

import (
	"fmt"
	"os"

	"github.com/xDarkicex/sharesat/cmd/sharesatd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
