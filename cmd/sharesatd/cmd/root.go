package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sharesatd",
	Short: "Run a local clause-sharing demo job",
	Long: `sharesatd simulates one distributed SAT job's clause-sharing
subsystem on a single machine: a fixed number of ranks, each owning a
pool of CDCL solvers, exchange learned clauses over an in-memory
binary-tree transport via the same tree all-reduce and epoch state
machine a real cluster deployment would use.`,
}

// Execute runs the root command. main calls this once.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose logging output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func newViper() *viper.Viper {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
	v.SetEnvPrefix("sharesatd")
	v.AutomaticEnv()
	return v
}
