// Package config defines the recognized options for this module's
// sharing pipeline and loads them through spf13/viper, mirroring the
// mapstructure-tagged option struct style used across the retrieval
// pack (e.g. bennypowers-cem's CemConfig) and the parameter names the
// sharing manager and clause database read out of Parameters in
// original_source/src/util/params.hpp.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Options holds every tunable named in spec.md §6.
type Options struct {
	// AggregationFactor sizes each clause-history replay window: how
	// many epochs' worth of clauses one history window batches
	// together before it is eligible for replay.
	AggregationFactor int `mapstructure:"aggregationFactor"`

	// HistoryShortTermSlots bounds the number of recent windows held
	// in the clause history's short-term memory tier.
	HistoryShortTermSlots int `mapstructure:"historyShortTermSlots"`

	// ClauseBufferBaseSize is the chunk size new clause-database slots
	// allocate.
	ClauseBufferBaseSize int `mapstructure:"clauseBufferBaseSize"`

	// ClauseBufferDiscountFactor is the per-tree-level factor for the
	// literal budget handed to descendants further from the root. It is
	// loaded and defaulted here; no package in this module reads it.
	ClauseBufferDiscountFactor float64 `mapstructure:"clauseBufferDiscountFactor"`

	// StrictClauseLengthLimit is the clause length limit. The demo CLI
	// passes it to the clause database as cdb.Options.MaxClauseLength,
	// which sizes its histograms and filters; a longer clause is not
	// rejected.
	StrictClauseLengthLimit int32 `mapstructure:"strictClauseLengthLimit"`

	// StrictLBDLimit is the LBD limit. It is validated here; no package
	// in this module reads it, so no clause is rejected for its LBD.
	StrictLBDLimit int32 `mapstructure:"strictLbdLimit"`

	// QualityClauseLengthLimit and QualityLBDLimit define the
	// "high quality" clause envelope. No package in this module reads
	// them; export order comes from the slot ordering alone.
	QualityClauseLengthLimit int32 `mapstructure:"qualityClauseLengthLimit"`
	QualityLBDLimit          int32 `mapstructure:"qualityLbdLimit"`

	// MaxLBDPartitioningSize is the clause length threshold at or below
	// which the database partitions by exact (length, LBD); see
	// clause.ForClause.
	MaxLBDPartitioningSize int32 `mapstructure:"maxLbdPartitioningSize"`

	// NumChunksForExport bounds the clause database's total chunk
	// budget across every slot.
	NumChunksForExport int `mapstructure:"numChunksForExport"`

	// ClauseFilterClearInterval is the wall-clock interval, in
	// seconds, after which digestSharing clears every duplicate
	// filter. Zero means "clear every round".
	ClauseFilterClearInterval float64 `mapstructure:"clauseFilterClearInterval"`

	// UseChecksums names the envelope checksum setting. No package in
	// this module reads it, and nothing sets wire.Envelope.Checksum.
	UseChecksums bool `mapstructure:"useChecksums"`

	// GroupClausesByLengthLBDSum selects the coarse-bucket shape for
	// clauses beyond MaxLBDPartitioningSize (see clause.ForClause's
	// groupBySum parameter).
	GroupClausesByLengthLBDSum bool `mapstructure:"groupClausesByLengthLbdSum"`

	// CollectClauseHistory names the history package's replay-log
	// switch. No package in this module reads it; history.Log records
	// whatever it is given regardless of this setting.
	CollectClauseHistory bool `mapstructure:"collectClauseHistory"`
}

// Default returns the option set used by tests and the demo CLI.
func Default() Options {
	return Options{
		AggregationFactor:          4,
		HistoryShortTermSlots:      8,
		ClauseBufferBaseSize:       128,
		ClauseBufferDiscountFactor: 0.25,
		StrictClauseLengthLimit:    30,
		StrictLBDLimit:             30,
		QualityClauseLengthLimit:   8,
		QualityLBDLimit:            4,
		MaxLBDPartitioningSize:     2,
		NumChunksForExport:         64,
		ClauseFilterClearInterval:  10,
		UseChecksums:               false,
		GroupClausesByLengthLBDSum: false,
		CollectClauseHistory:       true,
	}
}

// Load reads Options from v, which the caller is expected to have
// already pointed at a config file and/or environment prefix (e.g.
// viper.New() + v.SetConfigFile(path) + v.AutomaticEnv()), falling
// back to Default() for anything v does not override.
func Load(v *viper.Viper) (Options, error) {
	opts := Default()
	bindDefaults(v, opts)
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func bindDefaults(v *viper.Viper, d Options) {
	v.SetDefault("aggregationFactor", d.AggregationFactor)
	v.SetDefault("historyShortTermSlots", d.HistoryShortTermSlots)
	v.SetDefault("clauseBufferBaseSize", d.ClauseBufferBaseSize)
	v.SetDefault("clauseBufferDiscountFactor", d.ClauseBufferDiscountFactor)
	v.SetDefault("strictClauseLengthLimit", d.StrictClauseLengthLimit)
	v.SetDefault("strictLbdLimit", d.StrictLBDLimit)
	v.SetDefault("qualityClauseLengthLimit", d.QualityClauseLengthLimit)
	v.SetDefault("qualityLbdLimit", d.QualityLBDLimit)
	v.SetDefault("maxLbdPartitioningSize", d.MaxLBDPartitioningSize)
	v.SetDefault("numChunksForExport", d.NumChunksForExport)
	v.SetDefault("clauseFilterClearInterval", d.ClauseFilterClearInterval)
	v.SetDefault("useChecksums", d.UseChecksums)
	v.SetDefault("groupClausesByLengthLbdSum", d.GroupClausesByLengthLBDSum)
	v.SetDefault("collectClauseHistory", d.CollectClauseHistory)
}

// Validate rejects option combinations that would violate the
// invariants the rest of the module assumes hold.
func Validate(o Options) error {
	if o.StrictClauseLengthLimit < 1 {
		return fmt.Errorf("config: strictClauseLengthLimit must be >= 1, got %d", o.StrictClauseLengthLimit)
	}
	if o.StrictLBDLimit < 1 {
		return fmt.Errorf("config: strictLbdLimit must be >= 1, got %d", o.StrictLBDLimit)
	}
	if o.MaxLBDPartitioningSize < 0 {
		return fmt.Errorf("config: maxLbdPartitioningSize must be >= 0, got %d", o.MaxLBDPartitioningSize)
	}
	if o.AggregationFactor < 1 {
		return fmt.Errorf("config: aggregationFactor must be >= 1, got %d", o.AggregationFactor)
	}
	if o.HistoryShortTermSlots < 1 {
		return fmt.Errorf("config: historyShortTermSlots must be >= 1, got %d", o.HistoryShortTermSlots)
	}
	if o.NumChunksForExport < 1 {
		return fmt.Errorf("config: numChunksForExport must be >= 1, got %d", o.NumChunksForExport)
	}
	if o.ClauseBufferBaseSize < 1 {
		return fmt.Errorf("config: clauseBufferBaseSize must be >= 1, got %d", o.ClauseBufferBaseSize)
	}
	if o.ClauseFilterClearInterval < 0 {
		return fmt.Errorf("config: clauseFilterClearInterval must be >= 0, got %f", o.ClauseFilterClearInterval)
	}
	return nil
}
