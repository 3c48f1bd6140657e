// Package telemetry wires structured logging and metrics shared by
// every component in this module, grounded on the
// logger.With().Str("component", ...).Logger() scoping idiom from
// df2712eb_joaofoltran-pg-migrator's Pipeline and on prometheus's
// standard CounterVec/HistogramVec + MustRegister pattern.
package telemetry

import (
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog.Logger writing to stderr, scoped to the
// given component name the way every package in this module expects
// to receive its logger.
func NewLogger(component string) zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Str("component", component).Logger()
}

// Histograms groups the clause-lifecycle counters named in spec.md
// §7/§8: produced, filtered, admitted, dropped, returned, and deleted-
// in-slot, each a prometheus CounterVec labelled by clause length
// (lengths above 64 share the "64+" label).
type Histograms struct {
	Produced        *prometheus.CounterVec
	FailedFilter    *prometheus.CounterVec
	Admitted        *prometheus.CounterVec
	DroppedBeforeDB *prometheus.CounterVec
	ReturnedToDB    *prometheus.CounterVec
	DeletedInSlot   *prometheus.CounterVec
}

// NewHistograms creates and registers every counter against reg. Pass
// prometheus.NewRegistry() in tests to avoid polluting the default
// registry across parallel test binaries.
func NewHistograms(reg prometheus.Registerer, namespace string) *Histograms {
	mk := func(name, help string) *prometheus.CounterVec {
		cv := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "clauses",
			Name:      name,
			Help:      help,
		}, []string{"length"})
		reg.MustRegister(cv)
		return cv
	}
	return &Histograms{
		Produced:        mk("produced_total", "clauses produced by solver threads"),
		FailedFilter:    mk("failed_filter_total", "clauses rejected by a duplicate filter"),
		Admitted:        mk("admitted_total", "clauses admitted into the clause database"),
		DroppedBeforeDB: mk("dropped_before_db_total", "clauses dropped before reaching the database"),
		ReturnedToDB:    mk("returned_to_db_total", "clauses returned to the database after a failed merge"),
		DeletedInSlot:   mk("deleted_in_slot_total", "clauses evicted from a database slot"),
	}
}

func lengthLabel(n int) string {
	if n <= 0 {
		return "0"
	}
	if n > 64 {
		return "64+"
	}
	return strconv.Itoa(n)
}

// observe increments cv's counter for length's label; the exported
// one-line wrappers below each pass it their own field.
func (h *Histograms) observe(cv *prometheus.CounterVec, length int) {
	cv.WithLabelValues(lengthLabel(length)).Inc()
}

func (h *Histograms) Produce(length int)      { h.observe(h.Produced, length) }
func (h *Histograms) FailFilter(length int)   { h.observe(h.FailedFilter, length) }
func (h *Histograms) Admit(length int)        { h.observe(h.Admitted, length) }
func (h *Histograms) DropBeforeDB(length int) { h.observe(h.DroppedBeforeDB, length) }
func (h *Histograms) ReturnToDB(length int)   { h.observe(h.ReturnedToDB, length) }
func (h *Histograms) DeleteInSlot(length int) { h.observe(h.DeletedInSlot, length) }
