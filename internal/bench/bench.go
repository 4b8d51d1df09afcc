// Package bench times batches of prefix sums and updates on trees of
// growing size and reports the mean cost per query.
package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/caio/go-prefixsum"
	"github.com/caio/go-prefixsum/internal/workload"
)

// Operations that can be timed.
const (
	OpSum    = "sum"
	OpUpdate = "update"
)

// Bounds of the generated input values.
const (
	minValue = -100
	maxValue = 100
)

var ErrBadConfig = errors.New("bench: invalid configuration")

type Config struct {
	Kind      string
	Operation string
	// Name replaces the tree name in the report when not empty.
	Name string

	// Sizes are powers of two from 2^MinLog to 2^MaxLog.
	MinLog int
	MaxLog int

	Runs      int
	Queries   int
	ValueSeed int64
	QuerySeed int64

	BranchlessThreshold int
	LeafSize            int
}

func DefaultConfig() Config {
	return Config{
		Kind:                "st",
		Operation:           OpSum,
		MinLog:              8,
		MaxLog:              24,
		Runs:                100,
		Queries:             10000,
		ValueSeed:           13,
		QuerySeed:           71,
		BranchlessThreshold: prefixsum.DefaultBranchlessThreshold,
		LeafSize:            prefixsum.DefaultLeafSize,
	}
}

func (c Config) validate() error {
	switch {
	case c.Operation != OpSum && c.Operation != OpUpdate:
		return fmt.Errorf("%w: operation must be %q or %q, got %q", ErrBadConfig, OpSum, OpUpdate, c.Operation)
	case c.MinLog < 0 || c.MaxLog > 32 || c.MinLog > c.MaxLog:
		return fmt.Errorf("%w: size exponents must satisfy 0 <= %d <= %d <= 32", ErrBadConfig, c.MinLog, c.MaxLog)
	case c.Runs < 1 || c.Queries < 1:
		return fmt.Errorf("%w: runs (%d) and queries (%d) must be positive", ErrBadConfig, c.Runs, c.Queries)
	}
	return nil
}

func (c Config) options() []prefixsum.Option {
	return []prefixsum.Option{
		prefixsum.BranchlessThreshold(c.BranchlessThreshold),
		prefixsum.LeafSize(c.LeafSize),
	}
}

// Report holds one mean timing, in nanoseconds per query, per size.
type Report struct {
	Type    string    `json:"type"`
	Timings []float64 `json:"timings"`
}

// Encode writes r as a single line of JSON.
func (r Report) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}

// Run times c.Operation for every configured size.
func Run(c Config, logger *zap.Logger) (Report, error) {
	if err := c.validate(); err != nil {
		return Report{}, err
	}
	probe, err := prefixsum.New(c.Kind, c.options()...)
	if err != nil {
		return Report{}, err
	}

	report := Report{Type: probe.Name(), Timings: make([]float64, 0, c.MaxLog-c.MinLog+1)}
	if c.Name != "" {
		report.Type = c.Name
	}
	logger = logger.With(zap.String("type", probe.Name()), zap.String("operation", c.Operation))

	values := workload.NewRNG(c.ValueSeed)
	for e := c.MinLog; e <= c.MaxLog; e++ {
		ns, err := runSize(c, 1<<e, values, logger)
		if err != nil {
			return Report{}, fmt.Errorf("n=2^%d: %w", e, err)
		}
		report.Timings = append(report.Timings, ns)
	}
	return report, nil
}

func runSize(c Config, n int, values workload.RNG, logger *zap.Logger) (float64, error) {
	tree, err := prefixsum.New(c.Kind, c.options()...)
	if err != nil {
		return 0, err
	}
	if err := tree.Build(workload.Values(values, n, minValue, maxValue)); err != nil {
		return 0, err
	}
	queries := workload.Queries(workload.NewRNG(c.QuerySeed), c.Queries, n)

	hist := hdrhistogram.New(1, int64(time.Minute), 3)
	perQuery := make([]float64, c.Runs)
	var total int64
	for run := range perQuery {
		start := time.Now()
		if c.Operation == OpSum {
			for _, q := range queries {
				s, err := tree.Sum(q)
				if err != nil {
					return 0, err
				}
				total += s
			}
		} else {
			for _, q := range queries {
				if err := tree.Update(q, int64(q)); err != nil {
					return 0, err
				}
			}
		}
		elapsed := time.Since(start)
		_ = hist.RecordValue(elapsed.Nanoseconds())
		perQuery[run] = float64(elapsed.Nanoseconds()) / float64(len(queries))
	}
	if c.Operation == OpUpdate {
		if total, err = tree.Sum(n - 1); err != nil {
			return 0, err
		}
	}

	mean := stat.Mean(perQuery, nil)
	logger.Info("timed batch",
		zap.Int("n", n),
		zap.Float64("ns_per_query", mean),
		zap.Float64("stddev", stat.StdDev(perQuery, nil)),
		zap.Int64("run_p50_ns", hist.ValueAtPercentile(50)),
		zap.Int64("run_p99_ns", hist.ValueAtPercentile(99)),
		zap.Int64("ignore", total),
	)
	return mean, nil
}
