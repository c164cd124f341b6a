// Package app orchestrates generation runs: it resolves the run
// configuration, fans table partitions out to workers, and stamps a manifest
// next to the output.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/spatialbench/sbgen/internal/logging"
	"github.com/spatialbench/sbgen/internal/manifest"
	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/sink"
	"github.com/spatialbench/sbgen/internal/spatial"
	"github.com/spatialbench/sbgen/internal/tables"
)

const (
	FormatTbl     = "tbl"
	FormatCSV     = "csv"
	FormatArrow   = "arrow"
	FormatParquet = "parquet"
)

const defaultBatchSize = 8192

// Options configures one generation run.
type Options struct {
	ScaleFactor float64
	Seed        int64

	// Tables to generate; empty means all.
	Tables []string

	// NumParts splits every table into that many partitions. Part selects a
	// single partition (1-based); 0 generates all of them.
	NumParts int
	Part     int

	Format    string
	OutputDir string

	// SpatialConfig is an explicit spatial config path; empty falls through
	// the usual precedence chain.
	SpatialConfig string

	// Workers bounds concurrent partition jobs; 0 uses GOMAXPROCS.
	Workers int

	// BatchSize is rows per record batch for columnar formats and DB loads.
	BatchSize int
}

// Runner executes generation runs against a resolved configuration.
type Runner struct {
	opts    Options
	tables  []scale.Table
	spatial *spatial.Config
	logger  *logging.Logger
}

func NewRunner(opts Options, logger *logging.Logger) (*Runner, error) {
	if err := scale.Validate(opts.ScaleFactor); err != nil {
		return nil, err
	}
	if opts.NumParts < 1 {
		opts.NumParts = 1
	}
	if opts.Part != 0 {
		p := tables.Partition{Part: opts.Part, NumParts: opts.NumParts}
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	switch opts.Format {
	case FormatTbl, FormatCSV, FormatArrow, FormatParquet:
	case "":
		opts.Format = FormatTbl
	default:
		return nil, fmt.Errorf("unknown format: %q", opts.Format)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	tbls, err := resolveTables(opts.Tables)
	if err != nil {
		return nil, err
	}

	spCfg, err := spatial.Resolve(opts.SpatialConfig)
	if err != nil {
		return nil, err
	}

	return &Runner{opts: opts, tables: tbls, spatial: spCfg, logger: logger}, nil
}

func resolveTables(names []string) ([]scale.Table, error) {
	if len(names) == 0 {
		return scale.All(), nil
	}
	out := make([]scale.Table, 0, len(names))
	seen := make(map[scale.Table]bool)
	for _, name := range names {
		t, err := scale.Parse(name)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// Spatial exposes the resolved spatial configuration.
func (r *Runner) Spatial() *spatial.Config { return r.spatial }

// Tables exposes the resolved table list.
func (r *Runner) Tables() []scale.Table { return r.tables }

type job struct {
	table scale.Table
	part  int
}

// Run generates every selected table partition into OutputDir and writes the
// run manifest. Partition files for an n-way split land under a per-table
// directory; a single-part run writes one file per table.
func (r *Runner) Run(ctx context.Context) (*manifest.Manifest, error) {
	start := time.Now()
	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var jobs []job
	for _, t := range r.tables {
		if r.opts.Part != 0 {
			jobs = append(jobs, job{table: t, part: r.opts.Part})
			continue
		}
		for p := 1; p <= r.opts.NumParts; p++ {
			jobs = append(jobs, job{table: t, part: p})
		}
	}

	r.logger.Info("starting run: sf=%g seed=%d tables=%d parts=%d format=%s workers=%d",
		r.opts.ScaleFactor, r.opts.Seed, len(r.tables), r.opts.NumParts, r.opts.Format, r.opts.Workers)

	jobCh := make(chan job)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	workers := r.opts.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Keep draining after a failure so the send loop never blocks.
			for j := range jobCh {
				mu.Lock()
				failed := firstErr != nil
				mu.Unlock()
				if failed || ctx.Err() != nil {
					continue
				}
				if err := r.runJob(j); err != nil {
					fail(fmt.Errorf("%s part %d/%d: %w", j.table, j.part, r.opts.NumParts, err))
				}
			}
		}()
	}

	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := r.buildManifest()
	if err != nil {
		return nil, err
	}
	if err := m.Write(r.opts.OutputDir); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	r.logger.Info("run %s completed in %.2fs", m.RunID, time.Since(start).Seconds())
	return m, nil
}

// runJob generates one table partition into its own file. Each job builds a
// fresh generator; generators carry scratch buffers and must not be shared
// across goroutines.
func (r *Runner) runJob(j job) error {
	gen, err := r.newGenerator(j.table)
	if err != nil {
		return err
	}
	it, err := tables.NewIterator(gen, tables.Partition{Part: j.part, NumParts: r.opts.NumParts})
	if err != nil {
		return err
	}

	path := r.partPath(j.table, j.part)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var rows int64
	switch r.opts.Format {
	case FormatTbl:
		rows, err = sink.NewTblWriter(f).WriteTable(gen, it)
	case FormatCSV:
		rows, err = sink.NewCSVWriter(f).WriteTable(gen, it)
	case FormatArrow:
		rows, err = sink.WriteArrowIPC(f, gen, it, r.opts.BatchSize)
	case FormatParquet:
		rows, err = sink.WriteParquet(f, gen, it, r.opts.BatchSize)
	}
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	r.logger.Debug("wrote %s: %d rows", path, rows)
	return nil
}

func (r *Runner) newGenerator(t scale.Table) (tables.Generator, error) {
	return tables.New(t, tables.Options{
		ScaleFactor: r.opts.ScaleFactor,
		Seed:        r.opts.Seed,
		Spatial:     r.spatial,
	})
}

func (r *Runner) partPath(t scale.Table, part int) string {
	name := string(t)
	if r.opts.NumParts > 1 {
		return filepath.Join(r.opts.OutputDir, name, fmt.Sprintf("%s.%d.%s", name, part, r.opts.Format))
	}
	return filepath.Join(r.opts.OutputDir, name+"."+r.opts.Format)
}

func (r *Runner) buildManifest() (*manifest.Manifest, error) {
	names := make([]string, len(r.tables))
	counts := make(map[string]int64, len(r.tables))
	for i, t := range r.tables {
		names[i] = string(t)
		counts[string(t)] = scale.RowCount(t, r.opts.ScaleFactor)
	}
	return manifest.New(r.opts.Seed, r.opts.ScaleFactor, names, r.opts.NumParts,
		r.opts.Format, r.spatial.Source, counts)
}

// Load streams the selected partitions of every table into a database. Tables
// load sequentially in a fixed order so repeated loads are reproducible.
func (r *Runner) Load(ctx context.Context, loader sink.Loader) (int64, error) {
	if err := loader.Connect(ctx); err != nil {
		return 0, fmt.Errorf("connect: %w", err)
	}
	defer loader.Close()

	var total int64
	for _, t := range r.tables {
		gen, err := r.newGenerator(t)
		if err != nil {
			return total, err
		}

		parts := []int{r.opts.Part}
		if r.opts.Part == 0 {
			parts = parts[:0]
			for p := 1; p <= r.opts.NumParts; p++ {
				parts = append(parts, p)
			}
		}
		for _, p := range parts {
			it, err := tables.NewIterator(gen, tables.Partition{Part: p, NumParts: r.opts.NumParts})
			if err != nil {
				return total, err
			}
			n, err := sink.Load(ctx, loader, gen, it, r.opts.BatchSize)
			total += n
			if err != nil {
				return total, fmt.Errorf("load %s: %w", t, err)
			}
			r.logger.Info("loaded %s part %d/%d: %d rows", t, p, r.opts.NumParts, n)
		}
	}
	return total, nil
}
