// SPDX-License-Identifier: MIT
// Package: optmath/dataset
//
// builder.go - concurrent multi-instance dataset builder.
//
// Contract:
//  - Every instance gets its own seed through two SplitMix64 hops:
//    job seed = DeriveSeed(spec seed, job index), instance seed =
//    DeriveSeed(job seed, instance index). Reordering jobs reseeds
//    them; adding a job never disturbs the others.
//  - Workers share nothing: each unit owns its generator, buffers and a
//    pre-sized manifest slot. The context is checked once per unit,
//    before generation starts.
//  - The manifest is written only after every unit succeeded; on error
//    partial instance files may remain in the output directory.

// Package dataset turns a declarative YAML spec into a directory of
// benchmark instances: jobs fan out over a bounded worker group, every
// instance owns a derived seed and its own buffers, and a manifest ties
// the written files back to the seeds that produced them.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/optsuite/OptMATH/catalog"
	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/rng"
)

// manifestName is the fixed manifest filename inside the output directory.
const manifestName = "manifest.yaml"

// Manifest records one completed dataset build.
type Manifest struct {
	Run       string  `yaml:"run"`
	Name      string  `yaml:"name"`
	Seed      int64   `yaml:"seed"`
	Instances []Entry `yaml:"instances"`
}

// Entry records one written instance.
type Entry struct {
	Problem string   `yaml:"problem"`
	Job     int      `yaml:"job"`
	Index   int      `yaml:"index"`
	Seed    int64    `yaml:"seed"`
	Files   []string `yaml:"files"`
}

// Builder writes dataset instances and a manifest into one directory.
type Builder struct {
	out     string
	workers int
	log     *zap.Logger
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithWorkers caps concurrent generation. Panics when n < 1.
func WithWorkers(n int) BuilderOption {
	if n < 1 {
		panic("dataset: WithWorkers: n < 1")
	}
	return func(b *Builder) { b.workers = n }
}

// WithLogger attaches a logger. Panics on nil.
func WithLogger(l *zap.Logger) BuilderOption {
	if l == nil {
		panic("dataset: WithLogger: nil logger")
	}
	return func(b *Builder) { b.log = l }
}

// NewBuilder returns a Builder writing into out. Defaults: one worker
// per CPU, no logging.
func NewBuilder(out string, opts ...BuilderOption) *Builder {
	b := &Builder{
		out:     out,
		workers: runtime.GOMAXPROCS(0),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// unit is one pre-planned instance build.
type unit struct {
	problem string
	job     int
	index   int
	seed    int64
	cfg     config.Config
	formats []string
}

// Build generates every instance the spec names and writes the manifest.
// The returned Manifest lists entries in job order, instances in index
// order, independent of worker scheduling.
func (b *Builder) Build(ctx context.Context, spec Spec) (*Manifest, error) {
	if err := Validate(spec); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	if err := os.MkdirAll(b.out, 0o755); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	// Plan all units up front so each goroutine only fills its own slot.
	var units []unit
	for j, job := range spec.Jobs {
		cfg, err := config.FromAny(job.Config)
		if err != nil {
			return nil, fmt.Errorf("Build: job %d (%s): %w", j, job.Problem, err)
		}
		jobSeed := rng.DeriveSeed(spec.Seed, uint64(j))
		for i := 0; i < job.Count; i++ {
			units = append(units, unit{
				problem: job.Problem,
				job:     j,
				index:   i,
				seed:    rng.DeriveSeed(jobSeed, uint64(i)),
				cfg:     cfg,
				formats: job.formats(),
			})
		}
	}

	run := uuid.NewString()
	b.log.Info("dataset build started",
		zap.String("run", run),
		zap.String("name", spec.Name),
		zap.Int64("seed", spec.Seed),
		zap.Int("jobs", len(spec.Jobs)),
		zap.Int("instances", len(units)),
		zap.Int("workers", b.workers))

	entries := make([]Entry, len(units))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for slot, u := range units {
		slot, u := slot, u
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := b.buildUnit(u)
			if err != nil {
				return fmt.Errorf("job %d (%s) instance %d: %w", u.job, u.problem, u.index, err)
			}
			entries[slot] = entry
			b.log.Debug("instance written",
				zap.String("problem", u.problem),
				zap.Int("job", u.job),
				zap.Int("index", u.index),
				zap.Int64("seed", u.seed),
				zap.Strings("files", entry.Files))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	manifest := &Manifest{Run: run, Name: spec.Name, Seed: spec.Seed, Instances: entries}
	raw, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("Build: manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.out, manifestName), raw, 0o644); err != nil {
		return nil, fmt.Errorf("Build: manifest: %w", err)
	}

	b.log.Info("dataset build finished",
		zap.String("run", run),
		zap.Int("instances", len(entries)))
	return manifest, nil
}

// buildUnit generates one instance and writes its files.
func (b *Builder) buildUnit(u unit) (Entry, error) {
	g, err := catalog.New(u.problem, u.cfg, gen.WithSeed(u.seed))
	if err != nil {
		return Entry{}, err
	}
	inst, err := g.GenerateInstance()
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{Problem: u.problem, Job: u.job, Index: u.index, Seed: u.seed}
	for _, format := range u.formats {
		name := fmt.Sprintf("%s_%d_%04d.%s", u.problem, u.job, u.index, format)
		var raw []byte
		switch format {
		case "lp":
			var buf bytes.Buffer
			if err := inst.WriteLP(&buf); err != nil {
				return Entry{}, err
			}
			raw = buf.Bytes()
		case "json":
			data, err := json.MarshalIndent(inst, "", "  ")
			if err != nil {
				return Entry{}, err
			}
			raw = append(data, '\n')
		}
		if err := os.WriteFile(filepath.Join(b.out, name), raw, 0o644); err != nil {
			return Entry{}, err
		}
		entry.Files = append(entry.Files, name)
	}
	return entry, nil
}
