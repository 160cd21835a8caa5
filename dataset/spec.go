// SPDX-License-Identifier: MIT
// Package: optmath/dataset
//
// spec.go - dataset build specification: YAML decoding and validation.
//
// Contract:
//  - A Spec is declarative: one seed, a list of jobs, each naming a
//    registered problem class with an instance count and an optional
//    configuration block (scalars or [lo, hi] pairs, as in the CLI).
//  - Validate is layered: struct-level rules first (ErrSpec), then the
//    problem names against the catalog, then the configuration blocks
//    through config.FromAny. Whatever layer rejects, the job index is
//    in the message.

package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/optsuite/OptMATH/catalog"
	"github.com/optsuite/OptMATH/config"
)

// ErrSpec reports a malformed dataset specification.
var ErrSpec = errors.New("optmath: invalid dataset spec")

// Spec declares one dataset build.
type Spec struct {
	Name string `yaml:"name" validate:"required"`
	Seed int64  `yaml:"seed"`
	Jobs []Job  `yaml:"jobs" validate:"min=1,dive"`
}

// Job declares one batch of instances of a single problem class.
type Job struct {
	Problem string         `yaml:"problem" validate:"required"`
	Count   int            `yaml:"count" validate:"min=1"`
	Format  string         `yaml:"format" validate:"omitempty,oneof=lp json both"`
	Config  map[string]any `yaml:"config"`
}

// formats expands the declared output format, defaulting to LP.
func (j Job) formats() []string {
	switch j.Format {
	case "json":
		return []string{"json"}
	case "both":
		return []string{"lp", "json"}
	default:
		return []string{"lp"}
	}
}

var validate = validator.New()

// LoadSpec reads and validates a YAML spec file.
func LoadSpec(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, fmt.Errorf("LoadSpec: %w", err)
	}
	defer f.Close()
	return ParseSpec(f)
}

// ParseSpec decodes a YAML spec and validates it. Unknown YAML fields
// are rejected, matching the strict resolution mode of configurations.
func ParseSpec(r io.Reader) (Spec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Spec
	if err := dec.Decode(&s); err != nil {
		return Spec{}, fmt.Errorf("ParseSpec: %s: %w", err, ErrSpec)
	}
	if err := Validate(s); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Validate checks a Spec without touching the filesystem.
func Validate(s Spec) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("Validate: %s: %w", err, ErrSpec)
	}
	for i, job := range s.Jobs {
		if _, err := catalog.Lookup(job.Problem); err != nil {
			return fmt.Errorf("Validate: job %d: %w", i, err)
		}
		if _, err := config.FromAny(job.Config); err != nil {
			return fmt.Errorf("Validate: job %d (%s): %w", i, job.Problem, err)
		}
	}
	return nil
}
