// SPDX-License-Identifier: MIT
// Package: optmath/config
//
// parse.go - loose-typed ingestion: YAML/JSON maps and CLI strings into
// Config values. The resolver stays the single validation boundary; parsing
// only rejects shapes it cannot read at all.

package config

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	methodFromAny    = "FromAny"
	methodParseValue = "ParseValue"
)

// FromAny converts a decoded YAML/JSON mapping into a Config. Accepted value
// shapes per key:
//
//	number                -> Fixed
//	[min, max] (2 numbers) -> Range
//
// Anything else (strings, nested maps, wrong-arity lists) is rejected with
// an ErrConfiguration wrap naming the key. A nil map yields a nil Config.
func FromAny(raw map[string]any) (Config, error) {
	if raw == nil {
		return nil, nil
	}
	cfg := make(Config, len(raw))
	for name, rv := range raw {
		switch x := rv.(type) {
		case []any:
			if len(x) != 2 {
				return nil, fmt.Errorf("%s: key %q: want [min, max], got %d element(s): %w",
					methodFromAny, name, len(x), ErrConfiguration)
			}
			lo, okLo := toFloat(x[0])
			hi, okHi := toFloat(x[1])
			if !okLo || !okHi {
				return nil, fmt.Errorf("%s: key %q: non-numeric bound in %v: %w",
					methodFromAny, name, x, ErrConfiguration)
			}
			cfg[name] = Range(lo, hi)
		default:
			v, ok := toFloat(rv)
			if !ok {
				return nil, fmt.Errorf("%s: key %q: unsupported value %v (%T): %w",
					methodFromAny, name, rv, rv, ErrConfiguration)
			}
			cfg[name] = Fixed(v)
		}
	}
	return cfg, nil
}

// ParseValue reads one CLI-style value: either a plain number ("50") or a
// "min:max" pair ("1:500"). Used by flag parsing; YAML goes through FromAny.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if lo, hi, found := strings.Cut(s, ":"); found {
		l, errLo := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		h, errHi := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if errLo != nil || errHi != nil {
			return Value{}, fmt.Errorf("%s: %q is not a min:max pair: %w",
				methodParseValue, s, ErrConfiguration)
		}
		return Range(l, h), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %q is not a number: %w",
			methodParseValue, s, ErrConfiguration)
	}
	return Fixed(v), nil
}

// toFloat widens the numeric types YAML and JSON decoders actually emit.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint:
		return float64(x), true
	default:
		return 0, false
	}
}
