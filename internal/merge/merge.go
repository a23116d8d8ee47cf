// Package merge combines configuration fragments contributed by independent
// integrations.
//
// Sequences are concatenated, keyed structures are merged key by key and a
// scalar is overwritten by the modification. Overwriting a scalar is allowed
// but logged, since it means a fragment was not written with the other
// fragments in mind.
package merge

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/mohae/deepcopy"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNilModification is returned when there is nothing to merge.
	ErrNilModification = errors.New("cannot merge nil modification")

	// ErrShapeMismatch is returned when target and modification have
	// incompatible shapes, e.g. a list and an object.
	ErrShapeMismatch = errors.New("cannot merge values of different shapes")
)

// Merger merges configuration trees and reports scalar overwrites to its logger.
type Merger struct {
	logger zerolog.Logger
}

// New creates a Merger logging to logger.
func New(logger zerolog.Logger) *Merger {
	return &Merger{logger: logger}
}

// Merge merges modification into target using the global logger.
func Merge(target, modification any) (any, error) {
	return New(log.Logger).Merge(target, modification)
}

// Merge returns the combination of target and modification. Neither argument
// is modified.
func (m *Merger) Merge(target, modification any) (any, error) {
	return m.merge("", target, modification)
}

func (m *Merger) merge(path string, target, modification any) (any, error) {
	if isNil(modification) {
		return nil, fmt.Errorf("%w at %s into %s", ErrNilModification, pathOrRoot(path), describe(target))
	}
	if isNil(target) {
		return deepcopy.Copy(modification), nil
	}

	if targetList, ok := asList(target); ok {
		modList, ok := asList(modification)
		if !ok {
			return nil, fmt.Errorf("%w at %s: non-list modification %s into list target %s",
				ErrShapeMismatch, pathOrRoot(path), describe(modification), describe(target))
		}
		out := make([]any, 0, len(targetList)+len(modList))
		out = append(out, targetList...)
		for _, v := range modList {
			out = append(out, deepcopy.Copy(v))
		}
		return out, nil
	}

	if targetMap, ok := asMap(target); ok {
		modMap, ok := asMap(modification)
		if !ok {
			return nil, fmt.Errorf("%w at %s: non-object modification %s into object target %s",
				ErrShapeMismatch, pathOrRoot(path), describe(modification), describe(target))
		}
		out := make(map[string]any, len(targetMap)+len(modMap))
		for k, v := range targetMap {
			out[k] = v
		}
		// sorted so warnings come out in a stable order
		keys := make([]string, 0, len(modMap))
		for k := range modMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			merged, err := m.merge(joinPath(path, k), targetMap[k], modMap[k])
			if err != nil {
				return nil, err
			}
			out[k] = merged
		}
		return out, nil
	}

	m.logger.Warn().
		Str("path", pathOrRoot(path)).
		Str("target", describe(target)).
		Str("modification", describe(modification)).
		Msg("configuration value overwritten")
	return modification, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// asList accepts []any and any other slice or array type.
func asList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	// raw bytes are a scalar, not a list of numbers
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asMap accepts map[string]any and any other map keyed by strings.
func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func describe(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T(%v)", v, v)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathOrRoot(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
