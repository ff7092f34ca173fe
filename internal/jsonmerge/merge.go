// Package jsonmerge folds a chain of JSON documents into one, later documents
// overriding earlier ones.
package jsonmerge

import (
	"errors"
)

// ErrEmptyChain is returned by Fold when there is nothing to seed the result with.
var ErrEmptyChain = errors.New("empty chain")

// Merge combines overlay into base and returns the result.
//
// When both values are objects, base is modified in place: a null in overlay
// removes the key from base, whether or not base had it, and any other value is
// merged recursively into what base holds under that key. In every other
// pairing overlay replaces base, so arrays and scalars are never merged
// element-wise.
func Merge(base, overlay any) any {
	overlayMap, overlayIsMap := overlay.(map[string]any)
	if !overlayIsMap {
		return overlay
	}
	baseMap, baseIsMap := base.(map[string]any)
	if !baseIsMap {
		return overlay
	}
	for key, overlayAt := range overlayMap {
		if overlayAt == nil {
			delete(baseMap, key)
			continue
		}
		// A missing key reads as nil, which overlayAt then replaces.
		baseMap[key] = Merge(baseMap[key], overlayAt)
	}
	return baseMap
}

// Fold reads every path in order and merges each into the document read from
// the first one. Any failure aborts the fold.
func Fold(chain []string) (any, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	merged, err := ReadFile(chain[0])
	if err != nil {
		return nil, err
	}
	for _, path := range chain[1:] {
		layer, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		merged = Merge(merged, layer)
	}
	return merged, nil
}
