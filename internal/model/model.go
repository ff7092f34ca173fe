// Package model computes the effective document of a leaf model file.
package model

import (
	"github.com/toj-cli/toj/internal/ancestry"
	"github.com/toj-cli/toj/internal/jsonmerge"
)

// Compute locates the ancestors of leaf and merges them root first, so that
// each level overrides the levels above it.
func Compute(leaf string, opts ancestry.Options) (any, error) {
	chain, err := ancestry.Locate(leaf, opts)
	if err != nil {
		return nil, err
	}
	return jsonmerge.Fold(chain)
}
