/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package patterns defines Pattern, a fixed-capacity strided memory-layout
// descriptor for multi-dimensional arrays, and the tools to validate it and
// derive layout facts from it.
//
// A Pattern records, for each axis of a tensor, its dimension and its memory
// stride (in elements, signed). It answers two questions the surrounding
// tensor layer needs before it addresses memory through the layout:
//
//   - Is the layout well-formed, with every logical index tuple mapping to a
//     unique memory location? See Pattern.IsValid and Pattern.Check.
//   - What cheap facts can dispatch decisions rely on -- element count,
//     whether the data forms one unbroken block, whether strides are dense
//     row-major? See Pattern.DeriveProperties.
//
// Dims and strides are held in fixed arrays of length MaxAxes and are
// right-justified: the last logical axis always lives in slot MaxAxes-1, so
// the trailing axes of two patterns line up automatically under the usual
// broadcasting rules. Unused leading slots always hold (dim=1, stride=0).
//
// Patterns are plain values: copy them freely, no heap state, no
// synchronization. Whoever embeds a Pattern in shared mutable state owns the
// locking around mutate-then-validate sequences.
//
// Stricter than most frameworks: an axis with dim==1 must have stride 0, an
// axis with dim!=1 must have a nonzero stride, and "broadcast" axes with
// stride 0 and dim > 1 are rejected, as are layouts where two index tuples
// could alias the same address. There are no zero-element patterns; an empty
// tensor is represented by absence, not by a zero dimension.
//
// ## Glossary
//
//   - Axis: one dimension of the logical shape. Logical axis 0 is the
//     slowest-varying one; negative axis values count from the end, so -1 is
//     the last (fastest) axis.
//   - Dim: the size of an axis.
//   - Stride: distance in elements between two neighbors along an axis.
//   - Contiguous: the occupied addresses form one unbroken block, in any
//     axis order.
//   - Ordered strides: dense row-major; each stride equals the product of
//     all later dims. Strictly stronger than contiguous.
//   - Pattern code: opaque int32 fingerprint of the pattern's shape class,
//     computed by a registered encoder (see package patterncode) and cached
//     on the Pattern by its owner.
package patterns

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// MaxAxes is the fixed capacity of a Pattern: the maximum number of axes a
// layout can describe. It is shared by everything that embeds or consumes a
// Pattern; exceeding it is a construction-time error.
const MaxAxes = 8

// Pattern describes the memory layout of a multi-dimensional array: per-axis
// dims and strides in fixed, right-justified arrays, plus a cached shape-class
// code.
//
// The last logical axis occupies slot MaxAxes-1 and the first occupies slot
// MaxAxes-NumAxes; the leading MaxAxes-NumAxes slots are unused and must hold
// dim 1 and stride 0. Prefer the Dim and Stride accessors over indexing the
// arrays directly.
//
// Code is a cache, not authoritative: after mutating Dims or Strides the owner
// must call RefreshCode before relying on it. IsValid(true) detects a stale
// code.
//
// The zero Pattern is invalid (its unused slots hold dim 0). Use Scalar,
// FromDims or FromDimsAndStrides to build one.
type Pattern struct {
	NumAxes int
	Dims    [MaxAxes]int
	Strides [MaxAxes]int
	Code    int32
}

// Scalar returns the empty-shape pattern: zero axes, one element.
func Scalar() (p Pattern) {
	for i := range p.Dims {
		p.Dims[i] = 1
	}
	p.refreshCode()
	return
}

// FromDims returns a dense row-major Pattern with the given dims: the last
// axis has stride 1 and each earlier axis's stride is the product of all
// later dims.
//
// It panics if given more than MaxAxes dims or any dim <= 0.
func FromDims(dims ...int) Pattern {
	if len(dims) > MaxAxes {
		exceptions.Panicf("patterns.FromDims: %d axes given, max is %d", len(dims), MaxAxes)
	}
	p := Scalar()
	p.NumAxes = len(dims)
	stride := 1
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i] <= 0 {
			exceptions.Panicf("patterns.FromDims: axis %d has dim %d, dims must be > 0", i, dims[i])
		}
		slot := MaxAxes - len(dims) + i
		p.Dims[slot] = dims[i]
		if dims[i] != 1 {
			p.Strides[slot] = stride
		}
		stride *= dims[i]
	}
	p.refreshCode()
	return p
}

// FromDimsAndStrides returns a Pattern with an explicit layout, given in
// logical axis order (slowest axis first). Axes with dim 1 are normalized to
// stride 0. The caller remains responsible for the layout addressing every
// index tuple uniquely; check with IsValid.
//
// It panics if the slices differ in length, exceed MaxAxes, or contain a
// dim <= 0.
func FromDimsAndStrides(dims, strides []int) Pattern {
	if len(dims) != len(strides) {
		exceptions.Panicf("patterns.FromDimsAndStrides: %d dims but %d strides", len(dims), len(strides))
	}
	if len(dims) > MaxAxes {
		exceptions.Panicf("patterns.FromDimsAndStrides: %d axes given, max is %d", len(dims), MaxAxes)
	}
	p := Scalar()
	p.NumAxes = len(dims)
	for i, dim := range dims {
		if dim <= 0 {
			exceptions.Panicf("patterns.FromDimsAndStrides: axis %d has dim %d, dims must be > 0", i, dim)
		}
		slot := MaxAxes - len(dims) + i
		p.Dims[slot] = dim
		if dim != 1 {
			p.Strides[slot] = strides[i]
		}
	}
	p.refreshCode()
	return p
}

// slot maps a logical axis (negative values count from the end) to its
// position in the right-justified arrays. name is used in the panic message.
func (p *Pattern) slot(axis int, name string) int {
	adjusted := axis
	if adjusted < 0 {
		adjusted += p.NumAxes
	}
	if adjusted < 0 || adjusted >= p.NumAxes {
		exceptions.Panicf("Pattern.%s(%d) out-of-bounds for %d axes (pattern=%s)", name, axis, p.NumAxes, p)
	}
	return MaxAxes - p.NumAxes + adjusted
}

// Dim returns the dimension of the given logical axis. Negative axis values
// count from the end, so Dim(-1) is the dimension of the last axis. It panics
// for an out-of-bounds axis.
func (p *Pattern) Dim(axis int) int {
	return p.Dims[p.slot(axis, "Dim")]
}

// Stride returns the stride (in elements) of the given logical axis. Negative
// axis values count from the end. It panics for an out-of-bounds axis.
func (p *Pattern) Stride(axis int) int {
	return p.Strides[p.slot(axis, "Stride")]
}

// DimsSlice returns a copy of the dims of the used axes, in logical order.
// Returns nil for a scalar pattern.
func (p *Pattern) DimsSlice() []int {
	if p.NumAxes == 0 {
		return nil
	}
	dims := make([]int, p.NumAxes)
	copy(dims, p.Dims[MaxAxes-p.NumAxes:])
	return dims
}

// StridesSlice returns a copy of the strides of the used axes, in logical
// order. Returns nil for a scalar pattern.
func (p *Pattern) StridesSlice() []int {
	if p.NumAxes == 0 {
		return nil
	}
	strides := make([]int, p.NumAxes)
	copy(strides, p.Strides[MaxAxes-p.NumAxes:])
	return strides
}

// Equal compares the layouts of two patterns: axis count, dims and strides.
// The cached codes are not compared.
func (p *Pattern) Equal(p2 Pattern) bool {
	return p.NumAxes == p2.NumAxes && p.Dims == p2.Dims && p.Strides == p2.Strides
}

// String implements fmt.Stringer, pretty-prints the used axes.
func (p *Pattern) String() string {
	if p.NumAxes == 0 {
		return "(scalar)"
	}
	return fmt.Sprintf("(dims=%v strides=%v)", p.DimsSlice(), p.StridesSlice())
}
