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

package patterns

import (
	"github.com/gomlx/gopjrt/dtypes"
)

// Properties are layout facts derived from a Pattern snapshot, used by the
// tensor layer to pick fast paths (bulk copy vs. strided iteration) and to
// validate aliasing assumptions. They carry no identity of their own: derive
// them fresh with Pattern.DeriveProperties whenever the pattern changes,
// never patch them incrementally.
type Properties struct {
	// NumElements is the product of the dims of all used axes. Always > 0
	// for a valid pattern (there are no zero-element patterns).
	NumElements int64

	// Code is the pattern's cached code at derivation time, kept for
	// cross-checking against stores keyed by it. Copied verbatim; the
	// derivation itself never trusts it.
	Code int32

	// IsContiguous reports that the occupied addresses form one unbroken
	// block, in any axis order. Weaker than HasOrderedStrides: a transposed
	// dense matrix is contiguous but not ordered.
	IsContiguous bool

	// HasOrderedStrides reports dense row-major layout: every used axis's
	// stride equals the product of all later dims (stride 0 for dim-1 axes).
	// HasOrderedStrides implies IsContiguous.
	HasOrderedStrides bool
}

// DeriveProperties computes the Properties of the pattern from its current
// dims and strides. The result is a pure function of NumAxes, Dims and
// Strides (the cached Code is copied but not consulted), so deriving twice
// from an unmodified pattern yields identical Properties.
//
// The pattern must be valid; properties of an invalid pattern are
// unspecified.
func (p *Pattern) DeriveProperties() (props Properties) {
	props.Code = p.Code
	props.NumElements = 1
	for i := MaxAxes - p.NumAxes; i < MaxAxes; i++ {
		props.NumElements *= int64(p.Dims[i])
	}

	// Contiguity, in any axis order: walking the non-trivial axes from the
	// largest absolute stride down, each stride must exactly cover the block
	// spanned by the remaining axes, and the innermost step must be 1.
	// Equality here, where the uniqueness check only demands >=: a layout
	// with gaps is valid but not contiguous.
	var buf [MaxAxes]axisExtent
	used := p.sortedUsedAxes(&buf)
	props.IsContiguous = true
	for i, axis := range used {
		if i+1 < len(used) {
			next := used[i+1]
			if axis.absStride != next.dim*next.absStride {
				props.IsContiguous = false
				break
			}
		} else if axis.absStride != 1 {
			props.IsContiguous = false
		}
	}

	// Ordered strides, in declared axis order: stride of each non-trivial
	// axis must equal the product of all later dims, positive.
	props.HasOrderedStrides = true
	expected := 1
	for i := MaxAxes - 1; i >= MaxAxes-p.NumAxes; i-- {
		if p.Dims[i] != 1 && p.Strides[i] != expected {
			props.HasOrderedStrides = false
			break
		}
		expected *= p.Dims[i]
	}
	return
}

// NumElements is a shortcut for DeriveProperties().NumElements: the product
// of the dims of all used axes.
func (p *Pattern) NumElements() int64 {
	count := int64(1)
	for i := MaxAxes - p.NumAxes; i < MaxAxes; i++ {
		count *= int64(p.Dims[i])
	}
	return count
}

// SpanElements returns the extent, in elements, of the memory region the
// pattern addresses: 1 + sum over used axes of (dim-1)*|stride|. A buffer
// backing this pattern must hold at least this many elements (relative to
// the most negative address the pattern reaches).
func (p *Pattern) SpanElements() int64 {
	span := int64(1)
	for i := MaxAxes - p.NumAxes; i < MaxAxes; i++ {
		stride := p.Strides[i]
		if stride < 0 {
			stride = -stride
		}
		span += int64(p.Dims[i]-1) * int64(stride)
	}
	return span
}

// Memory returns the size in bytes of the memory region the pattern
// addresses, for elements of the given dtype. Careful, so far all types in Go
// and on device seem to use the same sizes, but for future types this is not
// guaranteed.
func (p *Pattern) Memory(dtype dtypes.DType) uintptr {
	return dtype.Memory() * uintptr(p.SpanElements())
}
