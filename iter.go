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
	"iter"

	"github.com/gomlx/exceptions"
)

// Offset returns the element offset addressed by the given logical index
// tuple: the sum of index*stride over all axes. Offsets can be negative for
// patterns with negative strides.
//
// It panics if the number of indices doesn't match NumAxes or an index is out
// of its axis's range.
func (p *Pattern) Offset(indices ...int) int {
	if len(indices) != p.NumAxes {
		exceptions.Panicf("Pattern.Offset: %d indices given for %d axes (pattern=%s)", len(indices), p.NumAxes, p)
	}
	offset := 0
	for axis, index := range indices {
		slot := MaxAxes - p.NumAxes + axis
		if index < 0 || index >= p.Dims[slot] {
			exceptions.Panicf("Pattern.Offset: index %d out-of-range for axis %d with dim %d (pattern=%s)",
				index, axis, p.Dims[slot], p)
		}
		offset += index * p.Strides[slot]
	}
	return offset
}

// Iter iterates over all logical index tuples of the pattern in row-major
// order (last axis fastest), yielding each tuple together with the element
// offset it addresses.
//
// To avoid allocating per step, the yielded indices slice is owned by Iter:
// don't change or retain it inside the loop.
func (p *Pattern) Iter() iter.Seq2[[]int, int] {
	pattern := *p // Snapshot, iteration is unaffected by later mutation.
	return func(yield func([]int, int) bool) {
		if pattern.NumAxes < 0 || pattern.NumAxes > MaxAxes {
			return
		}
		// Defensive: non-positive dims would make the counter loop forever.
		// Validly constructed patterns never have them.
		for i := MaxAxes - pattern.NumAxes; i < MaxAxes; i++ {
			if pattern.Dims[i] <= 0 {
				return
			}
		}

		indices := make([]int, pattern.NumAxes)
		offset := 0
		for {
			if !yield(indices, offset) {
				return
			}

			// Increment the index tuple like an N-dimensional counter,
			// updating the offset incrementally.
			axis := pattern.NumAxes - 1
			for ; axis >= 0; axis-- {
				slot := MaxAxes - pattern.NumAxes + axis
				if pattern.Dims[slot] == 1 {
					continue
				}
				indices[axis]++
				offset += pattern.Strides[slot]
				if indices[axis] < pattern.Dims[slot] {
					break
				}
				// Carry: rewind this axis and move to the next slower one.
				offset -= indices[axis] * pattern.Strides[slot]
				indices[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}
