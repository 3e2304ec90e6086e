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
	"cmp"
	"slices"

	"github.com/pkg/errors"
)

// axisExtent is one non-trivial (dim != 1) axis of a pattern, reduced to what
// the uniqueness and contiguity walks need.
type axisExtent struct {
	dim       int
	absStride int
}

// sortedUsedAxes collects the axes with dim != 1 into buf, stable-sorted by
// descending absolute stride; ties are broken by larger dim first. The
// tie-break keeps the order deterministic -- for equal absolute strides the
// uniqueness inequality fails either way, since both dims are > 1.
//
// buf avoids heap allocation; the returned slice aliases it.
func (p *Pattern) sortedUsedAxes(buf *[MaxAxes]axisExtent) []axisExtent {
	used := buf[:0]
	for i := MaxAxes - p.NumAxes; i < MaxAxes; i++ {
		if p.Dims[i] == 1 {
			continue
		}
		absStride := p.Strides[i]
		if absStride < 0 {
			absStride = -absStride
		}
		used = append(used, axisExtent{dim: p.Dims[i], absStride: absStride})
	}
	slices.SortStableFunc(used, func(a, b axisExtent) int {
		if c := cmp.Compare(b.absStride, a.absStride); c != 0 {
			return c
		}
		return cmp.Compare(b.dim, a.dim)
	})
	return used
}

// Check verifies the pattern invariants and returns an error naming the first
// violated one, or nil if the pattern is valid:
//
//   - NumAxes within [0, MaxAxes];
//   - every unused leading slot holds dim 1 and stride 0;
//   - every used axis has dim > 0, stride 0 iff dim 1;
//   - uniqueness: with the non-trivial axes sorted by descending absolute
//     stride, each |stride| covers the next axis's full extent,
//     |stride_i| >= dim_{i+1} * |stride_{i+1}|. This is a sufficient (not
//     necessary) condition for distinct index tuples to address distinct
//     elements; it is kept as-is rather than replaced by an exact
//     number-theoretic test.
//
// With checkCode, it additionally recomputes the code through the registered
// encoder and compares it with the cached Code, catching a stale cache after
// an uncommitted mutation.
//
// A validity failure indicates the pattern was built incorrectly by its
// owner; callers normally treat it as a programming error (see AssertValid).
func (p *Pattern) Check(checkCode bool) error {
	if p.NumAxes < 0 || p.NumAxes > MaxAxes {
		return errors.Errorf("pattern has %d axes, want 0 to %d", p.NumAxes, MaxAxes)
	}
	for i := 0; i < MaxAxes-p.NumAxes; i++ {
		if p.Dims[i] != 1 || p.Strides[i] != 0 {
			return errors.Errorf("pattern %s: unused slot %d holds (dim=%d, stride=%d), want (1, 0)",
				p, i, p.Dims[i], p.Strides[i])
		}
	}
	for i := MaxAxes - p.NumAxes; i < MaxAxes; i++ {
		axis := i - (MaxAxes - p.NumAxes)
		dim, stride := p.Dims[i], p.Strides[i]
		if dim <= 0 {
			return errors.Errorf("pattern axis %d has dim %d, dims must be > 0", axis, dim)
		}
		if dim == 1 && stride != 0 {
			return errors.Errorf("pattern axis %d has dim 1 but stride %d, want stride 0", axis, stride)
		}
		if dim != 1 && stride == 0 {
			return errors.Errorf("pattern %s: axis %d has dim %d but stride 0", p, axis, dim)
		}
	}
	var buf [MaxAxes]axisExtent
	used := p.sortedUsedAxes(&buf)
	for i := 0; i+1 < len(used); i++ {
		if used[i].absStride < used[i+1].dim*used[i+1].absStride {
			return errors.Errorf("pattern %s may alias itself: |stride|=%d does not cover the %d x |stride|=%d extent of the next-smaller axis",
				p, used[i].absStride, used[i+1].dim, used[i+1].absStride)
		}
	}
	if checkCode {
		if codeFunc == nil {
			return errors.Errorf("pattern %s: cannot verify code, no pattern code function registered", p)
		}
		if want := codeFunc(p); p.Code != want {
			return errors.Errorf("pattern %s has stale code %#x, want %#x -- RefreshCode after mutating", p, p.Code, want)
		}
	}
	return nil
}

// IsValid reports whether the pattern satisfies all its invariants. With
// checkCode it also requires the cached Code to match a fresh computation
// from the registered encoder. Pure predicate, no side effects.
//
// See Check for the invariant list and for an error naming what failed.
func (p *Pattern) IsValid(checkCode bool) bool {
	return p.Check(checkCode) == nil
}
