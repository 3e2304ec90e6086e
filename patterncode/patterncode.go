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

// Package patterncode implements the standard shape-class encoder for
// layout patterns: a compact int32 fingerprint that identifies the class of
// a pattern's shape -- which axes are non-trivial and whether the innermost
// axis steps by one element -- without encoding concrete dims. Fast-dispatch
// machinery keys kernel specializations on this code: two patterns of the
// same class take the same code and hence the same code path.
//
// Importing this package (a blank import suffices) registers Compute with
// the patterns package, enabling Pattern.RefreshCode and the checkCode side
// of Pattern.IsValid:
//
//	import _ "github.com/gomlx/patterns/patterncode"
package patterncode

import (
	"github.com/gomlx/patterns"
)

// TrailingUnitStrideBit is set in the code when the last logical axis is
// non-trivial and steps by a single element (|stride| == 1), the case where
// kernels can vectorize over the innermost loop.
const TrailingUnitStrideBit = int32(1) << patterns.MaxAxes

func init() {
	patterns.RegisterCodeFunc(Compute)
}

// Compute returns the shape-class code of the pattern: bit r (0-based from
// the trailing end, so bit 0 is the last logical axis) is set iff that axis
// has dim != 1, and TrailingUnitStrideBit is set iff the last logical axis
// is non-trivial with |stride| == 1.
//
// The code depends only on the pattern's shape class, never on concrete
// dims: (dims=[2 3], strides=[3 1]) and (dims=[5 7], strides=[7 1]) share a
// code, while (dims=[3], strides=[1]) does not.
func Compute(p *patterns.Pattern) int32 {
	var code int32
	for r := 0; r < p.NumAxes; r++ {
		slot := patterns.MaxAxes - 1 - r
		if p.Dims[slot] != 1 {
			code |= int32(1) << r
		}
	}
	if p.NumAxes > 0 {
		stride := p.Strides[patterns.MaxAxes-1]
		if p.Dims[patterns.MaxAxes-1] != 1 && (stride == 1 || stride == -1) {
			code |= TrailingUnitStrideBit
		}
	}
	return code
}
