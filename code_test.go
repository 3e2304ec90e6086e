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

package patterns_test

import (
	"testing"

	"github.com/gomlx/patterns"
	"github.com/stretchr/testify/require"

	_ "github.com/gomlx/patterns/patterncode" // Registers the standard encoder.
)

func TestCodeIsRefreshedByConstructors(t *testing.T) {
	require.True(t, patterns.HasRegisteredCodeFunc())
	for _, p := range []patterns.Pattern{
		patterns.Scalar(),
		patterns.FromDims(2, 3, 4),
		patterns.FromDimsAndStrides([]int{3, 4}, []int{1, 3}),
	} {
		require.True(t, p.IsValid(true), "pattern %s has a stale code right after construction", &p)
	}
}

func TestStaleCodeIsDetected(t *testing.T) {
	p := patterns.FromDims(2, 3, 4)
	require.True(t, p.IsValid(true))

	// Collapse the last axis to dim 1. The layout stays well-formed, but the
	// shape class changed and the cached code no longer matches.
	p.Dims[patterns.MaxAxes-1] = 1
	p.Strides[patterns.MaxAxes-1] = 0
	require.True(t, p.IsValid(false))
	require.False(t, p.IsValid(true))
	require.ErrorContains(t, p.Check(true), "stale code")

	p.RefreshCode()
	require.True(t, p.IsValid(true))
}

func TestCodeTamperingIsDetected(t *testing.T) {
	p := patterns.FromDims(5, 7)
	p.Code ^= 1
	require.False(t, p.IsValid(true))
	p.RefreshCode()
	require.True(t, p.IsValid(true))
}
