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
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalar(t *testing.T) {
	p := Scalar()
	require.Equal(t, 0, p.NumAxes)
	require.True(t, p.IsValid(false))
	require.Nil(t, p.DimsSlice())
	require.Nil(t, p.StridesSlice())
	require.Equal(t, int64(1), p.NumElements())
	require.Equal(t, "(scalar)", p.String())

	// The zero value is not a scalar pattern: its unused slots hold dim 0.
	var zero Pattern
	require.False(t, zero.IsValid(false))
}

func TestFromDims(t *testing.T) {
	p := FromDims(2, 3, 4)
	require.Equal(t, 3, p.NumAxes)
	require.Equal(t, []int{2, 3, 4}, p.DimsSlice())
	require.Equal(t, []int{12, 4, 1}, p.StridesSlice())
	require.True(t, p.IsValid(false))

	// Dim-1 axes take stride 0, even in a dense layout.
	p = FromDims(2, 1, 4)
	require.Equal(t, []int{2, 1, 4}, p.DimsSlice())
	require.Equal(t, []int{4, 0, 1}, p.StridesSlice())
	require.True(t, p.IsValid(false))

	require.Panics(t, func() { FromDims(2, 0, 4) })
	require.Panics(t, func() { FromDims(1, 1, 1, 1, 1, 1, 1, 1, 1) })
}

func TestFromDimsAndStrides(t *testing.T) {
	p := FromDimsAndStrides([]int{3, 4}, []int{1, 3})
	require.Equal(t, 2, p.NumAxes)
	require.Equal(t, []int{3, 4}, p.DimsSlice())
	require.Equal(t, []int{1, 3}, p.StridesSlice())
	require.True(t, p.IsValid(false))

	// Strides given for dim-1 axes are normalized away.
	p = FromDimsAndStrides([]int{1, 4}, []int{99, 1})
	require.Equal(t, []int{0, 1}, p.StridesSlice())
	require.True(t, p.IsValid(false))

	require.Panics(t, func() { FromDimsAndStrides([]int{2, 3}, []int{3}) })
	require.Panics(t, func() { FromDimsAndStrides([]int{-2}, []int{1}) })
}

func TestDimAndStride(t *testing.T) {
	p := FromDims(4, 3, 2)
	require.Equal(t, 4, p.Dim(0))
	require.Equal(t, 3, p.Dim(1))
	require.Equal(t, 2, p.Dim(2))
	require.Equal(t, 4, p.Dim(-3))
	require.Equal(t, 2, p.Dim(-1))
	require.Equal(t, 6, p.Stride(0))
	require.Equal(t, 2, p.Stride(1))
	require.Equal(t, 1, p.Stride(-1))
	require.Panics(t, func() { _ = p.Dim(3) })
	require.Panics(t, func() { _ = p.Dim(-4) })
	require.Panics(t, func() { _ = p.Stride(3) })
}

func TestEqual(t *testing.T) {
	a := FromDims(2, 3)
	b := FromDims(2, 3)
	require.True(t, a.Equal(b))

	// Layout equality ignores the cached code.
	b.Code = a.Code + 1
	require.True(t, a.Equal(b))

	c := FromDimsAndStrides([]int{2, 3}, []int{1, 2}) // Same dims, transposed layout.
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(FromDims(3, 2)))
	require.False(t, a.Equal(Scalar()))
}

func TestGobRoundTrip(t *testing.T) {
	p := FromDimsAndStrides([]int{3, 4}, []int{1, 3})
	p.Code = 0x42
	var buf bytes.Buffer
	require.NoError(t, p.GobSerialize(gob.NewEncoder(&buf)))

	got, err := GobDeserialize(gob.NewDecoder(&buf))
	require.NoError(t, err)
	require.True(t, p.Equal(got))
	require.Equal(t, p.Code, got.Code)
}

func TestGobDeserializeRejectsInvalid(t *testing.T) {
	// A hand-encoded overlapping layout must be rejected on decode.
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	require.NoError(t, enc.Encode(2))
	require.NoError(t, enc.Encode([]int{4, 4}))
	require.NoError(t, enc.Encode([]int{1, 2}))
	require.NoError(t, enc.Encode(int32(0)))

	_, err := GobDeserialize(gob.NewDecoder(&buf))
	require.Error(t, err)

	// Truncated stream.
	var short bytes.Buffer
	require.NoError(t, gob.NewEncoder(&short).Encode(2))
	_, err = GobDeserialize(gob.NewDecoder(&short))
	require.Error(t, err)
}
