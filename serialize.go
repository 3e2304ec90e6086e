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
	"encoding/gob"

	"github.com/pkg/errors"
)

// GobSerialize the pattern in binary format: the used dims and strides plus
// the cached code. Unused slots are not serialized; deserialization rebuilds
// the right-justified form.
func (p *Pattern) GobSerialize(encoder *gob.Encoder) (err error) {
	enc := func(e any) {
		if err != nil {
			return
		}
		err = encoder.Encode(e)
		if err != nil {
			err = errors.Wrapf(err, "failed to serialize Pattern %s", p)
		}
	}
	enc(p.NumAxes)
	enc(p.DimsSlice())
	enc(p.StridesSlice())
	enc(p.Code)
	return
}

// GobDeserialize a Pattern. Returns the new Pattern, or an error if decoding
// fails or the decoded layout is invalid. The cached code is restored as-is,
// without checking it against any registered encoder.
func GobDeserialize(decoder *gob.Decoder) (p Pattern, err error) {
	dec := func(data any) {
		if err != nil {
			return
		}
		err = decoder.Decode(data)
		if err != nil {
			err = errors.Wrapf(err, "failed to deserialize Pattern")
		}
	}
	var numAxes int
	var dims, strides []int
	var code int32
	dec(&numAxes)
	dec(&dims)
	dec(&strides)
	dec(&code)
	if err != nil {
		return
	}
	if numAxes < 0 || numAxes > MaxAxes || len(dims) != numAxes || len(strides) != numAxes {
		err = errors.Errorf("deserialized Pattern is malformed: %d axes with %d dims and %d strides",
			numAxes, len(dims), len(strides))
		return
	}
	p = Scalar()
	p.NumAxes = numAxes
	copy(p.Dims[MaxAxes-numAxes:], dims)
	copy(p.Strides[MaxAxes-numAxes:], strides)
	p.Code = code
	if validErr := p.Check(false); validErr != nil {
		p = Pattern{}
		err = errors.WithMessagef(validErr, "deserialized Pattern is invalid")
		return
	}
	return
}
