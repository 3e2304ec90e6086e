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

import "github.com/gomlx/exceptions"

// CodeFunc computes the shape-class fingerprint of a pattern from its current
// dims and strides. The encoding algorithm lives outside this package (see
// package patterncode for the standard one); here the resulting int32 is only
// stored, refreshed and compared.
type CodeFunc func(p *Pattern) int32

// codeFunc is the registered encoder. Registration happens at init time
// (typically from the encoder package's own init), so no locking.
var codeFunc CodeFunc

// RegisterCodeFunc registers the encoder used by RefreshCode and by
// IsValid/Check with checkCode=true. It is meant to be called once, from the
// encoder package's init -- importing github.com/gomlx/patterns/patterncode
// (blank import suffices) registers the standard encoder.
//
// It panics if an encoder is already registered.
func RegisterCodeFunc(fn CodeFunc) {
	if codeFunc != nil {
		exceptions.Panicf("patterns.RegisterCodeFunc: a pattern code function is already registered")
	}
	if fn == nil {
		exceptions.Panicf("patterns.RegisterCodeFunc: fn must not be nil")
	}
	codeFunc = fn
}

// HasRegisteredCodeFunc reports whether a pattern code encoder has been
// registered.
func HasRegisteredCodeFunc() bool { return codeFunc != nil }

// RefreshCode recomputes the pattern's cached code through the registered
// encoder. Owners must call it after any change to Dims, Strides or NumAxes,
// before the pattern participates in code-keyed dispatch or is checked with
// IsValid(true).
//
// It panics if no encoder is registered.
func (p *Pattern) RefreshCode() {
	if codeFunc == nil {
		exceptions.Panicf("Pattern.RefreshCode: no pattern code function registered -- import github.com/gomlx/patterns/patterncode")
	}
	p.Code = codeFunc(p)
}

// refreshCode is the constructor-side refresh: a no-op when no encoder is
// registered, in which case Code stays 0 and only IsValid(true) will complain.
func (p *Pattern) refreshCode() {
	if codeFunc != nil {
		p.Code = codeFunc(p)
	}
}
