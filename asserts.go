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
	"fmt"
)

// HasPattern is an interface for objects that carry a layout Pattern --
// typically a tensor header embedding one.
type HasPattern interface {
	LayoutPattern() Pattern
}

// LayoutPattern returns a copy of itself. It implements the HasPattern
// interface.
func (p Pattern) LayoutPattern() Pattern { return p }

// AssertValid checks the pattern invariants (see Check) and panics with the
// violation if any fails. Meant to be called eagerly after every
// shape-mutating operation in debug builds and defensively in release: an
// invalid pattern means its owner constructed it incorrectly.
func (p *Pattern) AssertValid(checkCode bool) {
	err := p.Check(checkCode)
	if err != nil {
		panic(fmt.Sprintf("patterns.AssertValid(checkCode=%v): %+v", checkCode, err))
	}
}

// CheckValid checks the invariants of the pattern carried by patterned.
//
// It returns an error naming the first violated invariant, or nil.
func CheckValid(patterned HasPattern, checkCode bool) error {
	p := patterned.LayoutPattern()
	return p.Check(checkCode)
}

// AssertValid checks the invariants of the pattern carried by patterned.
//
// It panics if any is violated.
func AssertValid(patterned HasPattern, checkCode bool) {
	p := patterned.LayoutPattern()
	p.AssertValid(checkCode)
}
