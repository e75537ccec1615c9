// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import "github.com/oskarpol/streammark/pkg/locality"

// Chain drains a first, then b, translating b's offsets to continue a's
// coordinate system (b is wrapped in a Shift by a's final Processed once a
// is exhausted).
type Chain struct {
	a        Source
	b        Source
	aDone    bool
	shiftedB Source // b wrapped in Shift, built lazily once a is exhausted
	aFinal   Processed
}

// NewChain builds a Source presenting a followed by b as a single stream.
func NewChain(a, b Source) *Chain {
	return &Chain{a: a, b: b}
}

func (c *Chain) NextChar() (locality.Local[SourceEvent], bool, error) {
	if !c.aDone {
		ev, ok, err := c.a.NextChar()
		if err != nil {
			return locality.Local[SourceEvent]{}, false, err
		}
		if ok {
			return ev, true, nil
		}
		c.aDone = true
		c.aFinal = c.a.Processed()
		c.shiftedB = NewShift(c.b, c.aFinal)
	}
	return c.shiftedB.NextChar()
}

func (c *Chain) Processed() Processed {
	if !c.aDone {
		return c.a.Processed()
	}
	return c.shiftedB.Processed()
}
