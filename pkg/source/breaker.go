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

// Package source defines the base event stream of the pipeline (SourceEvent,
// Breaker), the Source pull interface, and the adapters that compose Sources
// together (StrSource, Chain, Shift, Filter, MapChar, IntoSeparator,
// MergeSeparator, Pipe).
package source

// Breaker is an ordered whitespace/structural category. The order is
// inclusive: merging two breakers over the same region keeps the
// higher-ordered one (see Breaker.Merge).
type Breaker int

const (
	None Breaker = iota
	Space
	Word
	Line
	Sentence
	Paragraph
	Section
)

func (b Breaker) String() string {
	switch b {
	case None:
		return "None"
	case Space:
		return "Space"
	case Word:
		return "Word"
	case Line:
		return "Line"
	case Sentence:
		return "Sentence"
	case Paragraph:
		return "Paragraph"
	case Section:
		return "Section"
	default:
		return "Breaker(?)"
	}
}

// Merge combines two breakers occupying adjacent spans into one, per the
// package's fixed merge rule.
//
// Open Question #1 in the specification leaves this rule to the
// implementer: one source variant merges two adjacent Sentence breakers
// into a Paragraph; another (chosen here) simply keeps the higher-ordered
// of the two under the fixed Breaker order. We pick the latter — plain
// max-of-the-ordered-set — because it is associative and idempotent
// without a special case, which MergeSeparator's tests rely on.
func (b Breaker) Merge(other Breaker) Breaker {
	if other > b {
		return other
	}
	return b
}
