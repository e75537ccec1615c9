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

// Kind discriminates a SourceEvent. SourceEvent is a tagged struct rather
// than an interface — the same shape golang.org/x/net/html.Token uses for
// its own tokenizer events — so zero values are cheap and comparisons are
// straightforward in tests.
type Kind int

const (
	KindChar Kind = iota
	KindBreaker
)

// SourceEvent is the base event a Source yields: either a single code point
// or a structural Breaker.
type SourceEvent struct {
	Kind    Kind
	Char    rune
	Breaker Breaker
}

// CharEvent builds a SourceEvent carrying a code point.
func CharEvent(r rune) SourceEvent {
	return SourceEvent{Kind: KindChar, Char: r}
}

// BreakerEvent builds a SourceEvent carrying a Breaker.
func BreakerEvent(b Breaker) SourceEvent {
	return SourceEvent{Kind: KindBreaker, Breaker: b}
}

func (e SourceEvent) String() string {
	if e.Kind == KindChar {
		return string(e.Char)
	}
	return e.Breaker.String()
}

// Processed is the cumulative count of chars/bytes a Source has yielded so
// far. Chain uses it to shift a downstream Source's coordinate system to
// continue the upstream one.
type Processed struct {
	Chars int
	Bytes int
}

// Add returns the sum of two Processed counters.
func (p Processed) Add(other Processed) Processed {
	return Processed{Chars: p.Chars + other.Chars, Bytes: p.Bytes + other.Bytes}
}
