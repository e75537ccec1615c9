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

// Source is a pull-based producer of Local[SourceEvent]s.
//
// NextChar returns (event, true, nil) for each event in source order, then
// (zero, false, nil) exactly once EOF is reached, and forever after.
// A non-nil error means the Source itself is now invalid: callers must not
// call NextChar again. Implementations are expected to be single-threaded
// and called only by one consumer at a time (see spec.md §5).
type Source interface {
	NextChar() (locality.Local[SourceEvent], bool, error)
	Processed() Processed
}

// PipeParser is the shape every Parser-to-Source flattening adapter
// conforms to: given an upstream Source, produce the next SourceEvent.
// PipeBreaker and PipedWith (pkg/parser) both implement it.
type PipeParser interface {
	NextFrom(src Source) (locality.Local[SourceEvent], bool, error)
}

// Pipe binds an upstream Source to a PipeParser, producing a Source. It is
// the literal "delegates next_char to parser.next_char(source)" combinator
// from spec.md §4.2.
func Pipe(upstream Source, p PipeParser) Source {
	return &pipeSource{upstream: upstream, pipeParser: p}
}

type pipeSource struct {
	upstream   Source
	pipeParser PipeParser
}

func (s *pipeSource) NextChar() (locality.Local[SourceEvent], bool, error) {
	return s.pipeParser.NextFrom(s.upstream)
}

func (s *pipeSource) Processed() Processed {
	return s.upstream.Processed()
}
