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

// Package paragraph recognizes a blank line (two consecutive line breaks,
// with only whitespace between them) in an otherwise plain char/breaker
// stream and reports it as a single structural Paragraph event.
package paragraph

import "github.com/oskarpol/streammark/pkg/source"

// Paragraph is the zero-field marker datum this package's Machine parses.
// It carries no fields of its own: the span stamped on its Local wrapper is
// the whole of what callers need (where the blank line started and ended).
type Paragraph struct{}

// ToBreaker lets a Paragraph stream compose back into a plain
// char/breaker Source via parser.PipeBreaker, so a downstream stage (the
// tagger, in particular) sees it as an ordinary source.Paragraph breaker.
func (Paragraph) ToBreaker() source.Breaker {
	return source.Paragraph
}
