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

package tagger

import (
	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/parser"
	"github.com/oskarpol/streammark/pkg/source"
)

// pendingRaw recovers the raw events buffered so far for any state short of
// Init, regardless of whether the accumulator lives in readTag or in the
// lighter-weight angle/slash fields used before a tag name is known.
func pendingRaw(st State) []locality.Local[source.SourceEvent] {
	switch st.kind {
	case kindInit:
		return nil
	case kindMayBeTag:
		return []locality.Local[source.SourceEvent]{st.angle}
	case kindSlashedTag:
		return []locality.Local[source.SourceEvent]{st.angle, st.slash}
	default:
		return st.read.raw
	}
}

// Eof implements runtime.Machine. A tag left open at EOF is resolved per
// cfg.Eof: Error surfaces EofInTag, Skip drops the buffered raw events,
// Text re-emits them as plain Char/Breaker events.
func (Machine) Eof(st State, cfg Config) ([]locality.Local[parser.Event[Tag]], error) {
	raw := pendingRaw(st)
	if len(raw) == 0 {
		return nil, nil
	}
	switch cfg.Eof {
	case EofSkip:
		return nil, nil
	case EofText:
		return asEventSlice(raw), nil
	default:
		return nil, EofInTag{Raw: raw}
	}
}
