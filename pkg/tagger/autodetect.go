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
	"log/slog"

	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/parser"
	"github.com/oskarpol/streammark/pkg/runtime"
	"github.com/oskarpol/streammark/pkg/source"
)

// Thresholds are the advisory heuristics an AutoDetect commits on: enough
// recognized-dictionary ("common") tags, or enough tags overall ("named",
// whether or not the name is in the dictionary).
type Thresholds struct {
	MinCommonTags int
	MinNamedTags  int
}

// DefaultThresholds matches the example heuristic from spec.md §4.5:
// commit to Xhtml after 2 common tags or 5 named tags.
func DefaultThresholds() Thresholds {
	return Thresholds{MinCommonTags: 2, MinNamedTags: 5}
}

// Mode is the auto-detect front-end's commitment.
type Mode int

const (
	ModeUnknown Mode = iota
	// ModeXhtml passes recognized tags through as Parsed(Tag).
	ModeXhtml
	// ModePlain re-expands every recognized tag into its raw source
	// events: the input is treated as plain text that incidentally
	// contains '<' and '>'.
	ModePlain
)

// maxProbeBuffer bounds how many events AutoDetect will buffer while still
// undecided, so a pathological input that never satisfies either threshold
// cannot grow the probe buffer unboundedly before falling back to Plain.
const maxProbeBuffer = 512

// AutoDetect wraps a tagger Driver, probing a bounded prefix of its output
// before committing to Mode. Its internal driver always runs with
// Config.Eof = EofText regardless of what was requested: whichever mode
// wins, an unterminated trailing tag attempt must come back as literal
// text rather than be lost or hard-error the whole stream.
type AutoDetect struct {
	inner      parser.Parser[Tag]
	thresholds Thresholds

	mode      Mode
	committed bool

	probeBuf   []locality.Local[parser.Event[Tag]]
	commonSeen int
	namedSeen  int

	flatQueue []locality.Local[parser.Event[Tag]]
}

// NewAutoDetect builds the probing front-end over a fresh tagger machine
// configured with cfg's capture settings (its Eof policy is overridden).
func NewAutoDetect(cfg Config, thresholds Thresholds) *AutoDetect {
	cfg.Eof = EofText
	driver := runtime.NewDriver[State, Tag, Config](Machine{}, State{}, cfg)
	return &AutoDetect{inner: driver, thresholds: thresholds}
}

func isRealTag(t Tag) bool {
	return t.Closing == Open || t.Closing == Close || t.Closing == VoidClosing
}

func (a *AutoDetect) probe(src source.Source) error {
	for {
		ev, ok, err := a.inner.NextEvent(src)
		if err != nil {
			return err
		}
		if !ok {
			a.commit(ModePlain, src)
			return nil
		}
		a.probeBuf = append(a.probeBuf, ev)
		if ev.Inner.Kind == parser.KindParsed && isRealTag(ev.Inner.Parsed) {
			a.namedSeen++
			if !ev.Inner.Parsed.Name.IsOther() {
				a.commonSeen++
			}
		}
		if a.commonSeen >= a.thresholds.MinCommonTags || a.namedSeen >= a.thresholds.MinNamedTags {
			a.commit(ModeXhtml, src)
			return nil
		}
		if len(a.probeBuf) >= maxProbeBuffer {
			a.commit(ModePlain, src)
			return nil
		}
	}
}

func (a *AutoDetect) commit(mode Mode, src source.Source) {
	a.mode = mode
	a.committed = true
	slog.Debug("tagger auto-detect committed", "mode", mode, "commonTags", a.commonSeen, "namedTags", a.namedSeen, "probed", len(a.probeBuf))
}

// NextEvent implements parser.Parser[Tag].
func (a *AutoDetect) NextEvent(src source.Source) (locality.Local[parser.Event[Tag]], bool, error) {
	for {
		if len(a.flatQueue) > 0 {
			ev := a.flatQueue[0]
			a.flatQueue = a.flatQueue[1:]
			return ev, true, nil
		}

		if !a.committed {
			if err := a.probe(src); err != nil {
				return locality.Local[parser.Event[Tag]]{}, false, err
			}
		}

		var ev locality.Local[parser.Event[Tag]]
		var ok bool
		var err error
		if len(a.probeBuf) > 0 {
			ev, a.probeBuf = a.probeBuf[0], a.probeBuf[1:]
			ok = true
		} else {
			ev, ok, err = a.inner.NextEvent(src)
			if err != nil || !ok {
				return locality.Local[parser.Event[Tag]]{}, ok, err
			}
		}

		if a.mode == ModePlain && ev.Inner.Kind == parser.KindParsed {
			a.flatQueue = asEventSlice(ev.Inner.Parsed.Raw)
			continue
		}
		return ev, true, nil
	}
}
