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

// Package runtime holds the one piece of genuine generic plumbing the rest
// of the pipeline builds on: a pull-based driver that turns any
// (State, Data, Context)-shaped state machine into a parser.Parser.
package runtime

import (
	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/parser"
	"github.com/oskarpol/streammark/pkg/source"
)

// Next is what a transition returns: the state to continue with, plus the
// (possibly empty) small run of events that transition produced.
type Next[S any, D any] struct {
	State  S
	Events []locality.Local[parser.Event[D]]
}

// Machine is implemented by every state machine the Driver can run:
// the entity decoder, the tagger, the paragraph detector. S is the
// machine's own state type, D the datum it eventually parses out, C an
// opaque context threaded through every call (e.g. tagger.Config).
type Machine[S any, D any, C any] interface {
	// NextState consumes one source event and the current state, returning
	// the next state and any events that transition produced.
	NextState(state S, event locality.Local[source.SourceEvent], ctx C) (Next[S, D], error)

	// Eof runs once, when the upstream source is exhausted, to flush any
	// state the machine was still holding onto (e.g. an entity decoder
	// sitting in EntityNamed never sees a terminating ';'). It may fail
	// (e.g. the tagger's Error EOF-in-tag policy), in which case the
	// Driver latches SourceInvalid exactly as it does for a NextState error.
	Eof(state S, ctx C) ([]locality.Local[parser.Event[D]], error)
}

// status discriminates the three driver states from spec.md §4.3: Inner(S),
// SourceDone, SourceInvalid.
type status int

const (
	statusInner status = iota
	statusSourceDone
	statusSourceInvalid
)

// Driver is the generic pull engine: it wraps a Machine and an initial
// state, and exposes exactly a parser.Parser[D] to its own callers.
//
// Invariants (mirrors spec.md §4.3):
//  1. the pending-events queue is always drained before the source is
//     consulted again;
//  2. a transition error latches SourceInvalid; every subsequent call
//     returns (false, nil) with no further error;
//  3. on source EOF, Eof is invoked exactly once, its events are drained,
//     then the driver settles into SourceDone;
//  4. state is moved, never cloned: NextState receives the current state by
//     value and hands back its replacement.
type Driver[S any, D any, C any] struct {
	machine Machine[S, D, C]
	state   S
	ctx     C
	status  status
	queue   []locality.Local[parser.Event[D]]
}

// NewDriver builds a Driver starting in state `initial`, running `machine`
// against every source event pulled from whatever Source NextEvent is
// called with, threading ctx through every transition.
func NewDriver[S any, D any, C any](machine Machine[S, D, C], initial S, ctx C) *Driver[S, D, C] {
	return &Driver[S, D, C]{machine: machine, state: initial, ctx: ctx, status: statusInner}
}

// NextEvent implements parser.Parser[D].
func (d *Driver[S, D, C]) NextEvent(src source.Source) (locality.Local[parser.Event[D]], bool, error) {
	for {
		if len(d.queue) > 0 {
			ev := d.queue[0]
			d.queue = d.queue[1:]
			return ev, true, nil
		}

		switch d.status {
		case statusSourceInvalid, statusSourceDone:
			return locality.Local[parser.Event[D]]{}, false, nil
		}

		ev, ok, err := src.NextChar()
		if err != nil {
			d.status = statusSourceInvalid
			return locality.Local[parser.Event[D]]{}, false, err
		}
		if !ok {
			events, eofErr := d.machine.Eof(d.state, d.ctx)
			if eofErr != nil {
				d.status = statusSourceInvalid
				return locality.Local[parser.Event[D]]{}, false, eofErr
			}
			d.queue = append(d.queue, events...)
			d.status = statusSourceDone
			continue
		}

		next, err := d.machine.NextState(d.state, ev, d.ctx)
		if err != nil {
			d.status = statusSourceInvalid
			return locality.Local[parser.Event[D]]{}, false, err
		}
		d.state = next.State
		d.queue = append(d.queue, next.Events...)
	}
}
