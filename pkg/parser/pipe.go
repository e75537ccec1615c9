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

package parser

import (
	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/source"
)

// ToBreaker is implemented by parsed datum types that flatten directly into
// a single Breaker (see PipeBreaker).
type ToBreaker interface {
	ToBreaker() source.Breaker
}

// PipeBreaker adapts a Parser[D] (whose D knows how to become a Breaker)
// into a source.PipeParser, by mapping every Parsed(d) into Breaker(d.ToBreaker()).
// Combine with source.Pipe to obtain a plain Source.
func PipeBreaker[D ToBreaker](p Parser[D]) source.PipeParser {
	return &pipeBreaker[D]{parser: p}
}

type pipeBreaker[D ToBreaker] struct {
	parser Parser[D]
}

func (a *pipeBreaker[D]) NextFrom(src source.Source) (locality.Local[source.SourceEvent], bool, error) {
	ev, ok, err := a.parser.NextEvent(src)
	if err != nil || !ok {
		return locality.Local[source.SourceEvent]{}, ok, err
	}
	return locality.Map(ev, eventToSourceEvent(func(d D) source.SourceEvent {
		return source.BreakerEvent(d.ToBreaker())
	})), true, nil
}

// eventToSourceEvent builds the Event[D] -> source.SourceEvent mapper used
// by PipeBreaker, dispatching Parsed(d) through onParsed.
func eventToSourceEvent[D any](onParsed func(D) source.SourceEvent) func(Event[D]) source.SourceEvent {
	return func(ev Event[D]) source.SourceEvent {
		switch ev.Kind {
		case KindChar:
			return source.CharEvent(ev.Char)
		case KindBreaker:
			return source.BreakerEvent(ev.Breaker)
		default:
			return onParsed(ev.Parsed)
		}
	}
}

// PipedWith adapts a Parser[D] into a source.PipeParser by flattening every
// Parsed(d) into the finite sequence of source events flatten(d) returns,
// all of them re-stamped with the parent event's span. A small internal
// queue holds the flattened sequence so the adapter remains pull-based: at
// most one Parser event is "in flight" at a time.
func PipedWith[D any](p Parser[D], flatten func(D) []source.SourceEvent) source.PipeParser {
	return &pipedWith[D]{parser: p, flatten: flatten}
}

type pipedWith[D any] struct {
	parser  Parser[D]
	flatten func(D) []source.SourceEvent
	queue   []locality.Local[source.SourceEvent]
}

func (a *pipedWith[D]) NextFrom(src source.Source) (locality.Local[source.SourceEvent], bool, error) {
	for {
		if len(a.queue) > 0 {
			ev := a.queue[0]
			a.queue = a.queue[1:]
			return ev, true, nil
		}
		ev, ok, err := a.parser.NextEvent(src)
		if err != nil || !ok {
			return locality.Local[source.SourceEvent]{}, ok, err
		}
		switch ev.Inner.Kind {
		case KindChar:
			return locality.WithInner(ev, source.CharEvent(ev.Inner.Char)), true, nil
		case KindBreaker:
			return locality.WithInner(ev, source.BreakerEvent(ev.Inner.Breaker)), true, nil
		default:
			for _, se := range a.flatten(ev.Inner.Parsed) {
				a.queue = append(a.queue, locality.Local[source.SourceEvent]{
					CharSnip: ev.CharSnip,
					ByteSnip: ev.ByteSnip,
					Inner:    se,
				})
			}
			// Loop: if flatten returned nothing, pull the parser again.
		}
	}
}

// PartialFlattener is the function shape PartialPipedWith takes: given a
// parsed datum, either return a replacement sequence of source events
// (ok=true) or hand the original datum back unchanged (ok=false), in which
// case the Parsed(d) event is re-emitted as-is.
type PartialFlattener[D any] func(d D) (events []source.SourceEvent, ok bool)

// PartialPipedWith wraps a Parser[D], letting f decide — per parsed datum —
// whether to replace it with a flattened event sequence or keep it as
// Parsed(d). Unlike PipeBreaker/PipedWith this stays a Parser[D] (it can
// still emit Parsed values), so it composes with Filtered/Option and with
// further PartialPipedWith stages.
func PartialPipedWith[D any](inner Parser[D], f PartialFlattener[D]) Parser[D] {
	return &partialPipedWith[D]{inner: inner, f: f}
}

type partialPipedWith[D any] struct {
	inner Parser[D]
	f     PartialFlattener[D]
	queue []locality.Local[Event[D]]
}

func (p *partialPipedWith[D]) NextEvent(src source.Source) (locality.Local[Event[D]], bool, error) {
	for {
		if len(p.queue) > 0 {
			ev := p.queue[0]
			p.queue = p.queue[1:]
			return ev, true, nil
		}
		ev, ok, err := p.inner.NextEvent(src)
		if err != nil || !ok {
			return ev, ok, err
		}
		if ev.Inner.Kind != KindParsed {
			return ev, true, nil
		}
		events, replace := p.f(ev.Inner.Parsed)
		if !replace {
			return ev, true, nil
		}
		for _, se := range events {
			p.queue = append(p.queue, locality.Local[Event[D]]{
				CharSnip: ev.CharSnip,
				ByteSnip: ev.ByteSnip,
				Inner:    FromSourceEvent[D](se),
			})
		}
		// Loop: if events was empty, pull the inner parser again.
	}
}
