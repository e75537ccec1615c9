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

package entity

import (
	"github.com/oskarpol/streammark/pkg/locality"
	"github.com/oskarpol/streammark/pkg/parser"
)

// Eof implements runtime.Machine: any state short of Init was still holding
// onto unfinalized input, which is flushed verbatim as literal chars.
func (Machine) Eof(st State, table *Table) ([]locality.Local[parser.Event[Entity]], error) {
	switch st.kind {
	case kindInit:
		return nil, nil
	case kindMayBeEntity:
		return asChars[Entity](st.amp), nil
	case kindMayBeNumEntity:
		return asChars[Entity](st.amp, st.hash), nil
	default:
		return asChars[Entity](st.read.chars...), nil
	}
}
