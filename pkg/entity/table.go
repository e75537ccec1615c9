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

// entry is one row of the named-entity table: its resolved value, and
// whether HTML5's legacy rule lets it resolve without a trailing ';'.
type entry struct {
	instance Instance
	legacy   bool
}

// Table is a read-only mapping from entity name (the text between '&' and
// ';', case-sensitive) to its decoded Instance. It stands in for the spec's
// "opaque entity name table" external collaborator (spec.md §6): the full
// W3C entities.json carries over 2000 rows, which is outside this module's
// scope to hand-transcribe, so Table ships a curated subset wide enough to
// cover markup in the wild plus every name exercised by this package's own
// tests. Construct once via NewTable and share by reference.
type Table struct {
	entries map[string]entry
}

// NewTable builds the default curated entity table.
func NewTable() *Table {
	t := &Table{entries: make(map[string]entry, len(defaultEntries))}
	for name, e := range defaultEntries {
		t.entries[name] = e
	}
	return t
}

// Lookup resolves name (without '&' or ';') to its Instance. hasSemicolon
// indicates whether the reference in the source text was terminated by
// ';'; entries not marked legacy only resolve when hasSemicolon is true.
func (t *Table) Lookup(name string, hasSemicolon bool) (Instance, bool) {
	e, ok := t.entries[name]
	if !ok {
		return Instance{}, false
	}
	if !hasSemicolon && !e.legacy {
		return Instance{}, false
	}
	return e.instance, true
}

// defaultEntries is the curated named-entity set. Legacy entries (no
// trailing ';' required) are exactly HTML5's documented semicolon-optional
// subset; every other name requires ';'.
var defaultEntries = map[string]entry{
	// XML-inherited, legacy-optional.
	"quot": {Char('"'), true},
	"amp":  {Char('&'), true},
	"AMP":  {Char('&'), true},
	"apos": {Char('\''), false},
	"lt":   {Char('<'), true},
	"LT":   {Char('<'), true},
	"gt":   {Char('>'), true},
	"GT":   {Char('>'), true},

	// Common legacy Latin-1 names (semicolon-optional, matching HTML5).
	"nbsp":   {Char(' '), true},
	"iexcl":  {Char('¡'), true},
	"cent":   {Char('¢'), true},
	"pound":  {Char('£'), true},
	"curren": {Char('¤'), true},
	"yen":    {Char('¥'), true},
	"sect":   {Char('§'), true},
	"copy":   {Char('©'), true},
	"COPY":   {Char('©'), true},
	"ordf":   {Char('ª'), true},
	"laquo":  {Char('«'), true},
	"reg":    {Char('®'), true},
	"REG":    {Char('®'), true},
	"deg":    {Char('°'), true},
	"plusmn": {Char('±'), true},
	"sup2":   {Char('²'), true},
	"sup3":   {Char('³'), true},
	"micro":  {Char('µ'), true},
	"para":   {Char('¶'), true},
	"middot": {Char('·'), true},
	"cedil":  {Char('¸'), true},
	"sup1":   {Char('¹'), true},
	"ordm":   {Char('º'), true},
	"raquo":  {Char('»'), true},
	"frac14": {Char('¼'), true},
	"frac12": {Char('½'), true},
	"frac34": {Char('¾'), true},
	"iquest": {Char('¿'), true},
	"Agrave": {Char('À'), true},
	"Aacute": {Char('Á'), true},
	"Acirc":  {Char('Â'), true},
	"Atilde": {Char('Ã'), true},
	"Auml":   {Char('Ä'), true},
	"Aring":  {Char('Å'), true},
	"AElig":  {Char('Æ'), true},
	"Ccedil": {Char('Ç'), true},
	"Egrave": {Char('È'), true},
	"Eacute": {Char('É'), true},
	"Ecirc":  {Char('Ê'), true},
	"Euml":   {Char('Ë'), true},
	"Igrave": {Char('Ì'), true},
	"Iacute": {Char('Í'), true},
	"Icirc":  {Char('Î'), true},
	"Iuml":   {Char('Ï'), true},
	"ETH":    {Char('Ð'), true},
	"Ntilde": {Char('Ñ'), true},
	"Ograve": {Char('Ò'), true},
	"Oacute": {Char('Ó'), true},
	"Ocirc":  {Char('Ô'), true},
	"Otilde": {Char('Õ'), true},
	"Ouml":   {Char('Ö'), true},
	"times":  {Char('×'), true},
	"Oslash": {Char('Ø'), true},
	"Ugrave": {Char('Ù'), true},
	"Uacute": {Char('Ú'), true},
	"Ucirc":  {Char('Û'), true},
	"Uuml":   {Char('Ü'), true},
	"Yacute": {Char('Ý'), true},
	"THORN":  {Char('Þ'), true},
	"szlig":  {Char('ß'), true},
	"agrave": {Char('à'), true},
	"aacute": {Char('á'), true},
	"acirc":  {Char('â'), true},
	"atilde": {Char('ã'), true},
	"auml":   {Char('ä'), true},
	"aring":  {Char('å'), true},
	"aelig":  {Char('æ'), true},
	"ccedil": {Char('ç'), true},
	"egrave": {Char('è'), true},
	"eacute": {Char('é'), true},
	"ecirc":  {Char('ê'), true},
	"euml":   {Char('ë'), true},
	"igrave": {Char('ì'), true},
	"iacute": {Char('í'), true},
	"icirc":  {Char('î'), true},
	"iuml":   {Char('ï'), true},
	"eth":    {Char('ð'), true},
	"ntilde": {Char('ñ'), true},
	"ograve": {Char('ò'), true},
	"oacute": {Char('ó'), true},
	"ocirc":  {Char('ô'), true},
	"otilde": {Char('õ'), true},
	"ouml":   {Char('ö'), true},
	"divide": {Char('÷'), true},
	"oslash": {Char('ø'), true},
	"ugrave": {Char('ù'), true},
	"uacute": {Char('ú'), true},
	"ucirc":  {Char('û'), true},
	"uuml":   {Char('ü'), true},
	"yacute": {Char('ý'), true},
	"thorn":  {Char('þ'), true},
	"yuml":   {Char('ÿ'), true},

	// Greek letters, semicolon-required.
	"Alpha": {Char('Α'), false}, "alpha": {Char('α'), false},
	"Beta": {Char('Β'), false}, "beta": {Char('β'), false},
	"Gamma": {Char('Γ'), false}, "gamma": {Char('γ'), false},
	"Delta": {Char('Δ'), false}, "delta": {Char('δ'), false},
	"Epsilon": {Char('Ε'), false}, "epsilon": {Char('ε'), false},
	"Zeta": {Char('Ζ'), false}, "zeta": {Char('ζ'), false},
	"Eta": {Char('Η'), false}, "eta": {Char('η'), false},
	"Theta": {Char('Θ'), false}, "theta": {Char('θ'), false},
	"Iota": {Char('Ι'), false}, "iota": {Char('ι'), false},
	"Kappa": {Char('Κ'), false}, "kappa": {Char('κ'), false},
	"Lambda": {Char('Λ'), false}, "lambda": {Char('λ'), false},
	"Mu": {Char('Μ'), false}, "mu": {Char('μ'), false},
	"Nu": {Char('Ν'), false}, "nu": {Char('ν'), false},
	"Xi": {Char('Ξ'), false}, "xi": {Char('ξ'), false},
	"Omicron": {Char('Ο'), false}, "omicron": {Char('ο'), false},
	"Pi": {Char('Π'), false}, "pi": {Char('π'), false},
	"Rho": {Char('Ρ'), false}, "rho": {Char('ρ'), false},
	"Sigma": {Char('Σ'), false}, "sigma": {Char('σ'), false},
	"Tau": {Char('Τ'), false}, "tau": {Char('τ'), false},
	"Upsilon": {Char('Υ'), false}, "upsilon": {Char('υ'), false},
	"Phi": {Char('Φ'), false}, "phi": {Char('φ'), false},
	"Chi": {Char('Χ'), false}, "chi": {Char('χ'), false},
	"Psi": {Char('Ψ'), false}, "psi": {Char('ψ'), false},
	"Omega": {Char('Ω'), false}, "omega": {Char('ω'), false},

	// Arrows, math and set operators, semicolon-required.
	"larr": {Char('←'), false}, "uarr": {Char('↑'), false},
	"rarr": {Char('→'), false}, "darr": {Char('↓'), false},
	"harr": {Char('↔'), false}, "crarr": {Char('↵'), false},
	"forall": {Char('∀'), false}, "part": {Char('∂'), false},
	"exist": {Char('∃'), false}, "empty": {Char('∅'), false},
	"nabla": {Char('∇'), false}, "isin": {Char('∈'), false},
	"notin": {Char('∉'), false}, "ni": {Char('∋'), false},
	"prod": {Char('∏'), false}, "sum": {Char('∑'), false},
	"minus": {Char('−'), false}, "lowast": {Char('∗'), false},
	"radic": {Char('√'), false}, "prop": {Char('∝'), false},
	"infin": {Char('∞'), false}, "ang": {Char('∠'), false},
	"and": {Char('∧'), false}, "or": {Char('∨'), false},
	"cap": {Char('∩'), false}, "cup": {Char('∪'), false},
	"int": {Char('∫'), false}, "there4": {Char('∴'), false},
	"sim": {Char('∼'), false}, "cong": {Char('≅'), false},
	"asymp": {Char('≈'), false}, "ne": {Char('≠'), false},
	"equiv": {Char('≡'), false}, "le": {Char('≤'), false},
	"ge": {Char('≥'), false}, "sub": {Char('⊂'), false},
	"sup": {Char('⊃'), false}, "nsub": {Char('⊄'), false},
	"sube": {Char('⊆'), false}, "supe": {Char('⊇'), false},
	"oplus": {Char('⊕'), false}, "otimes": {Char('⊗'), false},
	"perp": {Char('⊥'), false}, "sdot": {Char('⋅'), false},
	"GreaterGreater": {Char('⪢'), false}, "LessLess": {Char('⪡'), false},
	"NotGreaterGreater": {Char2('≫', '̸'), false},

	// Typography, semicolon-required.
	"mdash": {Char('—'), false}, "ndash": {Char('–'), false},
	"lsquo": {Char('‘'), false}, "rsquo": {Char('’'), false},
	"ldquo": {Char('“'), false}, "rdquo": {Char('”'), false},
	"bull": {Char('•'), false}, "hellip": {Char('…'), false},
	"prime": {Char('′'), false}, "Prime": {Char('″'), false},
	"oline": {Char('‾'), false}, "frasl": {Char('⁄'), false},
	"trade": {Char('™'), false}, "alefsym": {Char('ℵ'), false},
	"lceil": {Char('⌈'), false}, "rceil": {Char('⌉'), false},
	"lfloor": {Char('⌊'), false}, "rfloor": {Char('⌋'), false},
	"loz": {Char('◊'), false}, "spades": {Char('♠'), false},
	"clubs": {Char('♣'), false}, "hearts": {Char('♥'), false},
	"diams": {Char('♦'), false}, "euro": {Char('€'), false},
}
