// Package supplier holds the static registry of known supplier profiles:
// a detection pattern per supplier plus the line grammar its documents use.
package supplier

import (
	"regexp"
	"strings"
)

// LineGrammar identifies the closed set of line formats the receipt parser
// understands. Keeping it a tagged enum (instead of per-supplier parser
// functions) means a single switch extracts fields for every profile.
type LineGrammar int

const (
	// GrammarSimpleRetail: "quantity unit description  price" as printed by
	// hardware-store tills.
	GrammarSimpleRetail LineGrammar = iota
	// GrammarProfessionalFull: "articleNumber description quantity unit
	// unitPrice lineTotal" as printed on distributor delivery notes.
	GrammarProfessionalFull
	// GrammarProfessionalShort: professional line without the unit price.
	GrammarProfessionalShort
	// GrammarDescriptionPrice: bare "description  price", only accepted
	// under the header-noise guard.
	GrammarDescriptionPrice
)

type LinePattern struct {
	Grammar LineGrammar
	Re      *regexp.Regexp
}

// Profile describes one known supplier. Detect is nil only on the implicit
// generic profile.
type Profile struct {
	ID           string
	DisplayName  string
	Detect       *regexp.Regexp
	LinePatterns []LinePattern
	DatePattern  *regexp.Regexp
	TotalPattern *regexp.Regexp
	Aliases      TableAliases
}

var (
	reSimpleRetail = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s+([A-Za-zÄÖÜäöüß²]{1,6}\.?)\s+(.+?)\s{2,}(-?\d[\d.,]*)(?:\s*(?:€|EUR))?(?:\s+[AB*])?\s*$`)
	reProfFull     = regexp.MustCompile(`^(\S{3,})\s+(.+?)\s+(\d[\d.,]*)\s+([A-Za-zÄÖÜäöüß²]{1,6}\.?)\s+(\d[\d.,]*)\s+(-?\d[\d.,]*)\s*$`)
	reProfShort    = regexp.MustCompile(`^(\S{3,})\s+(.+?)\s+(\d[\d.,]*)\s+([A-Za-zÄÖÜäöüß²]{1,6}\.?)\s+(-?\d[\d.,]*)\s*$`)
	reDescPrice    = regexp.MustCompile(`^(\p{L}.+?)\s{2,}(-?\d[\d.,]*)(?:\s*(?:€|EUR))?(?:\s+[AB*])?\s*$`)
)

var simpleGrammar = []LinePattern{
	{Grammar: GrammarSimpleRetail, Re: reSimpleRetail},
}

// Professional profiles try the richer pattern first; the order is
// load-bearing, the short pattern would truncate an article number into the
// description on a full line.
var professionalGrammar = []LinePattern{
	{Grammar: GrammarProfessionalFull, Re: reProfFull},
	{Grammar: GrammarProfessionalShort, Re: reProfShort},
}

// GenericCascade is the fallback tried line by line when no supplier was
// detected. First match wins; the bare description+price form comes last.
var GenericCascade = []LinePattern{
	{Grammar: GrammarSimpleRetail, Re: reSimpleRetail},
	{Grammar: GrammarProfessionalFull, Re: reProfFull},
	{Grammar: GrammarProfessionalShort, Re: reProfShort},
	{Grammar: GrammarDescriptionPrice, Re: reDescPrice},
}

// registry order matters: Detect returns the first profile whose pattern
// hits the document header.
var registry = []Profile{
	{
		ID:           "OBI",
		DisplayName:  "OBI Baumarkt",
		Detect:       regexp.MustCompile(`(?i)\bOBI\b`),
		LinePatterns: simpleGrammar,
		Aliases:      genericAliases,
	},
	{
		ID:           "BAUHAUS",
		DisplayName:  "BAUHAUS",
		Detect:       regexp.MustCompile(`(?i)BAUHAUS`),
		LinePatterns: simpleGrammar,
		Aliases:      genericAliases,
	},
	{
		ID:           "WUERTH",
		DisplayName:  "Würth",
		Detect:       regexp.MustCompile(`(?i)W(?:Ü|UE?)RTH`),
		LinePatterns: professionalGrammar,
		DatePattern:  regexp.MustCompile(`(?i)(?:Beleg|Liefer|Rechnungs)datum[:\s]*(\d{1,2}\.\d{1,2}\.\d{2,4})`),
		Aliases:      wuerthAliases,
	},
	{
		ID:           "KLOECKNER",
		DisplayName:  "Klöckner & Co",
		Detect:       regexp.MustCompile(`(?i)KL(?:Ö|OE?)CKNER`),
		LinePatterns: professionalGrammar,
		DatePattern:  regexp.MustCompile(`(?i)(?:Beleg|Liefer|Rechnungs)datum[:\s]*(\d{1,2}\.\d{1,2}\.\d{2,4})`),
		Aliases:      kloecknerAliases,
	},
	{
		ID:           "HORNBACH",
		DisplayName:  "HORNBACH",
		Detect:       regexp.MustCompile(`(?i)HORNBACH`),
		LinePatterns: simpleGrammar,
		Aliases:      genericAliases,
	},
	{
		ID:           "TOOM",
		DisplayName:  "toom Baumarkt",
		Detect:       regexp.MustCompile(`(?i)\bTOOM\b`),
		LinePatterns: simpleGrammar,
		Aliases:      genericAliases,
	},
	{
		ID:           "HAGEBAU",
		DisplayName:  "hagebaumarkt",
		Detect:       regexp.MustCompile(`(?i)HAGEBAU`),
		LinePatterns: simpleGrammar,
		Aliases:      genericAliases,
	},
}

const detectWindow = 500

// Detect scans the document header (first 500 characters) against every
// registered profile in order and returns the first hit, or nil.
func Detect(text string) *Profile {
	header := text
	if runes := []rune(header); len(runes) > detectWindow {
		header = string(runes[:detectWindow])
	}
	for i := range registry {
		if registry[i].Detect.MatchString(header) {
			return &registry[i]
		}
	}
	return nil
}

// ByID returns the registered profile with the given id, or nil. The lookup
// is case-insensitive so caller-supplied hints work as-is.
func ByID(id string) *Profile {
	key := strings.ToUpper(strings.TrimSpace(id))
	for i := range registry {
		if registry[i].ID == key {
			return &registry[i]
		}
	}
	return nil
}

// FromTransactionDescriptor infers a supplier id from a banking-transaction
// descriptor ("LASTSCHRIFT OBI SAGT DANKE FIL.12" -> OBI). Returns nil when
// no registered supplier appears in the descriptor.
func FromTransactionDescriptor(descriptor string) *string {
	if p := Detect(descriptor); p != nil {
		id := p.ID
		return &id
	}
	return nil
}

// Profiles returns the registry in registration order.
func Profiles() []Profile {
	out := make([]Profile, len(registry))
	copy(out, registry)
	return out
}

var headerNoise = regexp.MustCompile(`(?i)\b(filiale|markt|kasse|bon|beleg|rechnung|lieferschein|datum|uhr(?:zeit)?|bediener|mwst|ust|steuer|netto|brutto|summe|gesamt|total|zwischensumme|iban|bic|blz|danke?|rückgeld|bargeld|bar|karte|girocard|tse|terminal|www)\b`)

// IsHeaderNoise guards the bare description+price grammar: till headers and
// footers ("SUMME", "Bediener 04", IBAN lines) must not become line items.
func IsHeaderNoise(description string) bool {
	return headerNoise.MatchString(description)
}
