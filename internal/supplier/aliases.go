package supplier

// TableAliases maps the canonical line-item fields onto the header names a
// supplier uses in its export tables. A header cell matches an alias when it
// equals or contains it, case-insensitive, after stripping everything that
// is not a letter or digit. Extra columns are folded into the description.
type TableAliases struct {
	ArticleNumber []string
	Description   []string
	Extra         []string
	Quantity      []string
	Unit          []string
	UnitPrice     []string
	LineTotal     []string
}

var genericAliases = TableAliases{
	ArticleNumber: []string{"artikelnummer", "artikelnr", "artnr", "artikel", "bestellnr", "sku"},
	Description:   []string{"bezeichnung", "beschreibung", "artikelbezeichnung", "name", "text", "position"},
	Quantity:      []string{"menge", "anzahl", "stück", "stueck", "qty"},
	Unit:          []string{"mengeneinheit", "einheit", "me", "einh"},
	UnitPrice:     []string{"einzelpreis", "stückpreis", "stueckpreis", "epreis", "preis"},
	LineTotal:     []string{"gesamtpreis", "gesamtbetrag", "positionswert", "gesamt", "betrag", "summe"},
}

var wuerthAliases = TableAliases{
	ArticleNumber: []string{"artikelnummer", "artnr", "wuerthnr", "würthnr", "bestellnr"},
	Description:   []string{"artikelbezeichnung", "bezeichnung", "beschreibung", "name", "text"},
	Quantity:      []string{"menge", "liefermenge", "anzahl"},
	Unit:          []string{"mengeneinheit", "verkaufseinheit", "einheit", "me"},
	UnitPrice:     []string{"einzelpreis", "preisje", "preis"},
	LineTotal:     []string{"positionswert", "gesamtpreis", "nettowert", "betrag"},
}

// Klöckner exports carry the dimension and profile in separate columns;
// both are folded into the item description so matching sees them.
var kloecknerAliases = TableAliases{
	ArticleNumber: []string{"artikelnummer", "artikelnr", "artnr", "materialnr"},
	Description:   []string{"werkstoff", "material", "bezeichnung", "beschreibung", "name"},
	Extra:         []string{"abmessung", "dimension", "profil", "güte", "guete"},
	Quantity:      []string{"menge", "anzahl", "stück", "stueck"},
	Unit:          []string{"mengeneinheit", "einheit", "me"},
	UnitPrice:     []string{"einzelpreis", "preisjekg", "preis"},
	LineTotal:     []string{"gesamtpreis", "positionswert", "gesamt", "betrag"},
}

// AliasesFor picks the column-alias profile for a caller-supplied supplier
// hint; unknown or empty hints get the generic profile.
func AliasesFor(supplierHint string) TableAliases {
	if p := ByID(supplierHint); p != nil {
		return p.Aliases
	}
	return genericAliases
}
