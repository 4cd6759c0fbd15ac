package locale

import "strings"

// Canonical units.
const (
	UnitPiece       = "piece"
	UnitMeter       = "meter"
	UnitKilogram    = "kilogram"
	UnitLiter       = "liter"
	UnitSquareMeter = "square-meter"
	UnitTonne       = "tonne"
	UnitPackage     = "package"
	UnitRoll        = "roll"
	UnitCan         = "can"
	UnitSet         = "set"
)

var unitAliases = map[string]string{
	"ST":     UnitPiece,
	"STK":    UnitPiece,
	"STCK":   UnitPiece,
	"STÜCK":  UnitPiece,
	"STUECK": UnitPiece,
	"PCS":    UnitPiece,
	"M":      UnitMeter,
	"LFM":    UnitMeter,
	"MTR":    UnitMeter,
	"METER":  UnitMeter,
	"KG":     UnitKilogram,
	"L":      UnitLiter,
	"LTR":    UnitLiter,
	"QM":     UnitSquareMeter,
	"M2":     UnitSquareMeter,
	"M²":     UnitSquareMeter,
	"T":      UnitTonne,
	"TO":     UnitTonne,
	"PAK":    UnitPackage,
	"PCK":    UnitPackage,
	"PKT":    UnitPackage,
	"ROL":    UnitRoll,
	"ROLLE":  UnitRoll,
	"DS":     UnitCan,
	"DOSE":   UnitCan,
	"SATZ":   UnitSet,
	"SET":    UnitSet,
}

// NormalizeUnit maps a free-text unit token to its canonical unit. Unknown
// tokens pass through trimmed.
func NormalizeUnit(token string) string {
	trimmed := strings.TrimSpace(token)
	key := strings.ToUpper(strings.TrimSuffix(trimmed, "."))
	if canonical, ok := unitAliases[key]; ok {
		return canonical
	}
	return trimmed
}

// IsCanonicalUnit reports whether u is one of the fixed canonical units.
func IsCanonicalUnit(u string) bool {
	switch u {
	case UnitPiece, UnitMeter, UnitKilogram, UnitLiter, UnitSquareMeter,
		UnitTonne, UnitPackage, UnitRoll, UnitCan, UnitSet:
		return true
	}
	return false
}
