// Package ids genera los identificadores legibles usados por la API (ej. u_hospital_central, tx_<uuid>).
package ids

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Prefijos por tipo de recurso.
const (
	PrefixUnit        = "u"
	PrefixItem        = "t"
	PrefixEntry       = "ut"
	PrefixSector      = "s"
	PrefixUser        = "usr"
	PrefixTransaction = "tx"
	PrefixRequest     = "req"
	PrefixTransfer    = "trf"
)

// New devuelve un identificador aleatorio con prefijo: "tx_1b4e28ba-2fa1-...".
func New(prefix string) string {
	return prefix + "_" + uuid.New().String()
}

// Slug construye un identificador determinista a partir de nombres legibles.
// Slug("u", "Hospital São Cristóvão") == "u_hospital_sao_cristovao".
func Slug(prefix string, parts ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		s := normalize(p)
		if s == "" {
			continue
		}
		b.WriteByte('_')
		b.WriteString(s)
	}
	return b.String()
}

// EntryID identificador de la entrada de stock del par (unidad, insumo).
func EntryID(unitID, itemID string) string {
	return PrefixEntry + "_" + unitID + "_" + itemID
}

func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	lastUnderscore := true
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Unique es Slug más un sufijo aleatorio corto, para nombres que pueden repetirse.
// Unique("u", "CM Pediátrico") == "u_cm_pediatrico_1b4e28ba".
func Unique(prefix string, parts ...string) string {
	return Slug(prefix, parts...) + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
