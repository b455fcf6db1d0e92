package gplocal

import (
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/teris-io/shortid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var idSource = sync.OnceValue(func() *shortid.Shortid {
	return shortid.MustNew(16, shortid.DefaultABC, uint64(time.Now().UnixNano()))
})

// NewID returns a new unique row identifier like "p_Xy3kq9Lm".
func NewID(prefix string) string {
	id, err := idSource().Generate()
	if err != nil {
		id = uuid.NewString()
	}
	return prefix + "_" + id
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// ProductID derives the identifier of a product from its name: diacritics are
// stripped, letters lowercased, and every run of other characters becomes a
// single hyphen. "Café Noir" becomes "cafe-noir".
func ProductID(name string) string {
	// transformers are stateful, build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	s = nonSlug.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
