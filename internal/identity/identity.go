// Package identity derives stable ids for recipes that arrive without one.
//
// The derived form is "recipe-<slug>-<hash>", where slug is the lowercased title with
// whitespace runs turned into hyphens and hash is a rolling hash of the title and the
// JSON-encoded steps, rendered in base 36. Ids already persisted by the mobile
// client use the same form, so the encoding here must stay byte-compatible with it.
package identity

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/platify/platify-core/internal/domain"
)

// Prefix starts every derived id
const Prefix = "recipe-"

var whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{feff}\x{2028}\x{2029}]+`)

// ResolveID returns the record's explicit id, or derives one from its title and steps.
// It never fails; a record with neither title nor steps resolves to "recipe--19".
func ResolveID(r domain.RecipeRecord) string {
	if r.ID != "" {
		return r.ID
	}
	return DeriveID(r.Title, r.Steps)
}

// DeriveID builds the content-based id for a title and ordered steps
func DeriveID(title string, steps []string) string {
	body := ""
	if len(steps) > 0 {
		body = encodeSteps(steps)
	}
	return Prefix + Slug(title) + "-" + Hash(title+"-"+body)
}

// Slug lowercases s and replaces every whitespace run with a single hyphen.
// Leading and trailing whitespace is not trimmed.
func Slug(s string) string {
	lower := cases.Lower(language.Und).String(s)
	return whitespaceRun.ReplaceAllString(lower, "-")
}

// Hash reproduces the mobile client's rolling hash over the UTF-16 code units of s:
// h = ToInt32(h)<<5 - h + unit. Only the shifted term wraps at 32 bits, so the
// accumulator itself grows past the int32 range and is rendered in base 36 as an
// exact integer, negative values carrying a leading '-'.
func Hash(s string) string {
	var h int64
	for _, unit := range utf16.Encode([]rune(s)) {
		h = int64(int32(h)<<5) - h + int64(unit)
	}
	return strconv.FormatInt(h, 36)
}

// encodeSteps renders steps as compact JSON the way JSON.stringify does:
// no HTML escaping and line/paragraph separators left literal.
func encodeSteps(steps []string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(steps); err != nil {
		// []string always encodes
		return ""
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return jsSeparators.Replace(out)
}

var jsSeparators = strings.NewReplacer(`\u2028`, "\u2028", `\u2029`, "\u2029")
