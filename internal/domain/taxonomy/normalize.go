package taxonomy

import "strings"

// The HTML entities WordPress commonly stores in term names.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#039;", "'",
	"&#39;", "'",
	"&ndash;", "-",
	"&mdash;", "--",
	"&hellip;", "...",
)

// Unicode punctuation variants mapped to their ASCII equivalents.
var unicodeReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"‚", "'",
	"‛", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"‟", `"`,
	"…", "...",
	"–", "-",
	"—", "--",
	" ", " ",
)

// Normalize canonicalizes a taxonomy name for lookup: lower-case, decode
// HTML entities, fold Unicode punctuation to ASCII, collapse whitespace.
// Idempotent for any input, including the empty string.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	s := strings.ToLower(name)

	// Decoding can expose another entity ("&amp;amp;"), so run to fixpoint.
	for {
		decoded := entityReplacer.Replace(s)
		if decoded == s {
			break
		}
		s = decoded
	}

	s = unicodeReplacer.Replace(s)

	return strings.Join(strings.Fields(s), " ")
}
