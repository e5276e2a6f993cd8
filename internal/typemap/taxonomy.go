// Package typemap defines the canonical citation type taxonomy and the
// bidirectional type and field mapping tables for each supported format.
package typemap

// CanonicalTypes is the closed set of citation types used by the
// intermediate model, following the CSL item type vocabulary.
var CanonicalTypes = []string{
	"article",
	"article-journal",
	"article-magazine",
	"article-newspaper",
	"bill",
	"book",
	"broadcast",
	"chapter",
	"dataset",
	"document",
	"entry",
	"entry-dictionary",
	"entry-encyclopedia",
	"figure",
	"graphic",
	"hearing",
	"interview",
	"legal_case",
	"legislation",
	"manuscript",
	"map",
	"motion_picture",
	"musical_score",
	"pamphlet",
	"paper-conference",
	"patent",
	"performance",
	"periodical",
	"personal_communication",
	"post",
	"post-weblog",
	"report",
	"review",
	"software",
	"song",
	"speech",
	"standard",
	"thesis",
	"treaty",
	"webpage",
}

var canonicalSet = func() map[string]bool {
	s := make(map[string]bool, len(CanonicalTypes))
	for _, t := range CanonicalTypes {
		s[t] = true
	}
	return s
}()

// IsCanonical reports whether t is a member of the canonical taxonomy.
func IsCanonical(t string) bool {
	return canonicalSet[t]
}

// FallbackType is the canonical type assigned when a native type has no
// mapping on ingest.
const FallbackType = "article"
