package entry

// Scalar canonical field names modeled directly on Entry. Name lists,
// dates, id and type have dedicated handling and are not listed here.
var scalarFields = []string{
	"title",
	"container-title",
	"collection-title",
	"volume",
	"issue",
	"page",
	"edition",
	"number-of-pages",
	"chapter-number",
	"publisher",
	"publisher-place",
	"genre",
	"language",
	"DOI",
	"URL",
	"ISBN",
	"ISSN",
	"abstract",
	"keyword",
	"note",
}

// ScalarFields returns the canonical scalar field names in declaration
// order, for generators that emit fields in a stable order.
func ScalarFields() []string {
	return scalarFields
}

// SetScalar assigns a value to the named canonical scalar field.
// Returns false when the name is not a modeled scalar.
func (e *Entry) SetScalar(canonical, value string) bool {
	switch canonical {
	case "title":
		e.Title = value
	case "container-title":
		e.ContainerTitle = value
	case "collection-title":
		e.CollectionTitle = value
	case "volume":
		e.Volume = value
	case "issue":
		e.Issue = value
	case "page":
		e.Page = value
	case "edition":
		e.Edition = value
	case "number-of-pages":
		e.NumberOfPages = value
	case "chapter-number":
		e.ChapterNumber = value
	case "publisher":
		e.Publisher = value
	case "publisher-place":
		e.PublisherPlace = value
	case "genre":
		e.Genre = value
	case "language":
		e.Language = value
	case "DOI":
		e.DOI = value
	case "URL":
		e.URL = value
	case "ISBN":
		e.ISBN = value
	case "ISSN":
		e.ISSN = value
	case "abstract":
		e.Abstract = value
	case "keyword":
		e.Keyword = value
	case "note":
		e.Note = value
	default:
		return false
	}
	return true
}

// Scalar returns the value of the named canonical scalar field.
// Returns false when the name is not a modeled scalar.
func (e *Entry) Scalar(canonical string) (string, bool) {
	switch canonical {
	case "title":
		return e.Title, true
	case "container-title":
		return e.ContainerTitle, true
	case "collection-title":
		return e.CollectionTitle, true
	case "volume":
		return e.Volume, true
	case "issue":
		return e.Issue, true
	case "page":
		return e.Page, true
	case "edition":
		return e.Edition, true
	case "number-of-pages":
		return e.NumberOfPages, true
	case "chapter-number":
		return e.ChapterNumber, true
	case "publisher":
		return e.Publisher, true
	case "publisher-place":
		return e.PublisherPlace, true
	case "genre":
		return e.Genre, true
	case "language":
		return e.Language, true
	case "DOI":
		return e.DOI, true
	case "URL":
		return e.URL, true
	case "ISBN":
		return e.ISBN, true
	case "ISSN":
		return e.ISSN, true
	case "abstract":
		return e.Abstract, true
	case "keyword":
		return e.Keyword, true
	case "note":
		return e.Note, true
	}
	return "", false
}
