package parser

import "github.com/reflib/refconv/internal/entry"

// BibLaTeX is the BibTeX parser with biblatex provenance: the syntax is
// identical, so parsing is delegated and only the recorded source format
// is rewritten. The source tag decides which (richer) type table a later
// denormalize step consults.
type BibLaTeX struct {
	inner BibTeX
}

func (p *BibLaTeX) Format() entry.Format { return entry.FormatBibLaTeX }

func (p *BibLaTeX) Parse(content string) *entry.ConversionResult {
	r := p.inner.Parse(content)
	for i := range r.Entries {
		if r.Entries[i].Metadata == nil {
			continue
		}
		r.Entries[i].Metadata.Source = entry.FormatBibLaTeX
	}
	return r
}

func (p *BibLaTeX) Validate(content string) []entry.Warning {
	return p.inner.Validate(content)
}
