package entry

// Warning severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Warning type tags.
const (
	WarnSyntax       = "syntax"
	WarnMissingField = "missing-field"
	WarnUnmapped     = "unmapped-field"
	WarnEmptyInput   = "empty-input"
	WarnUnknownType  = "unknown-type"
)

// Warning describes a problem found while parsing. Severity "error" means
// the entry (or document) was unusable and excluded from the result;
// "warning" means the entry was kept with caveats.
type Warning struct {
	EntryID  string `json:"entryId"`
	Severity string `json:"severity"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

// Stats summarizes a parse. Successful + Failed == Total; entries that
// parse but carry warnings still count as successful.
type Stats struct {
	Total        int `json:"total"`
	Successful   int `json:"successful"`
	WithWarnings int `json:"withWarnings"`
	Failed       int `json:"failed"`
}

// ConversionResult is what every parser returns: the entries that parsed,
// the problems found, and consistent counts.
type ConversionResult struct {
	Entries  []Entry   `json:"entries"`
	Warnings []Warning `json:"warnings"`
	Stats    Stats     `json:"stats"`
}

// ComputeStats derives consistent Stats from entries and warnings: each
// error-severity warning counts one failed record, each parsed entry one
// successful record, and WithWarnings counts distinct entries that carry
// at least one warning-severity warning.
func ComputeStats(entries []Entry, warnings []Warning) Stats {
	s := Stats{Successful: len(entries)}

	flagged := make(map[string]bool)
	for _, w := range warnings {
		switch w.Severity {
		case SeverityError:
			s.Failed++
		case SeverityWarning:
			if !flagged[w.EntryID] {
				flagged[w.EntryID] = true
				s.WithWarnings++
			}
		}
	}

	s.Total = s.Successful + s.Failed
	return s
}

// Finalize fills in Stats from the accumulated entries and warnings.
func (r *ConversionResult) Finalize() *ConversionResult {
	r.Stats = ComputeStats(r.Entries, r.Warnings)
	return r
}

// ErrorResult builds a result for a document-level failure: zero entries
// and a single document-scoped error warning.
func ErrorResult(warnType, message string) *ConversionResult {
	r := &ConversionResult{
		Warnings: []Warning{{
			EntryID:  "document",
			Severity: SeverityError,
			Type:     warnType,
			Message:  message,
		}},
	}
	return r.Finalize()
}
