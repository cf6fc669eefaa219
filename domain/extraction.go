package domain

// ExtractionMethod names the strategy that produced article text.
type ExtractionMethod string

const (
	ExtractionMethodStructuredData ExtractionMethod = "structured_data"
	ExtractionMethodReadability    ExtractionMethod = "readability"
	ExtractionMethodDOMHeuristic   ExtractionMethod = "dom_heuristic"
	ExtractionMethodCached         ExtractionMethod = "cached"
	ExtractionMethodNone           ExtractionMethod = "none"
	ExtractionMethodFetchFailed    ExtractionMethod = "fetch_failed"
)

// MinContentLength is the character floor below which extracted text is discarded.
const MinContentLength = 200

// ExtractionResult is the outcome of extracting one page.
// Content is nil when no strategy produced enough text.
type ExtractionResult struct {
	Content *string          `json:"content"`
	Method  ExtractionMethod `json:"method"`
	Quality float64          `json:"quality"`
	Length  int              `json:"length"`
}

// HasContent reports whether the extraction produced usable text.
func (r ExtractionResult) HasContent() bool {
	return r.Content != nil
}
