package models

// CVAnalysis is the structured signal extracted from one uploaded CV.
// It is built once per scoring request and never persisted.
type CVAnalysis struct {
	ExtractedText string   `json:"extracted_text"`
	Skills        []string `json:"skills"`
	Experience    string   `json:"experience"`
	Education     string   `json:"education"`
	KeyPoints     []string `json:"key_points"`
}
