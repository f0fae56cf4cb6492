package podcasts

// ActionRequest is the body posted to /analyze and /splice.
type ActionRequest struct {
	Filename string `json:"filename"`
}

// SpliceResponse mirrors the payload returned by /splice.
type SpliceResponse struct {
	OutputFilename string `json:"output_filename"`
	Message        string `json:"message,omitempty"`
}

// AnalyzeResponse mirrors the optional payload returned by /analyze. The
// server is not required to send a body, so every field may be empty.
type AnalyzeResponse struct {
	Message      string `json:"message,omitempty"`
	AnalysisFile string `json:"analysis_file,omitempty"`
	AdCount      *int   `json:"ad_count,omitempty"`
}
