package domain

// BatchRequest converts every AI output file of InputDir against one template.
type BatchRequest struct {
	InputDir     string
	TemplatePath string
	OutputDir    string
	Concurrency  int
}

// BatchItemResult is the outcome of one file of a batch.
type BatchItemResult struct {
	InputFile  string           `json:"inputFile"`
	OutputFile string           `json:"outputFile,omitempty"`
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	Stats      *ConversionStats `json:"stats,omitempty"`
}

// BatchSummary holds the per-file results in input order.
type BatchSummary struct {
	Results   []BatchItemResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}
