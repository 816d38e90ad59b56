package types

// QueryResult is the outcome of running one classified query through the pipeline.
type QueryResult struct {
	Query         Query           `json:"query"`
	LocationLabel string          `json:"location_label"`
	Stations      []StationRecord `json:"stations"`
	CacheHit      bool            `json:"cache_hit"`
	NotFound      bool            `json:"not_found"`
}

// ExportFile is the delimited export handed to the transport as a document.
type ExportFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}

// HandleResult is everything the transport needs to answer one user message.
type HandleResult struct {
	StatusUpdates []string      `json:"status_updates"`
	FinalText     string        `json:"final_text"`
	Export        *ExportFile   `json:"export,omitempty"`
	Results       []QueryResult `json:"results,omitempty"`
}
