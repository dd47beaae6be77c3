package models

// Segment is one timestamped transcript line of a corpus file.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
}

// SearchResult is one matching segment with the metadata of its file.
// Date is null in JSON when the file name carries no date.
type SearchResult struct {
	Text        string  `json:"text"`
	FileName    string  `json:"fileName"`
	YoutubeLink string  `json:"youtubeLink"`
	Thumbnail   string  `json:"thumbnail"`
	Date        *string `json:"date"`
}

// Page is one page of matches plus the totals of the full result set.
type Page struct {
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"totalResults"`
	TotalPages   int            `json:"totalPages"`
	CurrentPage  int            `json:"currentPage"`
}
