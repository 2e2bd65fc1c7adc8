package upload

// Result is returned to the uploader.
type Result struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// Tribute is a visitor's remembrance, optionally with a photo or video.
type Tribute struct {
	Name  string
	Story string
}

// TributeResult echoes a stored tribute.
type TributeResult struct {
	URL   string `json:"url"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Story string `json:"story"`
}
