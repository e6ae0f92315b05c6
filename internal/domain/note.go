package domain

// NoteInfo is one entry in a note listing, as reported by the Notes app.
type NoteInfo struct {
	Name     string `json:"name"`
	Folder   string `json:"folder"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

// SearchMatch is one search hit: the note's name, its containing folder,
// and a short body preview.
type SearchMatch struct {
	Name    string `json:"name"`
	Folder  string `json:"folder"`
	Preview string `json:"preview"`
}
