package content

import "time"

type Notebook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LastUpdated time.Time `json:"lastUpdated"`
	FilesCount  int       `json:"filesCount"`
}

type Chapter struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	NotebookID string `json:"notebook_id"`
}

// Block is one element of a chapter body. The backend sends the body of
// headings and paragraphs in Content; older payloads use Text.
type Block struct {
	Type    string   `json:"type"`
	Content string   `json:"content,omitempty"`
	Text    string   `json:"text,omitempty"`
	Level   int      `json:"level,omitempty"`
	Items   []string `json:"items,omitempty"`
}

func (b Block) body() string {
	if b.Content != "" {
		return b.Content
	}
	return b.Text
}

// DocumentContent is the content of one chapter.
type DocumentContent struct {
	Title           string  `json:"title"`
	Metadata        string  `json:"metadata"`
	DocumentContent []Block `json:"documentContent"`
}
