// FILE: internal/dto/content_dto.go
package dto

type VerseVideo struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type VerseText struct {
	Ref  string `json:"ref"`
	Line string `json:"line"`
}

type VerseCard struct {
	File    string `json:"file"`
	Ref     string `json:"ref"`
	Caption string `json:"caption"`
}

type VersesResponse struct {
	Theme  string       `json:"theme"`
	Videos []VerseVideo `json:"videos"`
	Texts  []VerseText  `json:"texts"`
	Cards  []VerseCard  `json:"cards"`
}

type Study struct {
	Title     string   `json:"title"`
	Date      string   `json:"date,omitempty"`
	Scripture string   `json:"scripture,omitempty"`
	Outline   string   `json:"outline,omitempty"`
	Points    []string `json:"points,omitempty"`
	Resources []string `json:"resources,omitempty"`
}
