package model

type StoredMedia struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"image_url"`
}

type MediaObject struct {
	Name        string
	ContentType string
	Data        []byte
}
