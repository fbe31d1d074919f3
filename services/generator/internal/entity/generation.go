package entity

type GenerateRequest struct {
	Title string `json:"title" binding:"required"`
}

type GeneratedContent struct {
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
}

type GeneratedImage struct {
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
}
