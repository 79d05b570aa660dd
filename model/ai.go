package model

type ExcerptRequest struct {
	Content   string `json:"content" binding:"required"`
	MaxLength int    `json:"maxLength" binding:"omitempty,min=20,max=1000"`
}

type ExcerptResult struct {
	Excerpt string `json:"excerpt"`
}

type TagsRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type TagsResult struct {
	Tags []string `json:"tags"`
}

type AnalysisRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

type ContentAnalysis struct {
	WordCount          int    `json:"wordCount"`
	ReadingTimeMinutes int    `json:"readingTimeMinutes"`
	Feedback           string `json:"feedback"`
}
