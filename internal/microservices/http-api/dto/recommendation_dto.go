package dto

// RecommendationQuery: GET /users/me/recommendations query string
type RecommendationQuery struct {
	ForceGenerate bool `form:"force_generate"`
}

// PredictionQuery: GET /recommendations/predicted query string
type PredictionQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
