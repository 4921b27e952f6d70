package dto

import "github.com/shopspring/decimal"

// RecommendationDTO un edredón recomendado con su puntuación.
type RecommendationDTO struct {
	Quilt               QuiltResponse   `json:"quilt"`
	RecommendationScore decimal.Decimal `json:"recommendation_score"`
	Reason              string          `json:"reason"`
}

// RecommendationsResponse recomendaciones de temporada.
type RecommendationsResponse struct {
	Season          string              `json:"season"`
	Recommendations []RecommendationDTO `json:"recommendations"`
	TotalAvailable  int                 `json:"total_available"`
}
