package market

import "time"

// Market statuses.
const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

/** --------------------ENTITIES-------------------- */
// Market is a yes/no prediction market. Pool and percentage fields are
// derived values recomputed from the predictions, never edited directly.
type Market struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	EndDate       time.Time `json:"endDate"`
	TotalPool     string    `json:"totalPool"`
	YesPercentage string    `json:"yesPercentage"`
	NoPercentage  string    `json:"noPercentage"`
	CreatedBy     string    `json:"createdBy"`
	Created       time.Time `json:"created"`
}

// Prediction is a single stake on one side of a market.
type Prediction struct {
	ID         string    `json:"id"`
	MarketID   string    `json:"marketId"`
	UserID     string    `json:"userId"`
	Prediction bool      `json:"prediction"`
	Amount     string    `json:"amount"`
	Created    time.Time `json:"created"`
}

/** -------------------- DTOs -------------------- */
type CreateMarketRequest struct {
	Question string    `json:"question" binding:"required"`
	Category string    `json:"category"`
	EndDate  time.Time `json:"endDate" binding:"required"`
}

type PlacePredictionRequest struct {
	MarketID   string `json:"marketId" binding:"required"`
	Prediction *bool  `json:"prediction" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
}

// OddsPayload is the body of price_update frames.
type OddsPayload struct {
	MarketID      string `json:"marketId"`
	TotalPool     string `json:"totalPool"`
	YesPercentage string `json:"yesPercentage"`
	NoPercentage  string `json:"noPercentage"`
}
