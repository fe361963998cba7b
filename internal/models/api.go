package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmitGuessRequest is the body of a guess submission.
type SubmitGuessRequest struct {
	GuessedPrice float64 `json:"guessed_price"`
}

// GuessAuthor decorates a guess with its author's public identity and rank.
type GuessAuthor struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	KarmaScore  int       `json:"karma_score"`
	Rank        KarmaRank `json:"rank"`
}

// GuessView is one guess as returned by the listing endpoint.
type GuessView struct {
	ID           uuid.UUID   `json:"id"`
	GuessedPrice float64     `json:"guessed_price"`
	IsOutlier    bool        `json:"is_outlier"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Author       GuessAuthor `json:"author"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// GuessListResponse is the combined guesses-plus-FMV read model.
type GuessListResponse struct {
	Guesses    []GuessView `json:"guesses"`
	Pagination Pagination  `json:"pagination"`
	Fmv        FmvResult   `json:"fmv"`
}

// PropertyImportRequest is one row of an admin catalog import batch.
type PropertyImportRequest struct {
	ID            uuid.UUID `json:"id" binding:"required"`
	Address       string    `json:"address" binding:"required"`
	City          string    `json:"city"`
	PostalCode    string    `json:"postal_code"`
	PropertyType  string    `json:"property_type"`
	LivingArea    *int      `json:"living_area"`
	AskingPrice   *float64  `json:"asking_price"`
	AssessedValue *float64  `json:"assessed_value"`
}

// UserImportRequest is one row of an admin user import batch.
type UserImportRequest struct {
	ID          uuid.UUID `json:"id" binding:"required"`
	DisplayName string    `json:"display_name"`
	KarmaScore  int       `json:"karma_score"`
}
