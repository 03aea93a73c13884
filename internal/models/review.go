package models

import "time"

// Review — отзыв пользователя о продукте. После создания не меняется.
type Review struct {
	ID            string    `json:"_id"`
	ProductID     string    `json:"productId"`
	ReviewerName  string    `json:"reviewerName,omitempty"`
	ReviewerEmail string    `json:"reviewerEmail"`
	ReviewerImage string    `json:"reviewerImage,omitempty"`
	Description   string    `json:"description"`
	Rating        int       `json:"rating"`
	Timestamp     time.Time `json:"timestamp"`
}

// DummyReview используется для приёма отзыва из JSON-запроса.
type DummyReview struct {
	ProductID     string `json:"productId" validate:"required,uuid"`
	ReviewerName  string `json:"reviewerName"`
	ReviewerEmail string `json:"reviewerEmail" validate:"required,email"`
	ReviewerImage string `json:"reviewerImage"`
	Description   string `json:"description" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
}
