package models

import "time"

// Статусы модерации продукта.
const (
	StatusPending  = "pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// ReportedStatus выставляется продукту при первой жалобе.
const ReportedStatus = "reported"

// Product представляет продукт, предложенный пользователем.
//
// VotedUser и ReportedUser хранят только последнего проголосовавшего
// и последнего пожаловавшегося пользователя, а не множество.
type Product struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Image          string    `json:"image,omitempty"`
	Description    string    `json:"description,omitempty"`
	ExternalLink   string    `json:"externalLink,omitempty"`
	OwnerName      string    `json:"ownerName,omitempty"`
	OwnerEmail     string    `json:"ownerEmail"`
	OwnerImage     string    `json:"ownerImage,omitempty"`
	Tags           []string  `json:"tags"`
	Votes          int       `json:"votes"`
	VotedUser      string    `json:"votedUser,omitempty"`
	Report         int       `json:"report"`
	ReportedUser   string    `json:"reportedUser,omitempty"`
	ReportedStatus string    `json:"reportedStatus,omitempty"`
	Status         string    `json:"status"`
	IsFeatured     bool      `json:"isFeatured"`
	Timestamp      time.Time `json:"timestamp"`
}

// DummyProduct используется для приёма нового продукта из JSON-запроса.
type DummyProduct struct {
	Name         string   `json:"name" validate:"required"`
	Image        string   `json:"image"`
	Description  string   `json:"description"`
	ExternalLink string   `json:"externalLink" validate:"omitempty,url"`
	OwnerName    string   `json:"ownerName"`
	OwnerEmail   string   `json:"ownerEmail" validate:"required,email"`
	OwnerImage   string   `json:"ownerImage"`
	Tags         []string `json:"tags"`
}

// ProductPatch перечисляет поля, которые владелец может менять.
// Nil означает, что поле остаётся прежним.
type ProductPatch struct {
	Name         *string  `json:"name" validate:"omitempty,min=1"`
	Image        *string  `json:"image"`
	Description  *string  `json:"description"`
	ExternalLink *string  `json:"externalLink" validate:"omitempty,url"`
	Tags         []string `json:"tags"`
}

// ActorRequest — тело запроса на голосование или жалобу.
type ActorRequest struct {
	UserEmail string `json:"userEmail" validate:"required,email"`
}

// ModerationRequest — тело запроса модератора.
type ModerationRequest struct {
	Status string `json:"status"`
}
