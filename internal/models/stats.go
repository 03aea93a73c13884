package models

// AdminState — агрегированные счётчики для панели администратора.
// Каждое значение считается запросом в момент обращения.
type AdminState struct {
	Products         int `json:"products"`
	AcceptedProducts int `json:"acceptedProducts"`
	PendingProducts  int `json:"pendingProducts"`
	Reviews          int `json:"reviews"`
	Users            int `json:"users"`
}
