package purge_turns

// PurgeTurnsRequest HTTP request model
type PurgeTurnsRequest struct {
	AgeInDays int `json:"ageInDays"`
}

// PurgeTurnsResponse HTTP response model
type PurgeTurnsResponse struct {
	Removed int64 `json:"removed"`
}
