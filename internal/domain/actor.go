package domain

import "time"

// Client represents a customer who books cleaning turns
type Client struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string

	CreatedAt time.Time
}

// Administrator represents an operator who confirms turns and manages slots
type Administrator struct {
	ID    int64
	Name  string
	Email string
	Phone string

	CreatedAt time.Time
}
