package domain

import "time"

type Passenger struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	PassportNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
