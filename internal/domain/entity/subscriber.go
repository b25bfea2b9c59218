package entity

import (
	"time"
)

// Subscriber is an address-bearing entity eligible for notifications.
// Subscriptions only yield notifications while Verified is true.
type Subscriber struct {
	ID        string
	Email     string
	Name      string
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
