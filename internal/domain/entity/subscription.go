package entity

import (
	"errors"
	"fmt"
	"strings"
)

// SubscriptionType is a closed enum; anything outside CATEGORY/AUTHOR is
// rejected at subscription-creation time and never reaches the pipeline.
type SubscriptionType string

const (
	SubscriptionCategory SubscriptionType = "CATEGORY"
	SubscriptionAuthor   SubscriptionType = "AUTHOR"
)

var ErrEmptySubscriptionType = errors.New("subscription type cannot be empty")

// ParseSubscriptionType maps free-form input onto the enum. Unknown values
// are a hard error, not silently ignored.
func ParseSubscriptionType(s string) (SubscriptionType, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrEmptySubscriptionType
	}
	switch strings.ToUpper(trimmed) {
	case "CATEGORY":
		return SubscriptionCategory, nil
	case "AUTHOR":
		return SubscriptionAuthor, nil
	default:
		return "", fmt.Errorf("unknown subscription type: %s", s)
	}
}

// Subscription binds a subscriber to a category or author value, matched by
// exact string equality. (SubscriberID, Type, Value) is unique.
type Subscription struct {
	ID           string
	SubscriberID string
	Type         SubscriptionType
	Value        string
}
