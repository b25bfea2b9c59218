package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/awalczyk/libris/internal/domain/entity"
	"github.com/awalczyk/libris/internal/domain/repository"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNotVerified          = errors.New("email must be verified before creating subscription")
)

// SubscriptionService creates and cancels standing subscriptions. Unknown
// kinds are rejected here, before anything reaches the batch pipeline.
type SubscriptionService struct {
	Repo        repository.SubscriptionRepository
	Subscribers repository.SubscriberRepository
	Logger      *logrus.Logger
}

func NewSubscriptionService(repo repository.SubscriptionRepository, subscribers repository.SubscriberRepository, logger *logrus.Logger) *SubscriptionService {
	return &SubscriptionService{Repo: repo, Subscribers: subscribers, Logger: logger}
}

// Create validates the kind against the closed enum and requires a verified
// owner before persisting the subscription.
func (s *SubscriptionService) Create(ctx context.Context, subscriberID, kind, value string) (*entity.Subscription, error) {
	t, err := entity.ParseSubscriptionType(kind)
	if err != nil {
		return nil, err
	}

	owner, err := s.Subscribers.GetByID(ctx, subscriberID)
	if err != nil || owner == nil {
		return nil, ErrSubscriberNotFound
	}
	if !owner.Verified {
		return nil, ErrNotVerified
	}

	sub := &entity.Subscription{SubscriberID: owner.ID, Type: t, Value: value}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"subscriber_id": owner.ID,
		"type":          string(t),
		"value":         value,
	}).Info("subscription created")
	return sub, nil
}

// Cancel deletes a subscription by id.
func (s *SubscriptionService) Cancel(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return ErrSubscriptionNotFound
	}
	return nil
}
