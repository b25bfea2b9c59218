package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awalczyk/libris/internal/domain/entity"
)

type fakeSubscriberRepo struct {
	byID     map[string]*entity.Subscriber
	verified map[string]bool
}

func (f *fakeSubscriberRepo) Create(ctx context.Context, s *entity.Subscriber) error {
	if f.byID == nil {
		f.byID = map[string]*entity.Subscriber{}
	}
	s.ID = "sub-" + s.Email
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSubscriberRepo) GetByID(ctx context.Context, id string) (*entity.Subscriber, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (f *fakeSubscriberRepo) GetByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	for _, s := range f.byID {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeSubscriberRepo) MarkVerified(ctx context.Context, id string) error {
	s, ok := f.byID[id]
	if !ok {
		return errors.New("not found")
	}
	s.Verified = true
	return nil
}

type recordingSubscriptionRepo struct {
	fakeSubscriptionRepo
	created []*entity.Subscription
	deleted []string
	delErr  error
}

func (r *recordingSubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	s.ID = "subscription-1"
	r.created = append(r.created, s)
	return nil
}

func (r *recordingSubscriptionRepo) Delete(ctx context.Context, id string) error {
	if r.delErr != nil {
		return r.delErr
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func verifiedOwner() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{byID: map[string]*entity.Subscriber{
		"owner-1": {ID: "owner-1", Email: "anna@example.com", Verified: true},
		"owner-2": {ID: "owner-2", Email: "marek@example.com", Verified: false},
	}}
}

func TestCreateSubscription(t *testing.T) {
	repo := &recordingSubscriptionRepo{}
	svc := NewSubscriptionService(repo, verifiedOwner(), testLogger())

	sub, err := svc.Create(context.Background(), "owner-1", "category", "Fantasy")

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionCategory, sub.Type, "kind input is normalized")
	assert.Equal(t, "Fantasy", sub.Value)
	assert.Len(t, repo.created, 1)
}

func TestCreateSubscription_UnknownKindRejected(t *testing.T) {
	tests := []struct {
		name string
		kind string
	}{
		{"unknown word", "PUBLISHER"},
		{"empty", ""},
		{"whitespace", "   "},
		{"typo", "CATEGORIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingSubscriptionRepo{}
			svc := NewSubscriptionService(repo, verifiedOwner(), testLogger())

			_, err := svc.Create(context.Background(), "owner-1", tt.kind, "Fantasy")

			assert.Error(t, err)
			assert.Empty(t, repo.created, "rejected kinds never reach the store")
		})
	}
}

func TestCreateSubscription_UnverifiedOwner(t *testing.T) {
	svc := NewSubscriptionService(&recordingSubscriptionRepo{}, verifiedOwner(), testLogger())

	_, err := svc.Create(context.Background(), "owner-2", "AUTHOR", "Stanislaw Lem")

	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestCreateSubscription_MissingOwner(t *testing.T) {
	svc := NewSubscriptionService(&recordingSubscriptionRepo{}, verifiedOwner(), testLogger())

	_, err := svc.Create(context.Background(), "nobody", "AUTHOR", "Stanislaw Lem")

	assert.ErrorIs(t, err, ErrSubscriberNotFound)
}

func TestCancelSubscription(t *testing.T) {
	repo := &recordingSubscriptionRepo{}
	svc := NewSubscriptionService(repo, verifiedOwner(), testLogger())

	require.NoError(t, svc.Cancel(context.Background(), "subscription-1"))
	assert.Equal(t, []string{"subscription-1"}, repo.deleted)
}

func TestCancelSubscription_Missing(t *testing.T) {
	repo := &recordingSubscriptionRepo{delErr: errors.New("not found")}
	svc := NewSubscriptionService(repo, verifiedOwner(), testLogger())

	err := svc.Cancel(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
