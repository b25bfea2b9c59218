package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/awalczyk/libris/internal/domain/entity"
	"github.com/awalczyk/libris/internal/domain/repository"
	"github.com/awalczyk/libris/pkg/helpers"
)

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrTokenInvalid       = errors.New("verification token invalid or expired")
)

// VerificationProducer is the slice of the messaging producer registration needs.
type VerificationProducer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
}

// SubscriberService registers subscribers and runs the email-verification
// token flow. Tokens live in Redis with a TTL so expiry needs no sweeper.
type SubscriberService struct {
	Repo        repository.SubscriberRepository
	Producer    VerificationProducer
	Redis       *redis.Client
	Logger      *logrus.Logger
	TokenExpiry time.Duration
}

func NewSubscriberService(repo repository.SubscriberRepository, producer VerificationProducer, rdb *redis.Client, logger *logrus.Logger, tokenExpiry time.Duration) *SubscriberService {
	if tokenExpiry <= 0 {
		tokenExpiry = 24 * time.Hour
	}
	return &SubscriberService{Repo: repo, Producer: producer, Redis: rdb, Logger: logger, TokenExpiry: tokenExpiry}
}

// Register creates an unverified subscriber and queues the verification
// email. A failed enqueue does not fail registration; the subscriber can be
// re-sent a token later.
func (s *SubscriberService) Register(ctx context.Context, email, name string) (*entity.Subscriber, error) {
	sub := &entity.Subscriber{Email: email, Name: name}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if s.Redis != nil {
		if err := s.Redis.Set(ctx, helpers.KeyVerifyToken(token), sub.ID, s.TokenExpiry).Err(); err != nil {
			s.Logger.WithError(err).WithField("email", email).Error("failed to store verification token")
			return sub, nil
		}
	}
	if err := s.Producer.SendVerificationEmail(ctx, email, token); err != nil {
		s.Logger.WithError(err).WithField("email", email).Error("failed to enqueue verification email")
	}
	return sub, nil
}

// Verify resolves a token to its subscriber and flips the verified flag.
// The token is single-use.
func (s *SubscriberService) Verify(ctx context.Context, token string) error {
	if s.Redis == nil || token == "" {
		return ErrTokenInvalid
	}
	key := helpers.KeyVerifyToken(token)
	id, err := s.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrTokenInvalid
	}
	if err != nil {
		return err
	}
	if err := s.Repo.MarkVerified(ctx, id); err != nil {
		return ErrSubscriberNotFound
	}
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("failed to delete verification token")
	}
	s.Logger.WithField("subscriber_id", id).Info("subscriber verified")
	return nil
}

func (s *SubscriberService) GetSubscriber(ctx context.Context, id string) (*entity.Subscriber, error) {
	sub, err := s.Repo.GetByID(ctx, id)
	if err != nil || sub == nil {
		return nil, ErrSubscriberNotFound
	}
	return sub, nil
}
