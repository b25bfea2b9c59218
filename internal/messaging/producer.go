package messaging

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/awalczyk/libris/internal/domain/entity"
)

// Publisher is the queue side the producer needs; *helpers.RabbitPublisher
// satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Producer builds outbound email messages and publishes them to the durable
// queue. Callers treat it as fire-and-forget; durability past the publish is
// the broker's job.
type Producer struct {
	Pub             Publisher
	Logger          *logrus.Logger
	VerificationURL string
}

func NewProducer(pub Publisher, logger *logrus.Logger, verificationURL string) *Producer {
	return &Producer{Pub: pub, Logger: logger, VerificationURL: verificationURL}
}

// SendVerificationEmail enqueues a confirm-your-address email carrying the
// verification token link.
func (p *Producer) SendVerificationEmail(ctx context.Context, email, token string) error {
	msg := EmailMessage{
		To:      email,
		Subject: "Confirm your email address!",
		Body:    "Click the link to confirm your email: " + p.VerificationURL + token,
		Type:    EmailVerification,
	}
	if err := p.Pub.PublishJSON(ctx, msg); err != nil {
		return err
	}
	p.Logger.WithField("to", email).Info("verification email queued")
	return nil
}

// SendDailyDigest enqueues one aggregated daily notification for a single
// recipient.
func (p *Producer) SendDailyDigest(ctx context.Context, email, subject, body string) error {
	msg := EmailMessage{
		To:      email,
		Subject: subject,
		Body:    body,
		Type:    EmailBatch,
	}
	if err := p.Pub.PublishJSON(ctx, msg); err != nil {
		return err
	}
	p.Logger.WithField("to", email).Debug("daily digest queued")
	return nil
}

// SendNewBookNotification enqueues a single-book notification, used on the
// item-creation fan-out path.
func (p *Producer) SendNewBookNotification(ctx context.Context, email string, b *entity.Book) error {
	msg := EmailMessage{
		To:      email,
		Subject: "New book in the library: " + b.Title,
		Body:    fmt.Sprintf("A new book matching your subscriptions has been added:\n\n%s - %s (%s)", b.Title, b.Author, b.Category),
		Type:    EmailBatch,
	}
	if err := p.Pub.PublishJSON(ctx, msg); err != nil {
		return err
	}
	p.Logger.WithFields(logrus.Fields{"to": email, "book": b.Title}).Info("new book notification queued")
	return nil
}
