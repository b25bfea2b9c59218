package messaging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Transport delivers one outbound message; *mailer.Mailgun satisfies it.
type Transport interface {
	Send(ctx context.Context, to, subject, text string) error
}

// Result is the terminal state of one delivery attempt.
type Result int

const (
	Delivered Result = iota
	RetryScheduled
	Dropped
)

func (r Result) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case RetryScheduled:
		return "retry_scheduled"
	case Dropped:
		return "dropped"
	}
	return "unknown"
}

// Consumer attempts transport delivery for queued messages and owns the
// bounded-retry contract. On failure below the ceiling it republishes a copy
// with RetryCount+1 instead of rejecting the delivery: an AMQP requeue would
// redeliver the stale payload with the old count. At or above the ceiling
// the message is dropped with a terminal log.
type Consumer struct {
	Transport  Transport
	Requeue    Publisher
	MaxRetries int
	Logger     *logrus.Logger
}

func NewConsumer(transport Transport, requeue Publisher, maxRetries int, logger *logrus.Logger) *Consumer {
	return &Consumer{Transport: transport, Requeue: requeue, MaxRetries: maxRetries, Logger: logger}
}

// Process runs one delivery attempt to its terminal state. The caller acks
// the broker delivery regardless of the result; redelivery happens via the
// republished copy, never via broker requeue.
func (c *Consumer) Process(ctx context.Context, msg EmailMessage) Result {
	err := c.Transport.Send(ctx, msg.To, msg.Subject, msg.Body)
	if err == nil {
		c.Logger.WithFields(logrus.Fields{"to": msg.To, "type": msg.Type}).Info("email sent")
		return Delivered
	}

	c.Logger.WithFields(logrus.Fields{
		"to":          msg.To,
		"type":        msg.Type,
		"retry_count": msg.RetryCount,
		"error":       err.Error(),
	}).Error("email delivery failed")

	if msg.RetryCount >= c.MaxRetries {
		c.Logger.WithFields(logrus.Fields{
			"to":          msg.To,
			"type":        msg.Type,
			"retry_count": msg.RetryCount,
		}).Error("max retries exceeded, dropping message")
		return Dropped
	}

	retry := msg
	retry.RetryCount++
	if perr := c.Requeue.PublishJSON(ctx, retry); perr != nil {
		c.Logger.WithFields(logrus.Fields{
			"to":          msg.To,
			"type":        msg.Type,
			"retry_count": retry.RetryCount,
			"error":       perr.Error(),
		}).Error("failed to requeue message, dropping")
		return Dropped
	}
	c.Logger.WithFields(logrus.Fields{
		"to":          msg.To,
		"retry_count": retry.RetryCount,
	}).Warn("email requeued for retry")
	return RetryScheduled
}
