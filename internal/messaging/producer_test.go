package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awalczyk/libris/internal/domain/entity"
)

func TestSendVerificationEmail(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub, testLogger(), "https://libris.example.com/verify?token=")

	err := p.SendVerificationEmail(context.Background(), "anna@example.com", "tok-123")

	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	msg := pub.published[0]
	assert.Equal(t, "anna@example.com", msg.To)
	assert.Equal(t, EmailVerification, msg.Type)
	assert.Equal(t, 0, msg.RetryCount, "messages enter the queue with a zero retry count")
	assert.Contains(t, msg.Body, "https://libris.example.com/verify?token=tok-123")
}

func TestSendDailyDigest(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub, testLogger(), "")

	err := p.SendDailyDigest(context.Background(), "marek@example.com", "New books in the library - 2026-08-31", "Solaris - Stanislaw Lem (Science Fiction)")

	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	msg := pub.published[0]
	assert.Equal(t, EmailBatch, msg.Type)
	assert.Equal(t, 0, msg.RetryCount)
	assert.Equal(t, "New books in the library - 2026-08-31", msg.Subject)
}

func TestSendNewBookNotification(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub, testLogger(), "")
	book := &entity.Book{Title: "Solaris", Author: "Stanislaw Lem", Category: "Science Fiction"}

	err := p.SendNewBookNotification(context.Background(), "zofia@example.com", book)

	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	msg := pub.published[0]
	assert.Equal(t, EmailBatch, msg.Type)
	assert.Contains(t, msg.Body, "Solaris - Stanislaw Lem (Science Fiction)")
}

func TestProducer_PublishErrorPropagates(t *testing.T) {
	pub := &fakePublisher{err: assert.AnError}
	p := NewProducer(pub, testLogger(), "")

	err := p.SendDailyDigest(context.Background(), "x@example.com", "s", "b")
	assert.Error(t, err)
}
