package router

import (
	"github.com/awalczyk/libris/internal/application"
	"github.com/awalczyk/libris/internal/container"
	pginfra "github.com/awalczyk/libris/internal/infrastructure/postgres"
	handlers "github.com/awalczyk/libris/internal/interface/http"
	"github.com/awalczyk/libris/internal/messaging"
	"github.com/awalczyk/libris/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module. Call once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	bookRepo := pginfra.NewBookRepository(pool)
	subscriberRepo := pginfra.NewSubscriberRepository(pool)
	subscriptionRepo := pginfra.NewSubscriptionRepository(pool)

	producer := messaging.NewProducer(container.GetRabbitPub(), logger, cfg.VerificationURL)

	bookSvc := application.NewBookService(bookRepo, subscriptionRepo, producer, logger, container.GetES(), cfg.ESBooksIndex)
	subscriberSvc := application.NewSubscriberService(subscriberRepo, producer, container.GetRedis(), logger, cfg.TokenExpiry)
	subscriptionSvc := application.NewSubscriptionService(subscriptionRepo, subscriberRepo, logger)

	r.Add(modules.NewBookModule(handlers.NewBookHandler(bookSvc, logger)))
	r.Add(modules.NewSubscriberModule(handlers.NewSubscriberHandler(subscriberSvc, logger)))
	r.Add(modules.NewSubscriptionModule(handlers.NewSubscriptionHandler(subscriptionSvc, logger)))
}
