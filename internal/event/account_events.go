package event

import (
	"context"
	"time"
)

type AccountEventPayload struct {
	CustomerID    int64  `json:"customerId"`
	AccountNumber int64  `json:"accountNumber,omitempty"`
	MobileNumber  string `json:"mobileNumber"`
	AccountType   string `json:"accountType,omitempty"`
}

type AccountCreatedEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   AccountEventPayload `json:"payload"`
}

type AccountDeletedEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   AccountEventPayload `json:"payload"`
}

func (p *RabbitMQEventPublisher) PublishAccountCreated(ctx context.Context, event AccountCreatedEvent) error {
	return p.publish(ctx, routingKeyAccountCreated, event)
}

func (p *RabbitMQEventPublisher) PublishAccountDeleted(ctx context.Context, event AccountDeletedEvent) error {
	return p.publish(ctx, routingKeyAccountDeleted, event)
}
