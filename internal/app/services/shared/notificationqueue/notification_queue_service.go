package notificationqueue

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DeadLetterSuffix is appended to the queue name for undecodable messages.
const DeadLetterSuffix = ".dlq"

// Handler processes one decoded message. Returning an error requeues it once.
type Handler func(ctx context.Context, message *models.NotificationMessage) error

// Service publishes notification messages to a durable queue and consumes them.
type Service struct {
	ch          *amqp.Channel
	log         *zap.Logger
	queueName   string
	deadLetter  string
	consumerTag string
	confirms    chan amqp.Confirmation
	mu          sync.Mutex
}

// NewService declares the durable queues, enables confirms and sets QoS.
func NewService(conn *amqp.Connection, log *zap.Logger, queueName, consumerTag string, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	deadLetter := queueName + DeadLetterSuffix
	for _, name := range []string{queueName, deadLetter} {
		_, err = ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:          ch,
		log:         log,
		queueName:   queueName,
		deadLetter:  deadLetter,
		consumerTag: consumerTag,
		confirms:    ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

var _ contracts.NotificationPublisher = (*Service)(nil)

// Publish sends a persistent message and waits for the broker confirm.
func (s *Service) Publish(ctx context.Context, message *models.NotificationMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("NotificationQueue.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, string(message.Type)),
		zap.String(constvars.LoggingUserIDKey, message.UserID),
	)

	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publishRaw(ctx, s.queueName, body)
}

// Consume blocks delivering messages to handler until ctx is done or the
// channel closes.
func (s *Service) Consume(ctx context.Context, handler Handler) error {
	deliveries, err := s.ch.Consume(
		s.queueName,   // queue
		s.consumerTag, // consumer
		false,         // autoAck
		false,         // exclusive
		false,         // noLocal
		false,         // noWait
		nil,           // args
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			if err := s.ch.Cancel(s.consumerTag, false); err != nil {
				s.log.Warn("NotificationQueue.Consume cancel failed", zap.Error(err))
			}
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			s.handleDelivery(ctx, d, handler)
		}
	}
}

func (s *Service) handleDelivery(ctx context.Context, d amqp.Delivery, handler Handler) {
	var message models.NotificationMessage
	if err := json.Unmarshal(d.Body, &message); err != nil {
		s.log.Error("NotificationQueue.handleDelivery poison message moved to DLQ", zap.Error(err))
		_ = d.Ack(false)
		_ = s.publishRaw(ctx, s.deadLetter, d.Body)
		return
	}

	if err := handler(ctx, &message); err != nil {
		s.log.Error("NotificationQueue.handleDelivery handler failed",
			zap.String(constvars.LoggingEventTypeKey, string(message.Type)),
			zap.String(constvars.LoggingUserIDKey, message.UserID),
			zap.Bool("redelivered", d.Redelivered),
			zap.Error(err),
		)
		if d.Redelivered {
			_ = d.Ack(false)
			_ = s.publishRaw(ctx, s.deadLetter, d.Body)
			return
		}
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func (s *Service) Close() error {
	return s.ch.Close()
}

func (s *Service) publishRaw(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queue)
	}
	return nil
}
