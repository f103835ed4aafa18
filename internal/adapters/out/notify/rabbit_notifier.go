// Package notify contains the ChangeNotifier adapters: a RabbitMQ publisher for
// deployments with subscribers and a log writer for everything else.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	pkgerrors "github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of *amqp091.Channel the notifier uses.
type Publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

var _ ports.ChangeNotifier = (*RabbitNotifier)(nil)

// OrderChangedMessage is the JSON body of a published change.
type OrderChangedMessage struct {
	OrderID      string    `json:"orderId"`
	DealershipID string    `json:"dealershipId"`
	Status       string    `json:"status"`
	Deleted      bool      `json:"deleted"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewOrderChangedMessage converts a change signal into its wire form.
func NewOrderChangedMessage(change ports.OrderChanged) OrderChangedMessage {
	return OrderChangedMessage{
		OrderID:      change.OrderID.String(),
		DealershipID: change.DealershipID.String(),
		Status:       change.Status.String(),
		Deleted:      change.Deleted,
		OccurredAt:   change.OccurredAt.UTC(),
	}
}

// RoutingKey is "order.<status>" or "order.deleted", so that subscribers can
// bind to a subset of changes.
func RoutingKey(change ports.OrderChanged) string {
	if change.Deleted {
		return "order.deleted"
	}
	return "order." + change.Status.String()
}

// RabbitNotifier publishes every change as a persistent JSON message to a topic exchange.
type RabbitNotifier struct {
	conn      *amqp091.Connection
	channel   *amqp091.Channel
	publisher Publisher
	exchange  string
}

// DialRabbitNotifier connects to url and declares a durable topic exchange.
func DialRabbitNotifier(url, exchange string) (*RabbitNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, pkgerrors.Wrap(err, "open rabbitmq channel")
	}
	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, pkgerrors.Wrapf(err, "declare exchange %s", exchange)
	}
	return &RabbitNotifier{conn: conn, channel: ch, publisher: ch, exchange: exchange}, nil
}

// NewRabbitNotifier publishes through an already set up channel. Close is a
// no-op for notifiers built this way.
func NewRabbitNotifier(publisher Publisher, exchange string) *RabbitNotifier {
	return &RabbitNotifier{publisher: publisher, exchange: exchange}
}

// NotifyOrderChanged publishes change. Broker failures are returned as
// errs.StoreUnavailableError.
func (n *RabbitNotifier) NotifyOrderChanged(ctx context.Context, change ports.OrderChanged) error {
	body, err := json.Marshal(NewOrderChangedMessage(change))
	if err != nil {
		return pkgerrors.Wrap(err, "marshal order change")
	}

	err = n.publisher.PublishWithContext(ctx, n.exchange, RoutingKey(change), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    change.OrderID.String(),
		Timestamp:    change.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return errs.NewStoreUnavailableError(pkgerrors.WithStack(err))
	}
	return nil
}

// Close closes the channel and the connection opened by DialRabbitNotifier.
func (n *RabbitNotifier) Close() error {
	if n == nil || n.conn == nil {
		return nil
	}
	return errors.Join(n.channel.Close(), n.conn.Close())
}
