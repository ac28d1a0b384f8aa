package messenger

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// MessageService publishes marketplace actions to downstream consumers.
// Publishing is best effort; the marketplace tables are never touched here.
type MessageService interface {
	GetQueue(item Item) (*amqp.Queue, error)
	SendMessage(item Item, body []byte, reliable bool) error
	ConsumeMessages(item Item, callback func(msg string)) error
	PublishAction(msg interface{})
}

type Messenger struct {
	amqpUri string
	conn    *amqp.Connection
}

type Item string

var (
	MarketplaceActions Item = "marketplace.actions"
)

func (i Item) queue() string {
	return fmt.Sprintf("%s.%s", config.Get().Index, i)
}

func NewMessenger(amqpUri string) MessageService {
	return &Messenger{amqpUri: amqpUri}
}

func (m *Messenger) GetQueue(item Item) (*amqp.Queue, error) {
	ch, err := m.openChannel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	queue, err := ch.QueueDeclare(item.queue(), true, false, false, false, nil)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to create queue")
		return nil, err
	}

	return &queue, nil
}

func (m *Messenger) SendMessage(item Item, body []byte, reliable bool) error {
	ch, err := m.openChannel()
	if err != nil {
		return err
	}
	defer ch.Close()

	ex, ok := exchanges[string(item)]
	if !ok {
		zap.L().Error("[Queue] Exchange not found")
		return errors.New("exchange not found")
	}

	if err := ch.ExchangeDeclare(ex.Name, ex.Type, ex.Durable, ex.AutoDeleted, ex.Internal, ex.NoWait, ex.Arguments); err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Exchange Declare")
		return err
	}

	if reliable {
		if err := ch.Confirm(false); err != nil {
			zap.L().With(zap.Error(err)).Error("[Queue] Channel could not be put into confirm mode")
			return err
		}
	}

	return ch.Publish(ex.Name, item.queue(), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (m *Messenger) ConsumeMessages(item Item, callback func(msg string)) error {
	ch, err := m.openChannel()
	if err != nil {
		return err
	}

	queue, err := m.GetQueue(item)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(queue.Name, "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	for msg := range msgs {
		callback(string(msg.Body))
	}

	return nil
}

// PublishAction marshals and publishes an event payload. Used as an event
// listener callback.
func (m *Messenger) PublishAction(msg interface{}) {
	body, err := json.Marshal(msg)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Failed to marshal action")
		return
	}

	if err := m.SendMessage(MarketplaceActions, body, false); err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Failed to publish action")
	}
}

func (m *Messenger) openChannel() (*amqp.Channel, error) {
	if m.conn == nil || m.conn.IsClosed() {
		conn, err := amqp.Dial(m.amqpUri)
		if err != nil {
			zap.L().With(zap.Error(err)).Error("[Queue] Failed to connect")
			return nil, err
		}
		m.conn = conn
	}

	return m.conn.Channel()
}
