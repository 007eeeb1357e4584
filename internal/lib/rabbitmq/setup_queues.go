package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// TokenizeExchange exchange событий жизненного цикла токенизации.
const TokenizeExchange = "tokenize.events"

// QueueConfig описывает очередь и ключ маршрутизации для событий токенизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetTokenizeQueues возвращает очереди жизненного цикла токенизации.
func GetTokenizeQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "tokenize.succeeded", RoutingKey: "succeeded"},
		{QueueName: "tokenize.failed", RoutingKey: "failed"},
	}
}

// SetupQueues объявляет exchange, очереди и привязки событий
// токенизации.
func SetupQueues(ch *amqp.Channel) error {
	const op = "rabbitmq.SetupQueues"

	if err := ch.ExchangeDeclare(TokenizeExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, q := range GetTokenizeQueues() {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, TokenizeExchange, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
