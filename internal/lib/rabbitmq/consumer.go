package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// ConsumeMessages подписывается на очередь и передает тело каждого сообщения
// в handler. Сообщение подтверждается только после успешной обработки,
// при ошибке возвращается в очередь.
func ConsumeMessages(ch *amqp.Channel, queue string, handler func(body []byte) error) error {
	const op = "rabbitmq.ConsumeMessages"

	msgs, err := ch.Consume(
		queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg.Body); err != nil {
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}()

	return nil
}
