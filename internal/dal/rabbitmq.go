package dal

import (
	"log"

	"droppoint-partner-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("revenue_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("ledger_created", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare ledger_created failed: %v", err)
	}
	if _, err := ch.QueueDeclare("payout_batch", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare payout_batch failed: %v", err)
	}
	if err := ch.QueueBind("ledger_created", "ledger.created", "revenue_events", false, nil); err != nil {
		log.Fatalf("queue bind ledger_created failed: %v", err)
	}
	if err := ch.QueueBind("payout_batch", "payout.batch.created", "revenue_events", false, nil); err != nil {
		log.Fatalf("queue bind payout_batch failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
