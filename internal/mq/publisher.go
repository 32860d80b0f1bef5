package mq

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dto"
)

func publish(routingKey string, body []byte) error {
	if dal.RabbitCh == nil {
		return nil
	}
	err := dal.RabbitCh.Publish(
		"revenue_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}

func PublishLedgerCreated(evt dto.LedgerCreatedEvent) error {
	b, _ := json.Marshal(evt)
	return publish("ledger.created", b)
}

func PublishPayoutBatch(evt dto.PayoutBatchEvent) error {
	b, _ := json.Marshal(evt)
	return publish("payout.batch.created", b)
}
