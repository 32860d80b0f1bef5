package mq

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/streadway/amqp"

	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dao"
	"droppoint-partner-api/internal/dto"
	"droppoint-partner-api/internal/notify"
)

const maxRetry = 3

// StartConsumers drains the payout_batch queue and pushes a settlement
// notice per batch. Call from main after dal.InitRabbitMQ; returns when
// the channel closes.
func StartConsumers() {
	if dal.RabbitCh == nil {
		log.Println("RabbitMQ channel not initialized")
		return
	}
	msgs, err := dal.RabbitCh.Consume("payout_batch", "", false, false, false, false, nil)
	if err != nil {
		log.Printf("consume payout_batch failed: %v", err)
		return
	}
	for d := range msgs {
		go handlePayoutBatch(d)
	}
}

func handlePayoutBatch(d amqp.Delivery) {
	var msg dto.PayoutBatchEvent
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Printf("payout batch unmarshal err: %v", err)
		d.Nack(false, false)
		return
	}

	if err := notifyPayout(msg); err != nil {
		log.Printf("payout notify failed: %v", err)

		if msg.RetryCount < maxRetry {
			msg.RetryCount++
			retryBody, _ := json.Marshal(msg)
			_ = dal.RabbitCh.Publish(
				"", "payout_batch", false, false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        retryBody,
				},
			)
			log.Printf("retrying payout notify for batch %d (attempt %d)", msg.BatchID, msg.RetryCount)
		} else {
			log.Printf("max retry reached for payout batch %d", msg.BatchID)
			notify.AlertOps(fmt.Sprintf("payout notify gave up: batch %d partner %d", msg.BatchID, msg.PartnerID))
		}

		d.Nack(false, false)
		return
	}

	d.Ack(false)
}

// notifyPayout tells the partner channel their batch is paid. Partners are
// notified through the shared ops bot for now; per-partner webhooks come
// with the payout gateway integration.
func notifyPayout(msg dto.PayoutBatchEvent) error {
	partner, err := dao.NewPartnerDao().GetByID(msg.PartnerID)
	if err != nil {
		return err
	}
	if partner == nil || !partner.IsActive {
		return fmt.Errorf("partner %d not found or inactive", msg.PartnerID)
	}

	chatID := os.Getenv("TELEGRAM_PAYOUT_CHAT_ID")
	if chatID == "" {
		log.Printf("payout settled: batch=%d partner=%s total=%s %s entries=%d",
			msg.BatchID, partner.Name, msg.Total, msg.Currency, msg.EntryCount)
		return nil
	}
	text := fmt.Sprintf("*Payout settled*\nPartner: %s\nBatch: `%d`\nEntries: %d\nTotal: %s %s",
		partner.Name, msg.BatchID, msg.EntryCount, msg.Total, msg.Currency)
	return notify.SendTelegramMessage(chatID, text)
}
