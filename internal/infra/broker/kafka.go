package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"bookstore/internal/usecase"

	"github.com/segmentio/kafka-go"
)

const eventTypeSaleCreated = "sale.created"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// 販売イベントをKafkaへ
type SalePublisher struct {
	writer messageWriter
}

func NewSalePublisher(brokers []string, topic string) *SalePublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	return &SalePublisher{writer: w}
}

// キーは販売ID（同じ販売のイベントは同じパーティション）
func (p *SalePublisher) PublishSaleCreated(ctx context.Context, e usecase.SaleCreatedEvent) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal sale event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(e.SaleID, 10)),
		Value: value,
		Time:  e.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventTypeSaleCreated)},
			{Key: "event_id", Value: []byte(e.EventID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write sale event: %w", err)
	}
	return nil
}

func (p *SalePublisher) Close() error {
	return p.writer.Close()
}

// Kafka未設定のとき
type Nop struct{}

func (Nop) PublishSaleCreated(context.Context, usecase.SaleCreatedEvent) error { return nil }
