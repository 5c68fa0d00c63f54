package queue

import (
	"context"
	"crypto/tls"
	"log"

	"github.com/einkreativername/brightmiss/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type KafkaConsumer struct {
	Reader  *kafka.Reader
	Handler interfaces.ConsumerHandler
}

func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	cfg := kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	}

	if username != "" {
		cfg.Dialer = &kafka.Dialer{
			SASLMechanism: plain.Mechanism{
				Username: username,
				Password: password,
			},
			TLS: &tls.Config{},
		}
	}

	return &KafkaConsumer{
		Reader:  kafka.NewReader(cfg),
		Handler: handler,
	}
}

func (kc *KafkaConsumer) Listen() {
	for {
		msg, err := kc.Reader.ReadMessage(context.Background())
		if err != nil {
			log.Printf("error reading message: %s", err)
			continue
		}

		log.Printf("received message key=%s", string(msg.Key))

		if err := kc.Handler.HandleMessage(msg.Key, msg.Value); err != nil {
			log.Printf("error handling message key=%s: %s", string(msg.Key), err)
		}
	}
}
