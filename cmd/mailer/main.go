package main

import (
	"log"

	"github.com/einkreativername/brightmiss/config"
	"github.com/einkreativername/brightmiss/infra/queue"
	"github.com/einkreativername/brightmiss/internal/api/rest/handlers"
	"github.com/einkreativername/brightmiss/internal/services"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.KafkaBroker == "" || cfg.KafkaTopic == "" {
		log.Fatal("KAFKA_BROKER and KAFKA_TOPIC are required")
	}
	if cfg.SMTPHost == "" || cfg.MailFrom == "" {
		log.Fatal("SMTP_HOST and MAIL_FROM are required")
	}

	mailSvc := services.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handlers.NewMailHandler(mailSvc),
	)

	log.Println("mailer consuming from", cfg.KafkaTopic)
	consumer.Listen()
}
