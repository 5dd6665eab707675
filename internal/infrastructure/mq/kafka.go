package mq

import (
	"fmt"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"idolagency/internal/config"
)

var KafkaProducer sarama.SyncProducer

// InitKafka connects a synchronous producer. Sync is deliberate: the
// outbox sender must know delivery succeeded before marking a row sent.
func InitKafka() error {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(config.GlobalConfig.Kafka.Brokers, cfg)
	if err != nil {
		return fmt.Errorf("failed to create kafka producer: %w", err)
	}

	KafkaProducer = producer
	logrus.WithField("brokers", config.GlobalConfig.Kafka.Brokers).Info("kafka producer connected")
	return nil
}

func SendMessage(topic string, key string, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}

	partition, offset, err := KafkaProducer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"topic":     topic,
		"partition": partition,
		"offset":    offset,
	}).Debug("kafka message sent")
	return nil
}

func CloseKafka() error {
	if KafkaProducer != nil {
		return KafkaProducer.Close()
	}
	return nil
}
