package events

import (
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

type KafkaProducer struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

func NewKafkaProducer(brokers string, logger *zap.Logger) (*KafkaProducer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           10,
	})
	if err != nil {
		return nil, err
	}

	// 비동기 전송 결과 처리
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Error("Kafka delivery failed",
						zap.String("topic", *ev.TopicPartition.Topic),
						zap.Error(ev.TopicPartition.Error))
				}
			}
		}
	}()

	return &KafkaProducer{producer: p, logger: logger}, nil
}

func (p *KafkaProducer) PublishOrderCreated(event OrderCreatedEvent) error {
	return p.publish(fmt.Sprintf("ORDER#%s", event.OrderID), event)
}

func (p *KafkaProducer) PublishOrderStatusChanged(event OrderStatusChangedEvent) error {
	return p.publish(fmt.Sprintf("ORDER#%s", event.OrderID), event)
}

func (p *KafkaProducer) publish(key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := OrderEventsTopic
	return p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(key),
		Value: data,
	}, nil)
}

func (p *KafkaProducer) HealthCheck() error {
	_, err := p.producer.GetMetadata(nil, true, 2000)
	return err
}

func (p *KafkaProducer) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
