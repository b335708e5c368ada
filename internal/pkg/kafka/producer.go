package kafka

import (
	"Murmur/internal/api/config"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// ModerationEvent 社区归档/删除事件，替代原来写本地 archive.log 的做法
type ModerationEvent struct {
	Kind    string    `json:"kind"`
	ID      string    `json:"id"`
	Reports int64     `json:"reports"`
	State   string    `json:"state"`
	At      time.Time `json:"at"`
}

// Producer 审计事件生产者
type Producer interface {
	PublishModeration(ctx context.Context, evt *ModerationEvent) error
	Close() error
}

type saramaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer 构造审计事件生产者，未配置 broker 时返回 nil 表示禁用
func NewProducer(cfg *config.Config) (Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn("Kafka brokers not configured, moderation events disabled")
		return nil, nil
	}

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}

	return &saramaProducer{
		producer: producer,
		topic:    cfg.Kafka.Topic,
	}, nil
}

// PublishModeration 发布归档事件，尽力而为，失败由调用方记日志
func (s *saramaProducer) PublishModeration(ctx context.Context, evt *ModerationEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(evt.ID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "moderation event published", "kind", evt.Kind, "id", evt.ID, "state", evt.State)
	return nil
}

func (s *saramaProducer) Close() error {
	return s.producer.Close()
}
