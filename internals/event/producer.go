package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// Producer publishes game analytics events to Kafka.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

type GameOverEvent struct {
	Event    string  `json:"event"`
	GameID   string  `json:"gameId"`
	Winner   string  `json:"winner"`
	Duration float64 `json:"duration_seconds"`
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	p, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return &Producer{producer: p, topic: topic}, nil
}

// EmitGameOver publishes a GAME_OVER event. Winner is a username, or
// "draw". Failures are logged, never propagated: analytics must not
// disturb gameplay.
func (p *Producer) EmitGameOver(gameID, winner string, duration time.Duration) {
	event := GameOverEvent{
		Event:    "GAME_OVER",
		GameID:   gameID,
		Winner:   winner,
		Duration: duration.Seconds(),
	}
	val, _ := json.Marshal(event)

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(gameID),
		Value: sarama.ByteEncoder(val),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		log.Printf("KAFKA ERROR: Failed to send message: %v", err)
	}
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
