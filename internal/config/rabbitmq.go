package config

import (
	"os"
	"sync"
)

type RabbitMQConfig struct {
	URL   string
	Queue string
}

var (
	rabbitMQConfig *RabbitMQConfig
	rabbitMQOnce   sync.Once
)

func LoadRabbitMQConfig() *RabbitMQConfig {
	rabbitMQOnce.Do(func() {
		rabbitMQConfig = &RabbitMQConfig{
			URL:   os.Getenv("RABBITMQ_URL"),
			Queue: getEnv("RABBITMQ_QUEUE", "pipeline_events"),
		}
	})
	return rabbitMQConfig
}
