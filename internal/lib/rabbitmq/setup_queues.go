package rabbitmq

import "github.com/magabrotheeeer/edu-platform/internal/models"

// QueueConfig описывает очередь и ключи, которыми она привязана к обменнику.
type QueueConfig struct {
	QueueName   string
	RoutingKeys []string
}

// NotificationQueues возвращает очереди сервиса уведомлений.
func NotificationQueues(queue string) []QueueConfig {
	return []QueueConfig{
		{
			QueueName: queue,
			RoutingKeys: []string{
				models.EventUserRegistered,
				models.EventSubscriptionGranted,
				models.EventSubscriptionRevoked,
			},
		},
	}
}
