package rabbitmq

// Имена обменников приложения.
const (
	// NotificationsExchange — уведомления об истечении абонементов.
	NotificationsExchange = "notifications"
	// ChatExchange — фан-аут сообщений чата участник-тренер.
	ChatExchange = "chat"
)

// Ключи маршрутизации уведомлений.
const (
	// RoutingKeyGrace — абонемент перешёл в льготный период.
	RoutingKeyGrace = "membership.grace"
	// RoutingKeyExpired — абонемент окончательно истёк.
	RoutingKeyExpired = "membership.expired"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди воркера уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.membership.grace", RoutingKey: RoutingKeyGrace},
		{QueueName: "notification.membership.expired", RoutingKey: RoutingKeyExpired},
	}
}
