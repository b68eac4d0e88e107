package rabbitmq

// QueueConfig описывает очередь и ключ, с которым она привязана к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// AuthAuditQueues возвращает очереди, собирающие события авторизации витрины.
func AuthAuditQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "storefront.auth.audit", RoutingKey: "user.#"},
	}
}
