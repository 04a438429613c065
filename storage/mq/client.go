package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"TidyElephant/config"
)

const (
	// ProvisionExchange 日历开通任务使用的 exchange
	ProvisionExchange = "onboarding.tasks"
	// ProvisionQueue 日历开通任务队列
	ProvisionQueue = "onboarding.calendar.provision"
	// ProvisionRoutingKey 日历开通路由键
	ProvisionRoutingKey = "onboarding.calendar.provision"
)

var conn *amqp.Connection

func Init() error {
	url := config.Cfg.GetRabbitMQURL()

	var err error
	conn, err = amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}

	return declareTopology()
}

// declareTopology 声明 exchange / queue / binding，server 和 worker 双方都会执行，幂等
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		ProvisionExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	queue, err := ch.QueueDeclare(
		ProvisionQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(queue.Name, ProvisionRoutingKey, ProvisionExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	return nil
}

func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
