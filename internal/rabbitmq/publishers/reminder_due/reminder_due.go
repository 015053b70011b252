package reminderdue

import (
	"context"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/rabbitmq"
	"taskflow/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ hands fired reminders to the delivery queue. It implements
// reminder.Sender so it can be plugged in as the scheduler's transport.
type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (s *RabbitMQ) SendReminder(ctx context.Context, t task.Task) error {
	msg := schema.DueReminder{TaskID: int64(t.ID), StartAt: t.StartAt.Value}
	body, err := msg.Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", t.ID))
		return err
	}

	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", t.ID))
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("taskID", t.ID),
	)
	return nil
}
