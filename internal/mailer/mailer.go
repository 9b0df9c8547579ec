// Package mailer delivers password-reset codes. Delivery is
// fire-and-forget: callers get an error only when handing the message off
// fails, never a delivery confirmation.
package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

type Mailer interface {
	SendOTP(ctx context.Context, to, otp string) error
}

// LogMailer writes the code to the application log instead of sending
// mail. This is the default and mirrors what the app does without a mail
// backend configured.
type LogMailer struct{}

func (LogMailer) SendOTP(_ context.Context, to, otp string) error {
	logrus.WithFields(logrus.Fields{
		"to":  to,
		"otp": otp,
	}).Info("password reset OTP issued")
	return nil
}

// QueueMailer publishes the message to a RabbitMQ queue for an external
// mail worker to pick up.
type QueueMailer struct {
	channel *amqp.Channel
	queue   string
}

type otpMessage struct {
	To       string    `json:"to"`
	OTP      string    `json:"otp"`
	IssuedAt time.Time `json:"issued_at"`
}

func NewQueueMailer(conn *amqp.Connection, queue string) (*QueueMailer, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &QueueMailer{channel: channel, queue: queue}, nil
}

func (m *QueueMailer) SendOTP(_ context.Context, to, otp string) error {
	body, err := json.Marshal(otpMessage{To: to, OTP: otp, IssuedAt: time.Now()})
	if err != nil {
		return err
	}

	err = m.channel.Publish("", m.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logrus.WithError(err).WithField("to", to).Error("failed to publish OTP email")
		return err
	}
	return nil
}

func (m *QueueMailer) Close() error {
	return m.channel.Close()
}
