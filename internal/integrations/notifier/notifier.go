package notifier

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier публикует события жизненного цикла записей в Kafka.
//
// Публикация fire-and-forget: ошибка доставки события логируется,
// но никогда не влияет на результат уже закоммиченного бронирования.
// Без настроенных брокеров публикация выключена.
type Notifier struct {
	writer  *kafka.Writer
	logger  Logger
	timeout time.Duration
}

// New создает notifier; пустой список брокеров выключает публикацию
func New(brokers []string, topic string, timeout time.Duration, logger Logger) *Notifier {
	n := &Notifier{
		logger:  logger,
		timeout: timeout,
	}

	if len(brokers) == 0 {
		logger.Warn("notifier: no kafka brokers configured, event publishing disabled")
		return n
	}

	n.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return n
}

// Close закрывает kafka writer
func (n *Notifier) Close() error {
	if n.writer == nil {
		return nil
	}
	return n.writer.Close()
}

// AppointmentCreated публикует событие о созданной записи
func (n *Notifier) AppointmentCreated(a *domain.Appointment) {
	n.publishAsync(Event{
		EventID:       uuid.NewString(),
		EventType:     EventAppointmentCreated,
		AppointmentID: a.ID,
		MasterID:      a.MasterID,
		ServiceID:     a.ServiceID,
		ClientID:      a.ClientID,
		StartAt:       a.StartAt,
		EndAt:         a.EndAt,
		Status:        string(a.Status),
		OccurredAt:    time.Now().UTC(),
	})
}

// AppointmentTransitioned публикует событие о смене статуса записи
func (n *Notifier) AppointmentTransitioned(a *domain.Appointment, from domain.AppointmentStatus) {
	prev := string(from)
	n.publishAsync(Event{
		EventID:       uuid.NewString(),
		EventType:     EventAppointmentTransitioned,
		AppointmentID: a.ID,
		MasterID:      a.MasterID,
		ServiceID:     a.ServiceID,
		ClientID:      a.ClientID,
		StartAt:       a.StartAt,
		EndAt:         a.EndAt,
		Status:        string(a.Status),
		PrevStatus:    &prev,
		OccurredAt:    time.Now().UTC(),
	})
}

// publishAsync отправляет событие в отдельной горутине с ограниченным таймаутом
func (n *Notifier) publishAsync(event Event) {
	if n.writer == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		payload, err := json.Marshal(event)
		if err != nil {
			n.logger.Error("notifier: marshal event %s: %v", event.EventID, err)
			return
		}

		msg := kafka.Message{
			// Ключ = ID мастера: события одного календаря попадают в одну партицию
			Key:   []byte(strconv.FormatInt(event.MasterID, 10)),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(event.EventID)},
				{Key: "event_type", Value: []byte(event.EventType)},
			},
		}

		if err := n.writer.WriteMessages(ctx, msg); err != nil {
			n.logger.Error("notifier: publish %s for appointment id=%d failed: %v",
				event.EventType, event.AppointmentID, err)
			return
		}

		n.logger.Info("notifier: published %s for appointment id=%d", event.EventType, event.AppointmentID)
	}()
}
