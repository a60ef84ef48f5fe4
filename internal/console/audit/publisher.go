package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/event-betting-console/internal/shared/kafka"
	"github.com/radieske/event-betting-console/pkg/contracts/events"
)

// Publisher registra as ações da equipe
type Publisher interface {
	Publish(ctx context.Context, a events.StaffAction) error
	Close() error
}

// MessageWriter é o subconjunto de *kafka.Writer usado aqui
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	Writer MessageWriter
	now    func() time.Time
}

func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, now: time.Now}
}

// Publish completa ID e timestamp; a chave da mensagem é o evento
func (p *KafkaPublisher) Publish(ctx context.Context, a events.StaffAction) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.TsUnixMs = p.now().UnixMilli()
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal staff action: %w", err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(a.EventID), Value: b})
}

func (p *KafkaPublisher) Close() error { return p.Writer.Close() }

// Nop é usado quando não há brokers configurados
type Nop struct{}

func (Nop) Publish(context.Context, events.StaffAction) error { return nil }
func (Nop) Close() error { return nil }

// New escolhe o publisher conforme a lista de brokers ("a:9092,b:9092")
func New(brokers, topic string, log *zap.Logger) Publisher {
	list := kafka.ParseBrokers(brokers)
	if len(list) == 0 {
		log.Info("audit disabled: no kafka brokers configured")
		return Nop{}
	}
	log.Info("audit enabled", zap.Strings("brokers", list), zap.String("topic", topic))
	return NewKafkaPublisher(kafka.NewWriter(list, topic))
}

// Recorder publica sem afetar a resposta ao usuário; falhas só vão para o log
type Recorder struct {
	pub Publisher
	log *zap.Logger
}

func NewRecorder(pub Publisher, log *zap.Logger) *Recorder {
	if pub == nil {
		pub = Nop{}
	}
	return &Recorder{pub: pub, log: log}
}

func (r *Recorder) Record(ctx context.Context, action, eventID, detail string) {
	err := r.pub.Publish(ctx, events.StaffAction{Action: action, EventID: eventID, Detail: detail})
	if err != nil {
		r.log.Warn("audit publish failed",
			zap.String("action", action),
			zap.String("event_id", eventID),
			zap.Error(err),
		)
	}
}
