package events

import (
	"context"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var subscriberTracer = otel.Tracer("events/subscriber")

// HandlerFunc processes one event payload. Returning an error keeps the
// message uncommitted so it is redelivered.
type HandlerFunc func(ctx context.Context, payload []byte) error

// Subscriber reads a topic within a consumer group, restoring the trace
// context carried in message headers before handing each payload off.
type Subscriber struct {
	reader  *kafka.Reader
	topic   string
	groupID string
}

func NewSubscriber(brokers []string, topic, groupID string) *Subscriber {
	return &Subscriber{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		topic:   topic,
		groupID: groupID,
	}
}

// Run consumes until the context is cancelled or the handler fails.
func (s *Subscriber) Run(ctx context.Context, handler HandlerFunc) error {
	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if err := s.handleMessage(ctx, msg, handler); err != nil {
			return err
		}

		if err := s.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

func (s *Subscriber) handleMessage(ctx context.Context, msg kafka.Message, handler HandlerFunc) error {
	parentCtx := otel.GetTextMapPropagator().Extract(ctx, headerCarrier{msg: &msg})

	spanCtx, span := subscriberTracer.Start(parentCtx, "process "+s.topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("process"),
			semconv.MessagingOperationTypeDeliver,
			semconv.MessagingDestinationName(s.topic),
			semconv.MessagingKafkaConsumerGroup(s.groupID),
			semconv.MessagingKafkaMessageOffset(int(msg.Offset)),
			semconv.MessagingDestinationPartitionID(strconv.Itoa(msg.Partition)),
			semconv.MessagingKafkaMessageKey(string(msg.Key)),
		),
	)
	defer span.End()

	if err := handler(spanCtx, msg.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (s *Subscriber) Close() error {
	return s.reader.Close()
}
