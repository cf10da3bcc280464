// Package reportsink routes rendered report documents to their destinations.
//
// The combinator in Publish replaces implicit write-on-return decorators: a
// report producer and a sink are composed explicitly at the call site, so the
// side effect is visible where it happens.
package reportsink

import (
	"context"
	"fmt"
	"io"
	"os"

	"kopilka/internal/amqp"
	"kopilka/internal/report"
)

// Sink receives one rendered report document under a name.
type Sink interface {
	Write(ctx context.Context, name string, doc []byte) error
}

// WriterSink writes documents to an io.Writer, stdout by default.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Write(_ context.Context, _ string, doc []byte) error {
	w := s.W
	if w == nil {
		w = os.Stdout
	}
	_, err := w.Write(doc)
	return err
}

// FileSink writes each document to the configured path, truncating any
// previous report.
type FileSink struct {
	Path string
}

func (s FileSink) Write(_ context.Context, name string, doc []byte) error {
	if err := os.WriteFile(s.Path, doc, 0644); err != nil {
		return fmt.Errorf("write report %s: %w", name, err)
	}
	return nil
}

// AMQPSink publishes documents to a RabbitMQ exchange.
type AMQPSink struct {
	Client *amqp.Client
}

func (s AMQPSink) Write(ctx context.Context, name string, doc []byte) error {
	return s.Client.PublishReport(ctx, name, doc)
}

// Multi fans a document out to several sinks, stopping at the first failure.
type Multi []Sink

func (m Multi) Write(ctx context.Context, name string, doc []byte) error {
	for _, s := range m {
		if err := s.Write(ctx, name, doc); err != nil {
			return err
		}
	}
	return nil
}

// Publish runs a report producer, renders its result and writes it to the
// sink. The produced document is returned so callers can keep composing.
func Publish[T any](ctx context.Context, sink Sink, name string, produce func() (T, error)) (T, error) {
	doc, err := produce()
	if err != nil {
		var zero T
		return zero, err
	}
	rendered, err := report.RenderJSON(doc)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := sink.Write(ctx, name, rendered); err != nil {
		var zero T
		return zero, err
	}
	return doc, nil
}
