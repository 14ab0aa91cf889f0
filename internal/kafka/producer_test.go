package kafka

import (
	"context"
	"testing"
)

// Shutdown calls Close and cancels the root context in quick succession; the
// writer goroutine must flush and finish no matter which it observes first.
func TestProducerShutdownCloseAndCancel(t *testing.T) {
	for i := 0; i < 200; i++ {
		p := NewProducer([]string{"localhost:9092"}, "pedido.created", 8)
		ctx, cancel := context.WithCancel(context.Background())
		p.Start(ctx)

		p.Close()
		cancel()
		p.WaitClosed()
	}
}

func TestProducerCancelThenClose(t *testing.T) {
	for i := 0; i < 200; i++ {
		p := NewProducer([]string{"localhost:9092"}, "pedido.created", 8)
		ctx, cancel := context.WithCancel(context.Background())
		p.Start(ctx)

		cancel()
		p.Close()
		p.WaitClosed()
	}
}

func TestProducerCloseIsIdempotent(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "pedido.created", 8)
	p.Start(context.Background())

	p.Close()
	p.Close()
	p.WaitClosed()
}
