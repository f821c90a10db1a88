package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/internal/logging"

	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer closed")
var ErrProducerFull = errors.New("producer buffer full")

// *kafka.Writer を差し替えられるように
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}
}

// リクエストを待たせないよう、書き込みはバックグラウンドの1 goroutineで行う
type Producer struct {
	w     MessageWriter
	log   logging.Logger
	inbox chan kafka.Message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

func NewProducer(w MessageWriter, log logging.Logger, buf int) *Producer {
	if buf <= 0 {
		buf = 256
	}
	return &Producer{
		w:     w,
		log:   log.With("component", "kafka_producer"),
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

func (p *Producer) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				p.log.Error(ctx, "kafka write failed", "topic", m.Topic, "key", string(m.Key), "err", err)
			}
			cancel()
		}
		if err := p.w.Close(); err != nil {
			p.log.Warn(context.Background(), "kafka writer close failed", "err", err)
		}
	}()
}

// バッファが一杯なら待たずにエラー
func (p *Producer) Publish(topic string, key, value []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}

	select {
	case p.inbox <- kafka.Message{Topic: topic, Key: key, Value: value, Time: time.Now()}:
		return nil
	default:
		return ErrProducerFull
	}
}

// 残りを書き切ってから戻る。ctxが先に切れたら待つのをやめる
func (p *Producer) Close(ctx context.Context) error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.inbox)
		p.mu.Unlock()
	})

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
