package notify

import (
	"context"
	"sync"
	"time"

	"hr-portal-backend/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

var _ notification.Dispatcher = (*AsyncDispatcher)(nil)

const sendTimeout = 30 * time.Second

// AsyncDispatcher queues messages for a fixed worker pool. Dispatch never
// blocks: a full queue or a closed dispatcher drops the message with a warning.
type AsyncDispatcher struct {
	sender Sender
	queue  chan notification.Message
	log    logrus.FieldLogger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsyncDispatcher(sender Sender, workers, queueSize int, log logrus.FieldLogger) *AsyncDispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	d := &AsyncDispatcher{
		sender: sender,
		queue:  make(chan notification.Message, queueSize),
		log:    log.WithField("module", "notify"),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

func (d *AsyncDispatcher) Dispatch(_ context.Context, msg notification.Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.WithField("recipient", msg.Recipient).Warn("dispatcher closed, notification dropped")
		return
	}
	select {
	case d.queue <- msg:
	default:
		d.log.WithFields(logrus.Fields{
			"recipient": msg.Recipient,
			"subject":   msg.Subject,
		}).Warn("notification queue full, dropped")
	}
}

func (d *AsyncDispatcher) work() {
	defer d.wg.Done()
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			d.log.WithError(err).WithFields(logrus.Fields{
				"recipient": msg.Recipient,
				"subject":   msg.Subject,
			}).Error("notification delivery failed")
		}
		cancel()
	}
}

// Close stops intake and waits for queued messages to drain, or for ctx.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
