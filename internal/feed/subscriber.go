package feed

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Handler consumes one event. Handlers run sequentially on the subscriber
// goroutine, so per-table mirror state never sees concurrent folds.
type Handler func(Event)

// Subscriber listens on every feed channel and dispatches events to the
// handlers registered per table.
type Subscriber struct {
	rdb      *redis.Client
	handlers map[string][]Handler
	catchAll []Handler
}

func NewSubscriber(rdb *redis.Client) *Subscriber {
	return &Subscriber{
		rdb:      rdb,
		handlers: make(map[string][]Handler),
	}
}

// Handle registers fn for events on the given table. Must be called before
// Run.
func (s *Subscriber) Handle(table string, fn Handler) {
	s.handlers[table] = append(s.handlers[table], fn)
}

// HandleAll registers fn for events on every table, after per-table
// handlers.
func (s *Subscriber) HandleAll(fn Handler) {
	s.catchAll = append(s.catchAll, fn)
}

// Run consumes the feed until ctx is cancelled, reconnecting with backoff
// when the pub/sub stream drops. Events published while disconnected are
// lost; the periodic refresh is the self-heal for that.
func (s *Subscriber) Run(ctx context.Context) {
	if s.rdb == nil {
		log.Printf("[feed] no redis configured; change feed disabled")
		return
	}
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		pubsub := s.rdb.PSubscribe(ctx, ChannelPrefix+"*")
		ch := pubsub.Channel()
		connected := true
		for connected {
			select {
			case <-ctx.Done():
				_ = pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					connected = false
					break
				}
				backoff = time.Second
				s.dispatch(msg)
			}
		}
		_ = pubsub.Close()
		log.Printf("[feed] subscription dropped; reconnecting in %s", backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (s *Subscriber) dispatch(msg *redis.Message) {
	var ev Event
	if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
		log.Printf("[feed] bad payload on %s: %v", msg.Channel, err)
		return
	}
	if ev.Table == "" {
		ev.Table = strings.TrimPrefix(msg.Channel, ChannelPrefix)
	}
	for _, fn := range s.handlers[ev.Table] {
		fn(ev)
	}
	for _, fn := range s.catchAll {
		fn(ev)
	}
}
