package feed

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes events onto the change feed. A nil redis client makes
// every publish a silent no-op so the write path keeps working without a
// feed backend; callers never check for that case.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Publish sends ev on its table channel. Failures are logged and swallowed:
// a lost event is healed by the next full refresh, and the originating
// write has already committed.
func (p *Publisher) Publish(ctx context.Context, ev Event) {
	if p.rdb == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[feed] marshal %s/%s: %v", ev.Table, ev.Kind, err)
		return
	}
	if err := p.rdb.Publish(ctx, ChannelPrefix+ev.Table, data).Err(); err != nil {
		log.Printf("[feed] publish %s/%s: %v", ev.Table, ev.Kind, err)
	}
}
