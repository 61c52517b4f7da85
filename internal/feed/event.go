// Package feed carries row-change events between the write path and the
// reconciliation layer. Events travel as JSON over redis pub/sub, one
// channel per table. Delivery is best-effort: no ordering or redelivery
// guarantees, which is why mirrors also run a periodic full refresh.
package feed

import (
	"encoding/json"
	"time"
)

const (
	KindInsert = "insert"
	KindUpdate = "update"
	KindDelete = "delete"
)

// ChannelPrefix namespaces feed channels in redis.
const ChannelPrefix = "feed:"

// Event is one row change. Old holds the pre-image (update, delete) and
// New the post-image (insert, update); the unused side is nil.
type Event struct {
	Table string          `json:"table"`
	Kind  string          `json:"kind"`
	Old   json.RawMessage `json:"old,omitempty"`
	New   json.RawMessage `json:"new,omitempty"`
	At    time.Time       `json:"at"`
}

// NewInsert builds an insert event from the freshly written row.
func NewInsert(table string, row interface{}) Event {
	return Event{Table: table, Kind: KindInsert, New: marshal(row), At: time.Now().UTC()}
}

// NewUpdate builds an update event from the row's pre- and post-images.
func NewUpdate(table string, old, row interface{}) Event {
	return Event{Table: table, Kind: KindUpdate, Old: marshal(old), New: marshal(row), At: time.Now().UTC()}
}

// NewDelete builds a delete event from the removed row's last state.
func NewDelete(table string, old interface{}) Event {
	return Event{Table: table, Kind: KindDelete, Old: marshal(old), At: time.Now().UTC()}
}

// DecodeOld unmarshals the pre-image into v. Returns false when the event
// carries no pre-image or it does not parse.
func (e Event) DecodeOld(v interface{}) bool {
	return decode(e.Old, v)
}

// DecodeNew unmarshals the post-image into v.
func (e Event) DecodeNew(v interface{}) bool {
	return decode(e.New, v)
}

func marshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

func decode(raw json.RawMessage, v interface{}) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}
