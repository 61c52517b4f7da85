package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestEventSnapshots(t *testing.T) {
	ev := NewUpdate("rooms", row{ID: 1, Name: "before"}, row{ID: 1, Name: "after"})

	var old, updated row
	require.True(t, ev.DecodeOld(&old))
	require.True(t, ev.DecodeNew(&updated))
	assert.Equal(t, "before", old.Name)
	assert.Equal(t, "after", updated.Name)
}

func TestEventMissingSides(t *testing.T) {
	ins := NewInsert("rooms", row{ID: 2})
	var r row
	assert.False(t, ins.DecodeOld(&r), "insert carries no pre-image")
	assert.True(t, ins.DecodeNew(&r))

	del := NewDelete("rooms", row{ID: 2})
	assert.True(t, del.DecodeOld(&r))
	assert.False(t, del.DecodeNew(&r), "delete carries no post-image")
}
