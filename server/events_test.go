package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockpoker/server/internal/game"
)

func TestSafeSendDelivers(t *testing.T) {
	c := &Client{send: make(chan []byte, 1)}
	safeSend(c, []byte("hello"))

	select {
	case msg := <-c.send:
		assert.Equal(t, "hello", string(msg))
	default:
		t.Fatal("expected a message on the send channel")
	}
}

func TestSafeSendDoesNotBlockOnFullChannel(t *testing.T) {
	c := &Client{send: make(chan []byte, 1)}
	c.send <- []byte("first")

	// must return immediately, dropping the message
	safeSend(c, []byte("second"))
	assert.Equal(t, "first", string(<-c.send))
}

func TestSafeSendSurvivesClosedChannel(t *testing.T) {
	c := &Client{send: make(chan []byte)}
	close(c.send)

	assert.NotPanics(t, func() {
		safeSend(c, []byte("late"))
	})
}

func TestCreateNewMessageEnvelope(t *testing.T) {
	raw := createNewMessage("alice", "nice hand")

	var msg newMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, actionNewMessage, msg.Action)
	assert.Equal(t, "alice", msg.Username)
	assert.Equal(t, "nice hand", msg.Message)
	assert.NotEmpty(t, msg.Timestamp)
}

func TestMarshalTableState(t *testing.T) {
	snap := &game.Snapshot{Pot: 12.5, Stage: "flop"}
	raw, err := marshalTableState("high-stakes", snap)
	require.NoError(t, err)

	var msg updateTable
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, actionUpdateTable, msg.Action)
	assert.Equal(t, "high-stakes", msg.Tablename)
	require.NotNil(t, msg.State)
	assert.Equal(t, 12.5, msg.State.Pot)
	assert.Equal(t, "flop", msg.State.Stage)
}
