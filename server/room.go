package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/blockpoker/server/internal/game"
	"github.com/blockpoker/server/internal/history"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// room is a single table of poker: the engine table plus the set of
// connected clients watching or playing it. Broadcasts fan out through a
// Redis pub/sub channel so multiple server instances can share a table
// audience. The engine table serializes its own mutations, so room handlers
// call it directly from client goroutines.
type room struct {
	name       string
	table      *game.Table
	rdb        *redis.Client
	store      *history.Store
	cache      *history.Cache
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	deliver    chan []byte

	archiveMu    sync.Mutex
	archivedHand uuid.UUID
}

func newRoom(name string, table *game.Table, rdb *redis.Client, store *history.Store, cache *history.Cache) *room {
	return &room{
		name:       name,
		table:      table,
		rdb:        rdb,
		store:      store,
		cache:      cache,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		deliver:    make(chan []byte),
	}
}

func (r *room) run() {
	go r.subscribeToMessages()

	for {
		select {
		case client := <-r.register:
			r.clients[client] = true
			r.sendCurrentState(client)
		case client := <-r.unregister:
			delete(r.clients, client)
		case message := <-r.broadcast:
			r.publishMessage(message)
		case message := <-r.deliver:
			r.broadcastToClients(message)
		}
	}
}

func (r *room) broadcastToClients(message []byte) {
	for client := range r.clients {
		select {
		case client.send <- message:
		default:
			delete(r.clients, client)
		}
	}
}

func (r *room) publishMessage(message []byte) {
	if err := r.rdb.Publish(context.Background(), r.channel(), message).Err(); err != nil {
		slog.Warn("Publish room message", "room", r.name, "error", err)
	}
}

func (r *room) subscribeToMessages() {
	pubsub := r.rdb.Subscribe(context.Background(), r.channel())
	ch := pubsub.Channel()

	for msg := range ch {
		r.deliver <- []byte(msg.Payload)
	}
}

func (r *room) channel() string {
	return "table:" + r.name
}

// sendCurrentState brings a newly joined client up to date, preferring the
// live table state and falling back to the cached snapshot.
func (r *room) sendCurrentState(client *Client) {
	snap := r.table.LatestSnapshot()
	if snap == nil && r.cache != nil {
		cached, err := r.cache.GetSnapshot(context.Background(), r.table.ID())
		if err != nil {
			slog.Warn("Read cached snapshot", "room", r.name, "error", err)
		} else {
			snap = cached
		}
	}
	if snap == nil {
		return
	}

	msg, err := marshalTableState(r.name, snap)
	if err != nil {
		slog.Warn("Marshal table state", "room", r.name, "error", err)
		return
	}
	safeSend(client, msg)
}

// broadcastState publishes the latest snapshot to every client at the table
// and refreshes the snapshot cache.
func (r *room) broadcastState() {
	snap := r.table.LatestSnapshot()
	if snap == nil {
		return
	}

	msg, err := marshalTableState(r.name, snap)
	if err != nil {
		slog.Warn("Marshal table state", "room", r.name, "error", err)
		return
	}
	r.broadcast <- msg

	if r.cache != nil {
		go func() {
			if err := r.cache.SetSnapshot(context.Background(), r.table.ID(), snap); err != nil {
				slog.Warn("Cache table snapshot", "room", r.name, "error", err)
			}
		}()
	}
}

// archiveHandIfOver saves the finished hand's snapshot log. Called after
// every action; a no-op while the hand is still live or when no database is
// configured.
func (r *room) archiveHandIfOver() {
	if r.store == nil || !r.table.HandOver() {
		return
	}
	handID := r.table.HandID()
	if handID == uuid.Nil {
		return
	}

	r.archiveMu.Lock()
	alreadySaved := r.archivedHand == handID
	r.archivedHand = handID
	r.archiveMu.Unlock()
	if alreadySaved {
		return
	}

	snapshots := r.table.History()
	if len(snapshots) == 0 {
		return
	}

	go func() {
		err := r.store.SaveHand(context.Background(), handID, r.table.ID(), r.name, r.table.WentToShowdown(), snapshots)
		if err != nil {
			slog.Warn("Archive hand", "room", r.name, "error", err)
		}
	}()
}

func marshalTableState(name string, snap *game.Snapshot) ([]byte, error) {
	return json.Marshal(updateTable{
		base:      base{Action: actionUpdateTable},
		Tablename: name,
		State:     snap,
	})
}
