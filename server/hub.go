package server

import (
	"sync"

	"github.com/blockpoker/server/internal/config"
	"github.com/blockpoker/server/internal/game"
	"github.com/blockpoker/server/internal/history"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Hub maintains the set of active clients and the open table rooms.
type Hub struct {
	rdb        *redis.Client
	store      *history.Store
	cache      *history.Cache
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu         sync.Mutex
	rooms      map[string]*room
	tableLimit float64
	maxPlayers int
}

func NewHub(cfg *config.Config, rdb *redis.Client, store *history.Store, cache *history.Cache) *Hub {
	return &Hub{
		rdb:        rdb,
		store:      store,
		cache:      cache,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]*room),
		tableLimit: cfg.TableLimit,
		maxPlayers: cfg.TableMaxPlayers,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
}

func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) broadcastToClients(message []byte) {
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// findOrCreateRoom returns the room for a table name, opening it with a
// fresh engine table if it does not exist yet.
func (h *Hub) findOrCreateRoom(name string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r, ok := h.rooms[name]; ok {
		return r
	}

	table := game.New(uuid.New(), name, h.tableLimit, h.maxPlayers, nil)
	r := newRoom(name, table, h.rdb, h.store, h.cache)
	h.rooms[name] = r
	go r.run()
	return r
}

func (h *Hub) findRoom(name string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[name]
}

// RoomInfo is a summary of one open table for the HTTP listing.
type RoomInfo struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Limit      float64   `json:"limit"`
	MaxPlayers int       `json:"max_players"`
	Seated     int       `json:"seated"`
}

// Rooms lists every open table room.
func (h *Hub) Rooms() []RoomInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	infos := make([]RoomInfo, 0, len(h.rooms))
	for _, r := range h.rooms {
		infos = append(infos, RoomInfo{
			ID:         r.table.ID(),
			Name:       r.name,
			Limit:      r.table.Limit(),
			MaxPlayers: r.table.MaxPlayers(),
			Seated:     r.table.SeatedCount(),
		})
	}
	return infos
}
