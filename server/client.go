package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn // Websocket connection
	send     chan []byte     // Buffered channel of outbound bytes
	playerID uuid.UUID       // Identity minted by the join API
	username string
	wallet   string
	room     *room // Player's table
}

func newClient(conn *websocket.Conn, hub *Hub, playerID uuid.UUID, username, wallet string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 1024),
		playerID: playerID,
		username: username,
		wallet:   wallet,
	}
}

func (c *Client) disconnect() {
	if c.room != nil {
		// a disconnect mid-hand folds and stands the player
		handleStandUp(c)
		c.room.unregister <- c
	}

	c.hub.unregister <- c
	c.conn.Close()
}

// readPump pumps events from the websocket connection to the hub.
//
// The application runs readPump in a per-connection goroutine. The application
// ensures that there is at most one reader on a connection by executing all
// reads from this goroutine.
func (c *Client) readPump() {
	defer func() {
		c.disconnect()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		slog.Warn("set read deadline", "error", err)
	}
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Websocket unexpected close", "error", err)
			}
			break
		}
		if err = c.processEvents(message); err != nil {
			slog.Warn("Process websocket message", "error", err)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
//
// A goroutine running writePump is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) processEvents(rawMessage []byte) error {
	var baseMessage base
	err := json.Unmarshal(rawMessage, &baseMessage)
	if err != nil {
		return err
	}

	if baseMessage.Action == "" {
		return errors.New("deserialize message")
	}

	switch baseMessage.Action {

	case actionJoinTable:
		var join joinTable
		if err := json.Unmarshal(rawMessage, &join); err != nil {
			return err
		}
		handleJoinTable(c, join.Tablename)
		return nil

	case actionLeaveTable:
		var leave leaveTable
		if err := json.Unmarshal(rawMessage, &leave); err != nil {
			return err
		}
		handleLeaveTable(c, leave.Tablename)
		return nil

	case actionSendMessage:
		var message sendMessage
		if err := json.Unmarshal(rawMessage, &message); err != nil {
			return err
		}
		handleSendMessage(c, message.Message)
		return nil

	case actionTakeSeat:
		var seat takeSeat
		if err := json.Unmarshal(rawMessage, &seat); err != nil {
			return err
		}
		handleTakeSeat(c, seat.SeatID, seat.BuyIn)
		return nil

	case actionRebuy:
		var buy rebuy
		if err := json.Unmarshal(rawMessage, &buy); err != nil {
			return err
		}
		handleRebuy(c, buy.SeatID, buy.Amount)
		return nil

	case actionStandUp:
		handleStandUp(c)
		return nil

	case actionStartHand:
		handleStartHand(c)
		return nil

	case actionPlayerFold:
		handleFold(c)
		return nil

	case actionPlayerCall:
		handleCall(c)
		return nil

	case actionPlayerCheck:
		handleCheck(c)
		return nil

	case actionPlayerRaise:
		var raise playerRaise
		if err := json.Unmarshal(rawMessage, &raise); err != nil {
			return err
		}
		handleRaise(c, raise.Amount)
		return nil

	default:
		return errors.New("unexpected message action")
	}
}

// ServeWs handles websocket requests from an authenticated peer.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, playerID uuid.UUID, username, wallet string) {
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Upgrade websocket", "error", err)
		return
	}
	client := newClient(conn, hub, playerID, username, wallet)

	client.hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()
}
