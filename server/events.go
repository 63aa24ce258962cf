package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/blockpoker/server/internal/game"
)

// safeSend delivers a message to one client without blocking the caller.
func safeSend(c *Client, message []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Attempted to send message to closed channel", "player_id", c.playerID)
		}
	}()

	select {
	case c.send <- message:
	default:
		slog.Warn("Unable to send message to client, channel unavailable", "player_id", c.playerID)
	}
}

func sendError(c *Client, message string) {
	msg, err := json.Marshal(errorMessage{
		base:    base{Action: actionError},
		Message: message,
	})
	if err != nil {
		return
	}
	safeSend(c, msg)
}

func createNewMessage(username, message string) []byte {
	msg, _ := json.Marshal(newMessage{
		base:      base{Action: actionNewMessage},
		Username:  username,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	return msg
}

func handleJoinTable(c *Client, tablename string) {
	room := c.hub.findOrCreateRoom(tablename)
	c.room = room
	room.register <- c
	room.broadcast <- createNewMessage("system", c.username+" has joined")
}

func handleLeaveTable(c *Client, tablename string) {
	room := c.hub.findRoom(tablename)
	if room == nil || room != c.room {
		return
	}

	handleStandUp(c)
	c.room = nil
	room.unregister <- c
	room.broadcast <- createNewMessage("system", c.username+" has left")
}

func handleSendMessage(c *Client, message string) {
	if c.room == nil {
		return
	}
	c.room.broadcast <- createNewMessage(c.username, message)
}

func handleTakeSeat(c *Client, seatID int, buyIn float64) {
	if c.room == nil {
		sendError(c, "Join a table before taking a seat")
		return
	}
	if buyIn <= 0 {
		sendError(c, "Buy-in amount must be positive")
		return
	}

	player := game.Player{ID: c.playerID, Name: c.username}
	if err := c.room.table.SitPlayer(player, seatID, buyIn); err != nil {
		slog.Warn("Take seat failed", "player_id", c.playerID, "seat_id", seatID, "error", err)
		sendError(c, "Failed to take seat: "+err.Error())
		return
	}

	slog.Info("Player seated", "player_id", c.playerID, "seat_id", seatID, "buy_in", buyIn)
	c.room.broadcastState()
}

func handleRebuy(c *Client, seatID int, amount float64) {
	if c.room == nil {
		return
	}
	if amount <= 0 {
		sendError(c, "Rebuy amount must be positive")
		return
	}

	if err := c.room.table.RebuyPlayer(seatID, amount); err != nil {
		sendError(c, "Failed to rebuy: "+err.Error())
		return
	}
	c.room.broadcastState()
}

func handleStandUp(c *Client) {
	if c.room == nil {
		return
	}

	if err := c.room.table.StandPlayer(c.playerID); err != nil {
		if !errors.Is(err, game.ErrPlayerNotFound) {
			slog.Warn("Stand player failed", "player_id", c.playerID, "error", err)
		}
		return
	}

	c.room.archiveHandIfOver()
	c.room.broadcastState()
}

func handleStartHand(c *Client) {
	if c.room == nil {
		return
	}

	if err := c.room.table.StartHand(); err != nil {
		sendError(c, "Failed to start hand: "+err.Error())
		return
	}
	c.room.broadcastState()
}

func handleFold(c *Client) {
	applyAction(c, func(t *game.Table) (*game.ActionResult, error) {
		return t.HandleFold(c.playerID)
	})
}

func handleCall(c *Client) {
	applyAction(c, func(t *game.Table) (*game.ActionResult, error) {
		return t.HandleCall(c.playerID)
	})
}

func handleCheck(c *Client) {
	applyAction(c, func(t *game.Table) (*game.ActionResult, error) {
		return t.HandleCheck(c.playerID)
	})
}

func handleRaise(c *Client, amount float64) {
	applyAction(c, func(t *game.Table) (*game.ActionResult, error) {
		return t.HandleRaise(c.playerID, amount)
	})
}

// applyAction runs one engine mutator and broadcasts the outcome: the
// action's log line, the refreshed table state, and a hand archive write if
// the action ended the hand.
func applyAction(c *Client, action func(*game.Table) (*game.ActionResult, error)) {
	if c.room == nil {
		sendError(c, "Join a table first")
		return
	}

	result, err := action(c.room.table)
	if err != nil {
		sendError(c, err.Error())
		return
	}

	c.room.broadcast <- createNewMessage("dealer", result.Message)
	c.room.archiveHandIfOver()
	c.room.broadcastState()
}
