package server

import "github.com/blockpoker/server/internal/game"

// inbound (client) actions
const (
	actionJoinTable   string = "join-table"
	actionLeaveTable  string = "leave-table"
	actionSendMessage string = "send-message"
	actionTakeSeat    string = "take-seat"
	actionRebuy       string = "rebuy"
	actionStandUp     string = "stand-up"
	actionStartHand   string = "start-hand"
	actionPlayerFold  string = "fold"
	actionPlayerCall  string = "call"
	actionPlayerCheck string = "check"
	actionPlayerRaise string = "raise"
)

type base struct {
	// allows for correctly identifying messages
	Action string `json:"action"`
}

type joinTable struct {
	base             // actionJoinTable
	Tablename string `json:"tablename"`
}

type leaveTable struct {
	base             // actionLeaveTable
	Tablename string `json:"tablename"`
}

type sendMessage struct {
	base           // actionSendMessage
	Message string `json:"message"`
}

type takeSeat struct {
	base           // actionTakeSeat
	SeatID int     `json:"seatId"`
	BuyIn  float64 `json:"buyIn"`
}

type rebuy struct {
	base           // actionRebuy
	SeatID int     `json:"seatId"`
	Amount float64 `json:"amount"`
}

type playerRaise struct {
	base           // actionPlayerRaise
	Amount float64 `json:"amount"`
}

// outbound (server) actions
const (
	actionNewMessage  string = "new-message"
	actionUpdateTable string = "update-table"
	actionError       string = "error"
)

type newMessage struct {
	base             // actionNewMessage
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type updateTable struct {
	base                     // actionUpdateTable
	Tablename string         `json:"tablename"`
	State     *game.Snapshot `json:"state"`
}

type errorMessage struct {
	base           // actionError
	Message string `json:"message"`
}
