package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mcoot/guessfilm/internal/api/request"
	"github.com/mcoot/guessfilm/internal/api/response"
	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/services/bot"
)

// MessageHandler feeds chat messages to the dispatcher
type MessageHandler struct {
	dispatcher *bot.Dispatcher
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(dispatcher *bot.Dispatcher) *MessageHandler {
	return &MessageHandler{
		dispatcher: dispatcher,
	}
}

// Send handles POST /api/v1/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == nil {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		WriteError(w, NewInvalidRequestError("text is required"))
		return
	}

	replies, err := h.dispatcher.Handle(r.Context(), bot.Message{
		PlayerID: model.PlayerID(*req.PlayerID),
		Text:     req.Text,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessagesFromReplies(replies))
}
