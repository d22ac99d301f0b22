// Package linebot adapts the LINE messaging webhook to the bot layer.
// It owns signature verification and reply delivery; everything the bot
// sees is plain strings.
package linebot

import (
	"errors"
	"net/http"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"ledgerbot/internal/bot"
	"ledgerbot/internal/log"
)

type Handler struct {
	channelSecret string
	api           *messaging_api.MessagingApiAPI
	bot           *bot.Bot
	logger        *log.Logger
}

func New(channelSecret, channelToken string, b *bot.Bot, logger *log.Logger) (*Handler, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}
	return &Handler{
		channelSecret: channelSecret,
		api:           api,
		bot:           b,
		logger:        logger,
	}, nil
}

// ServeHTTP handles the webhook callback. Events are processed one at a
// time; a failed reply is logged and the rest of the batch continues.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cb, err := webhook.ParseRequest(h.channelSecret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.WarnContext(r.Context(), "Invalid webhook signature")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(r.Context(), "Webhook parse failed", log.FieldError, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for _, event := range cb.Events {
		me, ok := event.(webhook.MessageEvent)
		if !ok {
			continue
		}
		text, ok := me.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}
		groupID, userID := sourceIDs(me.Source)
		if groupID == "" {
			// The ledger is group-scoped; one-on-one chats are ignored.
			continue
		}

		reply := h.bot.HandleMessage(r.Context(), groupID, userID, text.Text)
		if reply == "" {
			continue
		}

		_, err := h.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
			ReplyToken: me.ReplyToken,
			Messages: []messaging_api.MessageInterface{
				messaging_api.TextMessage{Text: reply},
			},
		})
		if err != nil {
			h.logger.ErrorContext(r.Context(), "Reply failed",
				log.FieldGroupID, groupID, log.FieldError, err)
		}
	}

	w.WriteHeader(http.StatusOK)
}

// sourceIDs extracts the chat scope and sender. Rooms count as groups
// for ledger purposes.
func sourceIDs(src webhook.SourceInterface) (groupID, userID string) {
	switch s := src.(type) {
	case webhook.GroupSource:
		return s.GroupId, s.UserId
	case webhook.RoomSource:
		return s.RoomId, s.UserId
	case webhook.UserSource:
		return "", s.UserId
	}
	return "", ""
}
