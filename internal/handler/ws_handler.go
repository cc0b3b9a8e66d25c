package handler

import (
	"log"
	"net/http"

	"pgfeaturediff-server/internal/domain"
	"pgfeaturediff-server/internal/service"
	"pgfeaturediff-server/internal/websocket"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	manager  *websocket.Manager
	upgrader ws.Upgrader
}

func NewWebSocketHandler(manager *websocket.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		manager: manager,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection upgrades an interactive client. The comparison view
// is public, so there is no handshake beyond the upgrade itself.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WebSocket] failed to upgrade connection: %v", err)
		return
	}

	client := websocket.NewClient(uuid.New().String(), conn, h.manager)
	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

// CompareMessageHandler recomputes the comparison for a client on every
// compare_request message, mirroring the HTTP compare endpoint.
type CompareMessageHandler struct {
	matrixService *service.MatrixService
}

func NewCompareMessageHandler(matrixService *service.MatrixService) *CompareMessageHandler {
	return &CompareMessageHandler{
		matrixService: matrixService,
	}
}

func (h *CompareMessageHandler) HandleWebSocketMessage(client *websocket.Client, msg *websocket.Message) error {
	switch msg.Type {
	case websocket.TypeCompareRequest:
		return h.handleCompareRequest(client, msg)

	case websocket.TypePing:
		return h.reply(client, websocket.TypePong, nil)

	default:
		return h.reply(client, websocket.TypeError, &websocket.ErrorPayload{
			Error: "unknown message type: " + string(msg.Type),
		})
	}
}

func (h *CompareMessageHandler) handleCompareRequest(client *websocket.Client, msg *websocket.Message) error {
	var payload websocket.CompareRequestPayload
	if err := msg.UnmarshalPayload(&payload); err != nil {
		return h.reply(client, websocket.TypeError, &websocket.ErrorPayload{
			Error: "malformed compare_request payload",
		})
	}

	result := h.matrixService.Compare(&domain.CompareRequest{
		From:       payload.From,
		To:         payload.To,
		Search:     payload.Search,
		Categories: payload.Categories,
	})

	return h.reply(client, websocket.TypeCompareResult, result)
}

func (h *CompareMessageHandler) reply(client *websocket.Client, msgType websocket.MessageType, payload interface{}) error {
	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	return client.Manager.SendToClient(client.ID, msg)
}
