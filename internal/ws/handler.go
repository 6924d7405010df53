package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dice-service/internal/service/dice"
	"dice-service/internal/service/notify"
	pkgAuth "dice-service/pkg/auth"
	appErr "dice-service/pkg/errors"
	"dice-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	diceSvc *dice.Service
	hub     *notify.Hub
}

func NewHandler(diceSvc *dice.Service, hub *notify.Hub) *Handler {
	return &Handler{diceSvc: diceSvc, hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

func (h *Handler) HandleRoomWS(c *gin.Context) {
	roomIDStr := c.Param("roomId")
	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil || roomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	token, err := getTokenFromRequest(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	claims, err := pkgAuth.ParseUserToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	userID := claims.SubjectID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	logger.Log.Info("New WebSocket connection",
		zap.Int64("roomID", roomID),
		zap.Int64("userID", userID),
	)

	client := newClient(conn, userID, roomID, h)
	client.run()
}

func getTokenFromRequest(c *gin.Context) (string, error) {
	token := strings.TrimSpace(c.Query("token"))
	if token != "" {
		return token, nil
	}
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
			if token != "" {
				return token, nil
			}
		}
	}
	return "", errors.New("missing token")
}

type choiceData struct {
	UserID int64 `json:"userId,string"`
}

// HandleAction runs one client action against the room's session.
func (h *Handler) HandleAction(ctx context.Context, roomID, userID int64, action string, data json.RawMessage) error {
	switch action {
	case "join":
		_, err := h.diceSvc.Join(ctx, roomID, userID)
		return err
	case "cancel":
		_, err := h.diceSvc.Cancel(ctx, roomID, userID)
		return err
	case "quit":
		_, err := h.diceSvc.Quit(ctx, roomID, userID)
		return err
	case "fold", "continue":
		target := userID
		if len(data) > 0 && string(data) != "null" {
			var body choiceData
			if err := json.Unmarshal(data, &body); err != nil {
				return fmt.Errorf("invalid %s payload", action)
			}
			if body.UserID != 0 {
				target = body.UserID
			}
		}
		var err error
		if action == "fold" {
			_, err = h.diceSvc.Fold(ctx, roomID, userID, target)
		} else {
			_, err = h.diceSvc.Continue(ctx, roomID, userID, target)
		}
		return err
	case "rejoin":
		h.pushState(ctx, roomID, userID)
		return nil
	case "ping":
		return h.hub.Push(roomID, userID, "pong", gin.H{"message": "pong"})
	default:
		return fmt.Errorf("unsupported action")
	}
}

// pushState sends the caller's view of the room, including its own rolls
// and pending prompt, so a reconnect can resume a decision.
func (h *Handler) pushState(ctx context.Context, roomID, userID int64) {
	view, err := h.diceSvc.PrivateView(ctx, roomID, userID)
	var data interface{} = gin.H{"session": nil}
	if err == nil {
		data = view
	}
	_ = h.hub.Push(roomID, userID, "state", data)
}

type client struct {
	conn      *websocket.Conn
	userID    int64
	roomID    int64
	h         *Handler
	outbound  <-chan notify.OutgoingMessage
	done      chan struct{}
	pingEvery time.Duration
}

func newClient(conn *websocket.Conn, userID, roomID int64, h *Handler) *client {
	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	c := &client{
		conn:      conn,
		userID:    userID,
		roomID:    roomID,
		h:         h,
		outbound:  h.hub.Subscribe(roomID, userID),
		done:      make(chan struct{}),
		pingEvery: 25 * time.Second,
	}
	h.pushState(context.Background(), roomID, userID)
	return c
}

func (c *client) run() {
	go c.writePump()
	c.readPump()
}

func (c *client) readPump() {
	defer func() {
		close(c.done)
		c.h.hub.Unsubscribe(c.roomID, c.userID, c.outbound)
		c.conn.Close()
	}()

	for {
		mt, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Log.Info("WS read error", zap.Error(err), zap.Int64("userID", c.userID), zap.Int64("roomID", c.roomID))
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		var incoming struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(message, &incoming); err != nil {
			c.pushError("invalid payload", "")
			continue
		}
		if incoming.Type == "" {
			continue
		}

		if err := c.h.HandleAction(context.Background(), c.roomID, c.userID, incoming.Type, incoming.Data); err != nil {
			c.pushError(fmt.Sprintf("action failed: %v", err), appErr.CodeOf(err))
		}
	}
}

// pushError routes through the hub so the write pump stays the only
// writer on the connection.
func (c *client) pushError(msg, code string) {
	data := gin.H{"message": msg}
	if code != "" {
		data["code"] = code
	}
	if err := c.h.hub.Push(c.roomID, c.userID, "error", data); err != nil {
		logger.Log.Info("WS error push failed", zap.Error(err), zap.Int64("userID", c.userID), zap.Int64("roomID", c.roomID))
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.outbound:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.Info("WS write error", zap.Error(err), zap.Int64("userID", c.userID), zap.Int64("roomID", c.roomID))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
