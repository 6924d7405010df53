package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"dice-service/internal/middleware"
	"dice-service/internal/service"
	"dice-service/internal/service/dice"
	walletsvc "dice-service/internal/service/wallet"
	"dice-service/internal/ws"
	"dice-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Container
}

func RegisterRoutes(r *gin.Engine, services *service.Container) {
	handler := &Handler{services: services}
	wsHandler := ws.NewHandler(services.Dice, services.Hub)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	v1 := r.Group("/diceService/v1")
	{
		v1.POST("/auth/token", handler.IssueToken)

		authed := v1.Group("/")
		authed.Use(middleware.AuthRequired())
		{
			authed.GET("/wallet", handler.GetWallet)

			room := authed.Group("/rooms/:roomId/dice")
			{
				room.POST("", handler.StartDice)
				room.GET("", handler.GetDice)
				room.GET("/me", handler.MyDice)
				room.POST("/join", handler.JoinDice)
				room.POST("/cancel", handler.CancelDice)
				room.POST("/quit", handler.QuitDice)
				room.POST("/fold", handler.FoldDice)
				room.POST("/continue", handler.ContinueDice)
				room.GET("/history", handler.DiceHistory)
			}
		}

		bridge := v1.Group("/bridge")
		bridge.Use(middleware.BridgeKeyRequired(services.Auth))
		{
			bridge.PUT("/wallets/:userId", handler.BridgeSetWallet)
		}
	}

	r.GET("/ws/room/:roomId", wsHandler.HandleRoomWS)
}

type issueTokenBody struct {
	UserID int64 `json:"userId,string" binding:"required,min=1"`
}

type startDiceBody struct {
	Bet     int64 `json:"bet" binding:"required,min=1"`
	Players int   `json:"players" binding:"required"`
}

type choiceBody struct {
	UserID int64 `json:"userId,string"`
}

type setWalletBody struct {
	BalanceAvailable *int64 `json:"balanceAvailable"`
}

func (h *Handler) IssueToken(c *gin.Context) {
	var body issueTokenBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.services.Auth.IssueToken(c.Request.Context(), c.GetHeader(middleware.BridgeKeyHeader), body.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}

func (h *Handler) StartDice(c *gin.Context) {
	userID, roomID, ok := h.actor(c)
	if !ok {
		return
	}

	var body startDiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.services.Dice.Start(c.Request.Context(), dice.StartRequest{
		RoomID:  roomID,
		HostID:  userID,
		Bet:     body.Bet,
		Players: body.Players,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"session": snap})
}

func (h *Handler) GetDice(c *gin.Context) {
	_, roomID, ok := h.actor(c)
	if !ok {
		return
	}
	snap, err := h.services.Dice.Get(c.Request.Context(), roomID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"session": snap})
}

// MyDice returns the caller's private view: own rolls and pending prompt.
func (h *Handler) MyDice(c *gin.Context) {
	userID, roomID, ok := h.actor(c)
	if !ok {
		return
	}
	view, err := h.services.Dice.PrivateView(c.Request.Context(), roomID, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, view)
}

func (h *Handler) JoinDice(c *gin.Context) {
	h.roomAction(c, h.services.Dice.Join)
}

func (h *Handler) CancelDice(c *gin.Context) {
	h.roomAction(c, h.services.Dice.Cancel)
}

func (h *Handler) QuitDice(c *gin.Context) {
	h.roomAction(c, h.services.Dice.Quit)
}

func (h *Handler) FoldDice(c *gin.Context) {
	h.choiceAction(c, h.services.Dice.Fold)
}

func (h *Handler) ContinueDice(c *gin.Context) {
	h.choiceAction(c, h.services.Dice.Continue)
}

func (h *Handler) DiceHistory(c *gin.Context) {
	_, roomID, ok := h.actor(c)
	if !ok {
		return
	}
	page, err := parsePositiveIntQuery(c, "page", 1)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	size, err := parsePositiveIntQuery(c, "size", 20)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.services.History.List(c.Request.Context(), roomID, page, size)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, gin.H{
		"items": result.Items,
		"total": result.Total,
		"page":  page,
		"size":  size,
	})
}

func (h *Handler) GetWallet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	wallet, err := h.services.Wallet.GetWallet(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"wallet": wallet})
}

func (h *Handler) BridgeSetWallet(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var body setWalletBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	wallet, err := h.services.Wallet.AdminSetWallet(c.Request.Context(), userID, walletsvc.AdminSetWalletRequest{
		BalanceAvailable: body.BalanceAvailable,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"wallet": wallet})
}

type roomActionFunc func(ctx context.Context, roomID, userID int64) (*dice.Snapshot, error)

func (h *Handler) roomAction(c *gin.Context, fn roomActionFunc) {
	userID, roomID, ok := h.actor(c)
	if !ok {
		return
	}
	snap, err := fn(c.Request.Context(), roomID, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"session": snap})
}

type choiceActionFunc func(ctx context.Context, roomID, actorID, targetID int64) (*dice.Snapshot, error)

// choiceAction answers a choice prompt. The body names the prompt's owner;
// it defaults to the caller.
func (h *Handler) choiceAction(c *gin.Context, fn choiceActionFunc) {
	userID, roomID, ok := h.actor(c)
	if !ok {
		return
	}
	var body choiceBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	target := body.UserID
	if target == 0 {
		target = userID
	}

	snap, err := fn(c.Request.Context(), roomID, userID, target)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"session": snap})
}

// actor resolves the caller and the room, writing the error response
// itself when either is missing.
func (h *Handler) actor(c *gin.Context) (userID, roomID int64, ok bool) {
	userID, ok = getUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return 0, 0, false
	}
	roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
	if err != nil || roomID == 0 {
		response.Error(c, http.StatusBadRequest, "invalid room id")
		return 0, 0, false
	}
	return userID, roomID, true
}

func parsePositiveIntQuery(c *gin.Context, key string, defaultVal int) (int, error) {
	val := c.Query(key)
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

func getUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
