// Package errors holds the sentinel errors shared by services and handlers.
package errors

import (
	stderrors "errors"
)

// Kind groups errors by how they are surfaced to the caller.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindInsufficientFunds
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error is a classified application error. Sentinels are compared with errors.Is.
type Error struct {
	Kind Kind
	Code string
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Msg: msg}
}

var (
	// Validation
	ErrInvalidBet           = newError(KindValidation, "INVALID_BET", "bet must be a positive integer")
	ErrInvalidPlayerCount   = newError(KindValidation, "INVALID_PLAYER_COUNT", "player count out of range")
	ErrRoomNotAllowed       = newError(KindValidation, "ROOM_NOT_ALLOWED", "dice games are not allowed in this room")
	ErrInvalidWalletPayload = newError(KindValidation, "INVALID_WALLET_PAYLOAD", "invalid wallet payload")
	ErrInvalidAmount        = newError(KindValidation, "INVALID_AMOUNT", "amount must not be negative")

	// State conflicts
	ErrRoomBusy         = newError(KindConflict, "ROOM_BUSY", "a game is already running in this room")
	ErrAlreadyJoined    = newError(KindConflict, "ALREADY_JOINED", "already joined")
	ErrSessionFull      = newError(KindConflict, "SESSION_FULL", "game is full")
	ErrNotJoined        = newError(KindConflict, "NOT_JOINED", "not joined")
	ErrWrongUser        = newError(KindConflict, "WRONG_USER", "this choice belongs to another player")
	ErrAlreadyResponded = newError(KindConflict, "ALREADY_RESPONDED", "already responded")
	ErrNotActive        = newError(KindConflict, "NOT_ACTIVE", "not an active participant")
	ErrInvalidPhase     = newError(KindConflict, "INVALID_PHASE", "action not allowed in current phase")

	// Funds
	ErrInsufficientBalance = newError(KindInsufficientFunds, "INSUFFICIENT_BALANCE", "insufficient balance")

	// Lookups
	ErrSessionNotFound = newError(KindNotFound, "SESSION_NOT_FOUND", "no game in this room")
	ErrWalletNotFound  = newError(KindNotFound, "WALLET_NOT_FOUND", "wallet not found")

	// Auth
	ErrUnauthorized     = newError(KindUnauthorized, "UNAUTHORIZED", "unauthorized")
	ErrInvalidBridgeKey = newError(KindUnauthorized, "INVALID_BRIDGE_KEY", "invalid bridge key")
)

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// CodeOf reports the machine code of err, or "INTERNAL".
func CodeOf(err error) string {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL"
}
