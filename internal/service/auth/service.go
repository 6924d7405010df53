package auth

import (
	"context"
	"strings"
	"time"

	"dice-service/internal/model"
	"dice-service/internal/service/wallet"
	pkgAuth "dice-service/pkg/auth"
	appErr "dice-service/pkg/errors"
	"dice-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service authenticates the chat bridge and mints user tokens for it.
type Service struct {
	keyHash []byte
	wallets *wallet.Service
}

type LoginResult struct {
	Token    string        `json:"token"`
	ExpireAt time.Time     `json:"expireAt"`
	Wallet   *model.Wallet `json:"wallet"`
}

func NewService(keyHash string, wallets *wallet.Service) *Service {
	return &Service{keyHash: []byte(strings.TrimSpace(keyHash)), wallets: wallets}
}

// VerifyBridgeKey checks key against the configured bcrypt hash.
func (s *Service) VerifyBridgeKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" || len(s.keyHash) == 0 {
		return appErr.ErrInvalidBridgeKey
	}
	if err := bcrypt.CompareHashAndPassword(s.keyHash, []byte(key)); err != nil {
		return appErr.ErrInvalidBridgeKey
	}
	return nil
}

// IssueToken mints a token for userID on behalf of the bridge. The
// wallet is provisioned on first login.
func (s *Service) IssueToken(ctx context.Context, bridgeKey string, userID int64) (*LoginResult, error) {
	if err := s.VerifyBridgeKey(bridgeKey); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, appErr.ErrUnauthorized
	}

	w, err := s.wallets.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, expireAt, err := pkgAuth.GenerateToken(userID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("user token issued",
		zap.Int64("userID", userID),
		zap.Time("expireAt", expireAt),
	)
	return &LoginResult{Token: token, ExpireAt: expireAt, Wallet: w}, nil
}

// HashBridgeKey returns the bcrypt hash to configure for key.
func HashBridgeKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
