package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/pandodao/card-transfer/core"
)

// FixedCode issues the same code to every login.
type FixedCode string

func (c FixedCode) Generate(_ context.Context, _ string) (string, error) {
	return string(c), nil
}

// RandomCode issues codes of n random decimal digits.
type RandomCode int

func (n RandomCode) Generate(_ context.Context, _ string) (string, error) {
	if n <= 0 || n > 18 {
		return "", fmt.Errorf("invalid code length %d", n)
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", int(n), v), nil
}

type logSender struct {
	logger *slog.Logger
}

// NewLogSender delivers codes to the log, the code itself only at debug level.
func NewLogSender(logger *slog.Logger) core.CodeSender {
	return &logSender{logger: logger.With("sender", "log")}
}

func (s *logSender) Send(ctx context.Context, login, code string) error {
	s.logger.InfoContext(ctx, "verification code issued", "login", login)
	s.logger.DebugContext(ctx, "verification code", "login", login, "code", code)
	return nil
}
