package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Secret          string        `valid:"required"`
	VerificationTTL time.Duration `valid:"required"`
	SessionTTL      time.Duration `valid:"required"`
}

func New(
	users core.UserStore,
	verifications core.VerificationStore,
	sessions core.SessionStore,
	codes core.CodeGenerator,
	sender core.CodeSender,
	logger *slog.Logger,
	cfg Config,
) core.AuthService {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &service{
		users:         users,
		verifications: verifications,
		sessions:      sessions,
		codes:         codes,
		sender:        sender,
		logger:        logger.With("service", "auth"),
		cfg:           cfg,
		now:           time.Now,
	}
}

type service struct {
	users         core.UserStore
	verifications core.VerificationStore
	sessions      core.SessionStore
	codes         core.CodeGenerator
	sender        core.CodeSender
	logger        *slog.Logger
	cfg           Config
	now           func() time.Time
}

// compared against for unknown logins so both failures cost a bcrypt round
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("card-transfer"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	return hash
})

func hashCode(token, code string) string {
	h := sha256.Sum256([]byte(token + ":" + code))
	return hex.EncodeToString(h[:])
}

func (s *service) Login(ctx context.Context, login, password string) (*core.PendingVerification, error) {
	if login == "" || password == "" {
		return nil, core.ErrInvalidCredentials
	}

	logger := s.logger.With("login", login)

	user, err := s.users.Find(ctx, login)
	if err != nil {
		if !store.IsErrNotFound(err) {
			logger.Error("users.Find", "err", err)
			return nil, err
		}

		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, core.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Debug("password mismatch")
		return nil, core.ErrInvalidCredentials
	}

	code, err := s.codes.Generate(ctx, login)
	if err != nil {
		logger.Error("codes.Generate", "err", err)
		return nil, err
	}

	now := s.now()
	pending := &core.PendingVerification{
		Token:     uuid.NewString(),
		Login:     user.Login,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.VerificationTTL),
	}
	pending.CodeHash = hashCode(pending.Token, code)

	if err := s.verifications.Create(ctx, pending); err != nil {
		logger.Error("verifications.Create", "err", err)
		return nil, err
	}

	if err := s.sender.Send(ctx, login, code); err != nil {
		logger.Error("sender.Send", "err", err)
		return nil, err
	}

	return pending, nil
}

// Verify consumes the pending verification whether or not the code matches,
// a wrong code therefore requires a new login.
func (s *service) Verify(ctx context.Context, token, code string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrExpiredVerification
	}

	pending, err := s.verifications.Consume(ctx, token)
	if err != nil {
		s.logger.Error("verifications.Consume", "err", err)
		return nil, err
	}

	now := s.now()
	if pending == nil || !now.Before(pending.ExpiresAt) {
		return nil, core.ErrExpiredVerification
	}

	logger := s.logger.With("login", pending.Login)

	if subtle.ConstantTimeCompare([]byte(hashCode(token, code)), []byte(pending.CodeHash)) != 1 {
		logger.Debug("code mismatch")
		return nil, core.ErrInvalidCode
	}

	session := &core.Session{
		ID:        uuid.NewString(),
		Login:     pending.Login,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}

	if session.Token, err = s.sign(session); err != nil {
		logger.Error("sign", "err", err)
		return nil, err
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		logger.Error("sessions.Create", "err", err)
		return nil, err
	}

	logger.Info("session created", "session", session.ID)
	return session, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*core.Session, error) {
	id, err := s.parse(token)
	if err != nil {
		return nil, core.ErrUnauthenticated
	}

	session, err := s.sessions.Find(ctx, id)
	if err != nil {
		s.logger.Error("sessions.Find", "err", err)
		return nil, err
	}

	if session == nil || !s.now().Before(session.ExpiresAt) {
		return nil, core.ErrUnauthenticated
	}

	return session, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	session, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		s.logger.Error("sessions.Delete", "err", err)
		return err
	}

	s.logger.Info("session closed", "login", session.Login, "session", session.ID)
	return nil
}
