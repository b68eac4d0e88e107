// Package auth управляет входом, регистрацией и выходом посетителя.
//
// Сервис обращается к каталогу пользователей и при подтверждённом успехе
// одним действием записывает пользователя в сессию и выставляет флаг
// авторизации. При любой ошибке ни сессия, ни флаг не меняются.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/storefront/internal/events"
	"github.com/magabrotheeeer/storefront/internal/lib/password"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/metrics"
	"github.com/magabrotheeeer/storefront/internal/models"
)

// Directory каталог пользователей.
type Directory interface {
	FindByEmail(ctx context.Context, email string) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
}

// Session состояние посетителя, которое меняет сервис.
type Session interface {
	ID() string
	Commit(user models.User)
	Clear()
}

// Flag сохраняемый флаг авторизации, по которому защищаются маршруты.
type Flag interface {
	Set()
	Clear()
}

// Service реализует сценарии входа, регистрации и выхода.
type Service struct {
	log     *slog.Logger
	dir     Directory
	hasher  password.Hasher
	events  events.Publisher
	metrics *metrics.Metrics

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New создаёт сервис авторизации. nil-зависимости заменяются безопасными значениями.
func New(log *slog.Logger, dir Directory, hasher password.Hasher, pub events.Publisher, m *metrics.Metrics) *Service {
	if hasher == nil {
		hasher = password.Plaintext{}
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		log:      log,
		dir:      dir,
		hasher:   hasher,
		events:   pub,
		metrics:  m,
		inflight: make(map[string]struct{}),
	}
}

// Login ищет в каталоге запись с точным совпадением email и пароля.
//
// Ошибка каталога даёт ErrLoginFailed, отсутствие подходящей записи даёт ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, sess Session, flag Flag, email, pwd string) error {
	const op = "services.auth.Login"
	log := s.log.With(slog.String("op", op), slog.String("visitor_id", sess.ID()))

	if !s.acquire(sess.ID()) {
		s.metrics.AuthAttempt("login", metrics.OutcomeInProgress)
		return fmt.Errorf("%s: %w", op, ErrAuthInProgress)
	}
	defer s.release(sess.ID())

	users, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		log.Error("directory lookup failed", sl.Err(err))
		s.metrics.AuthAttempt("login", metrics.OutcomeFailed)
		return fmt.Errorf("%s: %w: %w", op, ErrLoginFailed, err)
	}

	for _, u := range users {
		if u.Email == email && s.hasher.Matches(u.Password, pwd) {
			s.commit(sess, flag, u)
			log.Info("user logged in")
			s.metrics.AuthAttempt("login", metrics.OutcomeSuccess)
			s.events.Publish(ctx, events.Event{Type: events.TypeUserLoggedIn, Email: u.Email, VisitorID: sess.ID()})
			return nil
		}
	}

	log.Info("invalid credentials")
	s.metrics.AuthAttempt("login", metrics.OutcomeInvalidCredentials)
	return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
}

// Register создаёт запись в каталоге, если email ещё не занят, и авторизует посетителя.
//
// Совпадение паролей и формат email проверяются до вызова сервиса.
func (s *Service) Register(ctx context.Context, sess Session, flag Flag, email, pwd string) error {
	const op = "services.auth.Register"
	log := s.log.With(slog.String("op", op), slog.String("visitor_id", sess.ID()))

	if !s.acquire(sess.ID()) {
		s.metrics.AuthAttempt("register", metrics.OutcomeInProgress)
		return fmt.Errorf("%s: %w", op, ErrAuthInProgress)
	}
	defer s.release(sess.ID())

	existing, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		log.Error("directory lookup failed", sl.Err(err))
		s.metrics.AuthAttempt("register", metrics.OutcomeFailed)
		return fmt.Errorf("%s: %w: %w", op, ErrRegistrationFailed, err)
	}
	if len(existing) > 0 {
		log.Info("email already registered")
		s.metrics.AuthAttempt("register", metrics.OutcomeUserExists)
		return fmt.Errorf("%s: %w", op, ErrUserExists)
	}

	stored, err := s.hasher.Hash(pwd)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		s.metrics.AuthAttempt("register", metrics.OutcomeFailed)
		return fmt.Errorf("%s: %w: %w", op, ErrRegistrationFailed, err)
	}

	user := models.User{Email: email, Password: stored}
	if _, err := s.dir.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user", sl.Err(err))
		s.metrics.AuthAttempt("register", metrics.OutcomeFailed)
		return fmt.Errorf("%s: %w: %w", op, ErrRegistrationFailed, err)
	}

	s.commit(sess, flag, user)
	log.Info("user registered")
	s.metrics.AuthAttempt("register", metrics.OutcomeSuccess)
	s.events.Publish(ctx, events.Event{Type: events.TypeUserRegistered, Email: email, VisitorID: sess.ID()})
	return nil
}

// Logout сбрасывает пользователя в сессии и удаляет флаг авторизации.
func (s *Service) Logout(ctx context.Context, sess Session, flag Flag) {
	const op = "services.auth.Logout"

	sess.Clear()
	flag.Clear()

	s.log.Info("user logged out", slog.String("op", op), slog.String("visitor_id", sess.ID()))
	s.metrics.AuthAttempt("logout", metrics.OutcomeSuccess)
	s.events.Publish(ctx, events.Event{Type: events.TypeUserLoggedOut, VisitorID: sess.ID()})
}

func (s *Service) commit(sess Session, flag Flag, u models.User) {
	sess.Commit(u.Public())
	flag.Set()
}

func (s *Service) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[id]; busy {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *Service) release(id string) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}
