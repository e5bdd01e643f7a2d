package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/insuvit/storefront/internal/config"
	"github.com/insuvit/storefront/internal/errors"
	"github.com/insuvit/storefront/internal/metrics"
	"github.com/insuvit/storefront/internal/models"
	"github.com/insuvit/storefront/internal/store"
	"github.com/insuvit/storefront/internal/utils"
	"github.com/insuvit/storefront/pkg/sendgrid"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SessionService manages the Anonymous/Authenticated session state per
// owner scope. Authentication is a deliberate mock: no backend verifies
// credentials, any syntactically valid email with a non-empty password
// logs in, and the user record is fabricated locally.
type SessionService struct {
	store       store.Store
	email       sendgrid.EmailService
	jwtKey      []byte
	tokenTTL    time.Duration
	sessionTTL  time.Duration
	authLatency time.Duration
}

func NewSessionService(st store.Store, email sendgrid.EmailService, cfg *config.Config) *SessionService {
	return &SessionService{
		store:       st,
		email:       email,
		jwtKey:      []byte(cfg.Security.JWTKey),
		tokenTTL:    cfg.Security.TokenTTL,
		sessionTTL:  cfg.Security.SessionTTL,
		authLatency: cfg.Simulation.AuthDelay(),
	}
}

// Login transitions the scope from Anonymous to Authenticated. Validation
// covers email shape and password presence only; on success a mock user
// record is fabricated and persisted.
func (s *SessionService) Login(ctx context.Context, owner string, req *models.LoginRequest) (*models.LoginResponse, error) {

	if !emailRegex.MatchString(req.Email) {
		return nil, errors.ValidationError("Invalid email or password")
	}

	if req.Password == "" {
		return nil, errors.ValidationError("Invalid email or password")
	}

	simulateLatency(ctx, s.authLatency)

	now := time.Now()
	user := models.User{
		ID:        now.UnixMilli(),
		Email:     req.Email,
		FirstName: "John",
		LastName:  "Doe",
		Phone:     "+62 812-3456-7890",
		Avatar:    models.DefaultAvatar(),
		JoinDate:  now,
		Remember:  req.Remember,
	}

	s.persistSession(ctx, owner, &models.StoredSession{
		User:       user,
		IsLoggedIn: true,
		Timestamp:  now.UnixMilli(),
	})

	metrics.LoginsTotal.WithLabelValues("login").Inc()

	return s.loginResponse(owner, &user)
}

// Register behaves like Login but uses the supplied profile fields. Each
// failing check reports its own validation error and leaves state untouched.
func (s *SessionService) Register(ctx context.Context, owner string, req *models.RegisterRequest) (*models.LoginResponse, error) {

	if !emailRegex.MatchString(req.Email) {
		return nil, errors.ValidationError("Invalid email format")
	}

	if len(req.Password) < 8 {
		return nil, errors.ValidationError("Password must be at least 8 characters")
	}

	if req.Password != req.ConfirmPassword {
		return nil, errors.ValidationError("Password confirmation does not match")
	}

	if !req.AcceptTerms {
		return nil, errors.ValidationError("Terms and conditions must be accepted")
	}

	simulateLatency(ctx, s.authLatency)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	now := time.Now()
	user := models.User{
		ID:        now.UnixMilli(),
		Email:     req.Email,
		FirstName: utils.Sanitize(req.FirstName),
		LastName:  utils.Sanitize(req.LastName),
		Phone:     utils.Sanitize(req.Phone),
		Avatar:    models.DefaultAvatar(),
		JoinDate:  now,
	}

	s.persistSession(ctx, owner, &models.StoredSession{
		User:         user,
		PasswordHash: string(hash),
		IsLoggedIn:   true,
		Timestamp:    now.UnixMilli(),
	})

	metrics.LoginsTotal.WithLabelValues("register").Inc()

	return s.loginResponse(owner, &user)
}

// Logout discards the persisted session. Safe to call in any state.
func (s *SessionService) Logout(ctx context.Context, owner string) error {

	if err := s.store.Delete(ctx, store.SessionKey(owner)); err != nil {
		slog.Error("Failed to delete session",
			slog.String("owner", owner), slog.String("error", err.Error()))
	}

	return nil
}

// Current restores the persisted session, honoring the retention rule: a
// saved session is usable only while remembered or younger than the
// session TTL. Expired sessions are discarded and the scope stays
// Anonymous.
func (s *SessionService) Current(ctx context.Context, owner string) (*models.User, bool) {

	sess := s.activeSession(ctx, owner)
	if sess == nil {
		return nil, false
	}

	return &sess.User, true
}

// UpdateProfile merges non-empty fields into the current user record.
// Empty fields retain their prior value.
func (s *SessionService) UpdateProfile(ctx context.Context, owner string, req *models.UpdateProfileRequest) (*models.User, error) {

	sess := s.activeSession(ctx, owner)
	if sess == nil {
		return nil, errors.UnauthorizedError("Not logged in")
	}

	apply := func(dst *string, v string) {
		if v != "" {
			*dst = utils.Sanitize(v)
		}
	}

	apply(&sess.User.FirstName, req.FirstName)
	apply(&sess.User.LastName, req.LastName)
	apply(&sess.User.Email, req.Email)
	apply(&sess.User.Phone, req.Phone)
	apply(&sess.User.Address, req.Address)
	apply(&sess.User.Birthdate, req.Birthdate)
	apply(&sess.User.Gender, req.Gender)

	sess.Timestamp = time.Now().UnixMilli()
	s.persistSession(ctx, owner, sess)

	user := sess.User

	return &user, nil
}

// AppendOrder records a completed order in the session's history. A no-op
// for anonymous or expired scopes.
func (s *SessionService) AppendOrder(ctx context.Context, owner string, order models.Order) {

	sess := s.activeSession(ctx, owner)
	if sess == nil {
		return
	}

	sess.User.Orders = append(sess.User.Orders, order)
	sess.Timestamp = time.Now().UnixMilli()
	s.persistSession(ctx, owner, sess)
}

// ForgotPassword simulates the reset flow: it validates the address, waits
// out the mock latency, and sends a reset email best-effort.
func (s *SessionService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {

	if !emailRegex.MatchString(req.Email) {
		return errors.ValidationError("Invalid email format")
	}

	simulateLatency(ctx, s.authLatency)

	err := s.email.Send(ctx, &sendgrid.Email{
		To:      req.Email,
		Subject: "Reset your Insuvit password",
		Content: "We received a request to reset your password. Follow the link in this email to choose a new one.",
	})
	if err != nil {
		// The flow reports success regardless; delivery is best-effort.
		slog.Error("Failed to send reset email",
			slog.String("email", req.Email), slog.String("error", err.Error()))
	}

	return nil
}

// PasswordStrength scores a candidate password by its satisfied checks:
// length >= 8, uppercase, lowercase, digit, special character. Advisory
// only; registration enforces nothing beyond the length rule.
func (s *SessionService) PasswordStrength(password string) models.PasswordStrength {

	var hasUpper, hasLower, hasDigit, hasSpecial bool

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	score := 0

	for _, ok := range []bool{len(password) >= 8, hasUpper, hasLower, hasDigit, hasSpecial} {
		if ok {
			score++
		}
	}

	label := "weak"

	switch {
	case score >= 4:
		label = "strong"
	case score >= 2:
		label = "medium"
	}

	return models.PasswordStrength{Score: score, Label: label}
}

func (s *SessionService) loginResponse(owner string, user *models.User) (*models.LoginResponse, error) {

	ttl := s.tokenTTL
	if user.Remember {
		ttl = s.sessionTTL
	}

	claims := &models.Claims{
		OwnerID: owner,
		UserID:  user.ID,
		Email:   user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(ttl.Seconds()),
		User:      user,
	}, nil
}

// activeSession loads the persisted session and enforces the retention
// rule: a saved session is usable only while remembered or younger than
// the session TTL. Expired sessions are deleted, never refreshed, so a
// stale owner id cannot revive them through any mutation path.
func (s *SessionService) activeSession(ctx context.Context, owner string) *models.StoredSession {

	sess := s.loadSession(ctx, owner)
	if sess == nil || !sess.IsLoggedIn {
		return nil
	}

	age := time.Since(time.UnixMilli(sess.Timestamp))

	if !sess.User.Remember && age >= s.sessionTTL {

		slog.Info("Discarding expired session", slog.String("owner", owner))

		if err := s.store.Delete(ctx, store.SessionKey(owner)); err != nil {
			slog.Error("Failed to delete expired session",
				slog.String("owner", owner), slog.String("error", err.Error()))
		}

		return nil
	}

	return sess
}

func (s *SessionService) loadSession(ctx context.Context, owner string) *models.StoredSession {

	var sess models.StoredSession

	found, err := s.store.Load(ctx, store.SessionKey(owner), &sess)
	if err != nil {
		slog.Warn("Failed to load session, treating as anonymous",
			slog.String("owner", owner), slog.String("error", err.Error()))

		return nil
	}

	if !found {
		return nil
	}

	return &sess
}

func (s *SessionService) persistSession(ctx context.Context, owner string, sess *models.StoredSession) {

	if err := s.store.Save(ctx, store.SessionKey(owner), sess); err != nil {
		slog.Error("Failed to persist session",
			slog.String("owner", owner), slog.String("error", err.Error()))
	}
}
