package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"barangayconnect/api/internal/config"
	"barangayconnect/api/internal/federation"
	"barangayconnect/api/internal/ids"
	"barangayconnect/api/internal/models"
	"barangayconnect/api/internal/repository"
	"barangayconnect/api/internal/security"
	"barangayconnect/api/internal/timeutil"
)

// Authentication failure taxonomy. All are final and synchronous; callers
// re-authenticate, nothing here is retried or silently renewed.
var (
	ErrUnauthenticated       = errors.New("not authenticated")
	ErrSessionExpired        = errors.New("session expired")
	ErrInvalidToken          = errors.New("invalid token")
	ErrIdentityNotFound      = errors.New("user not found")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("incorrect email or password")
	ErrInvalidExchangeHandle = errors.New("invalid session_id")
)

// Exchanger is the identity-provider boundary. Implemented by
// federation.Client; faked in tests.
type Exchanger interface {
	Exchange(ctx context.Context, oneTimeHandle string) (federation.Identity, error)
}

// AuthService resolves inbound credentials to identities and establishes new
// sessions. A credential is either a database-tracked session handle or a
// signed stateless token; which one wins is decided by the session store, and
// there are no other credential sources.
type AuthService struct {
	users    repository.UserStore
	sessions repository.SessionStore
	exchange Exchanger
	cfg      *config.AppConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users repository.UserStore,
	sessions repository.SessionStore,
	exchange Exchanger,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		exchange: exchange,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Resolve maps one credential to an identity.
//
// A credential taken from the session cookie is first matched against the
// session store; on a live row the row decides (expiry checked against a
// normalized UTC instant, then the owning user is loaded). On a store miss
// the same raw string is reinterpreted as a stateless token. A credential
// taken from the Authorization header skips the store and goes straight to
// signature verification. Database state always wins when both readings are
// structurally plausible.
func (s *AuthService) Resolve(ctx context.Context, credential string, fromSessionCarrier bool) (models.User, error) {
	if credential == "" {
		return models.User{}, ErrUnauthenticated
	}

	if fromSessionCarrier {
		session, err := s.sessions.FindByHandle(ctx, credential)
		switch {
		case err == nil:
			if timeutil.Expired(session.ExpiresAt, s.now()) {
				return models.User{}, ErrSessionExpired
			}
			user, err := s.users.FindByID(ctx, session.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return models.User{}, ErrIdentityNotFound
				}
				return models.User{}, err
			}
			return user, nil
		case errors.Is(err, repository.ErrSessionNotFound):
			// fall through: same string, stateless interpretation
		default:
			return models.User{}, err
		}
	}

	claims, err := security.ParseAccessToken(credential, s.cfg.Security.JWTSecret)
	if err != nil {
		return models.User{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return models.User{}, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrIdentityNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	UnitNumber *string
	Phone      *string
	Picture    *string
}

type AuthResult struct {
	User models.User
	// AccessToken is the stateless credential. Empty when the flow issues
	// only a session cookie (federated login).
	AccessToken string
	// SessionHandle is set when the flow created a session row; the handler
	// delivers it as the session cookie.
	SessionHandle string
}

// Register creates a local identity and issues a stateless token. It does
// not create a session row: only login and federated login set the cookie.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := s.now().UTC()
	user := models.User{
		UserID:       ids.NewPrefixed("user"),
		Email:        email,
		Name:         input.Name,
		Role:         models.UserRoleResident,
		UnitNumber:   input.UnitNumber,
		Phone:        input.Phone,
		Picture:      input.Picture,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return AuthResult{}, err
	}

	token, err := security.IssueAccessToken(s.cfg.Security.JWTSecret, user.UserID, 0, s.cfg.Security.TokenTTL)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.Info().Str("user_id", user.UserID).Msg("user registered")
	return AuthResult{User: stripHash(user), AccessToken: token}, nil
}

// Login verifies the password and issues both credentials: a stateless token
// for the response body and a fresh session row for the cookie. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := security.IssueAccessToken(s.cfg.Security.JWTSecret, user.UserID, 0, s.cfg.Security.TokenTTL)
	if err != nil {
		return AuthResult{}, err
	}

	handle, err := security.NewSessionHandle()
	if err != nil {
		return AuthResult{}, err
	}
	if err := s.insertSession(ctx, user.UserID, handle); err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: stripHash(user), AccessToken: token, SessionHandle: handle}, nil
}

// FederatedLogin exchanges a one-time handle with the identity provider,
// creating the local identity on first login and refreshing name/picture on
// later ones. The session row stores the provider-issued handle verbatim.
func (s *AuthService) FederatedLogin(ctx context.Context, oneTimeHandle string) (AuthResult, error) {
	identity, err := s.exchange.Exchange(ctx, oneTimeHandle)
	if err != nil {
		s.log.Warn().Err(err).Msg("identity exchange failed")
		return AuthResult{}, ErrInvalidExchangeHandle
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(identity.Email))
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		now := s.now().UTC()
		user = models.User{
			UserID:    ids.NewPrefixed("user"),
			Email:     normalizeEmail(identity.Email),
			Name:      identity.Name,
			Role:      models.UserRoleResident,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if identity.Picture != "" {
			user.Picture = &identity.Picture
		}
		if err := s.users.Insert(ctx, user); err != nil {
			return AuthResult{}, err
		}
	case err != nil:
		return AuthResult{}, err
	default:
		// Idempotent profile refresh; role and unit are never touched here.
		fields := bson.M{"name": identity.Name}
		if identity.Picture != "" {
			fields["picture"] = identity.Picture
		}
		if err := s.users.UpdateFields(ctx, user.UserID, fields); err != nil {
			return AuthResult{}, err
		}
		user.Name = identity.Name
		if identity.Picture != "" {
			user.Picture = &identity.Picture
		}
	}

	if err := s.insertSession(ctx, user.UserID, identity.SessionHandle); err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: stripHash(user), SessionHandle: identity.SessionHandle}, nil
}

// Logout revokes the session row for a handle. Deleting a handle that no
// longer exists is not an error.
func (s *AuthService) Logout(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	_, err := s.sessions.DeleteByHandle(ctx, handle)
	return err
}

func (s *AuthService) insertSession(ctx context.Context, userID, handle string) error {
	now := s.now().UTC()
	return s.sessions.Insert(ctx, models.Session{
		SessionToken: handle,
		UserID:       userID,
		ExpiresAt:    timeutil.FormatStamp(now.Add(s.cfg.Security.SessionTTL)),
		CreatedAt:    timeutil.FormatStamp(now),
	})
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func stripHash(user models.User) models.User {
	user.PasswordHash = ""
	return user
}
