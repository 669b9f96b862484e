package session

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/types"
)

// LocalIssuer tags credentials minted without the backend (offline
// sign-in). Tokens carrying it never authorize remote cart calls.
const LocalIssuer = "petshop-local"

// Store holds the current session credential. It is the single place the
// rest of the module reads auth state from; mode is re-resolved on every
// cart mutation because the credential can change mid-session (logout,
// 401 from the backend).
type Store struct {
	mu   sync.RWMutex
	cred *types.Credential
	log  *logger.Logger
}

func NewStore(log *logger.Logger) *Store {
	return &Store{log: log.With("component", "SessionStore")}
}

func (s *Store) Set(cred types.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cred
	if c.Issuer == "" {
		c.Issuer = issuerOf(c.Token)
	}
	s.cred = &c
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred != nil {
		s.log.Info("clearing session credential")
	}
	s.cred = nil
}

func (s *Store) Get() (types.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return types.Credential{}, false
	}
	return *s.cred, true
}

// Token returns the raw bearer token, empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return ""
	}
	return s.cred.Token
}

// Resolve derives the session mode from the stored credential: Guest when
// absent, LocalAuth when the token was issued offline or is not a JWT,
// RemoteAuth otherwise. Pure read, no side effects.
func (s *Store) Resolve() types.SessionMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil || s.cred.Token == "" {
		return types.Guest
	}
	issuer := s.cred.Issuer
	if issuer == "" {
		issuer = issuerOf(s.cred.Token)
	}
	if issuer == LocalIssuer || issuer == "" {
		return types.LocalAuth
	}
	return types.RemoteAuth
}

// issuerOf reads the iss claim without verifying the signature. The
// backend verifies tokens on every call; locally the issuer only routes
// cart traffic, so an unverified parse is enough.
func issuerOf(token string) string {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	issuer, err := claims.GetIssuer()
	if err != nil {
		return ""
	}
	return issuer
}
