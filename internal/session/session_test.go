package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/types"
)

func mintToken(t *testing.T, issuer string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"iss": issuer, "sub": "user-1"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, s *Store)
		want  types.SessionMode
	}{
		{
			name:  "no credential is guest",
			setup: func(t *testing.T, s *Store) {},
			want:  types.Guest,
		},
		{
			name: "offline issuer is local auth",
			setup: func(t *testing.T, s *Store) {
				s.Set(types.Credential{Token: mintToken(t, LocalIssuer)})
			},
			want: types.LocalAuth,
		},
		{
			name: "opaque token is local auth",
			setup: func(t *testing.T, s *Store) {
				s.Set(types.Credential{Token: "not-a-jwt"})
			},
			want: types.LocalAuth,
		},
		{
			name: "backend issuer is remote auth",
			setup: func(t *testing.T, s *Store) {
				s.Set(types.Credential{Token: mintToken(t, "petshop-api")})
			},
			want: types.RemoteAuth,
		},
		{
			name: "explicit issuer wins over token",
			setup: func(t *testing.T, s *Store) {
				s.Set(types.Credential{Token: "opaque", Issuer: "petshop-api"})
			},
			want: types.RemoteAuth,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(logger.NewNop())
			tc.setup(t, s)
			if got := s.Resolve(); got != tc.want {
				t.Fatalf("Resolve()=%s, want %s", got, tc.want)
			}
		})
	}
}

func TestClearReturnsToGuest(t *testing.T) {
	s := NewStore(logger.NewNop())
	s.Set(types.Credential{Token: mintToken(t, "petshop-api")})
	if got := s.Resolve(); got != types.RemoteAuth {
		t.Fatalf("Resolve()=%s before clear, want remote", got)
	}
	s.Clear()
	if got := s.Resolve(); got != types.Guest {
		t.Fatalf("Resolve()=%s after clear, want guest", got)
	}
	if got := s.Token(); got != "" {
		t.Fatalf("Token()=%q after clear, want empty", got)
	}
}

func TestSetFillsIssuerFromToken(t *testing.T) {
	s := NewStore(logger.NewNop())
	s.Set(types.Credential{Token: mintToken(t, "petshop-api")})
	cred, ok := s.Get()
	if !ok {
		t.Fatal("credential missing")
	}
	if cred.Issuer != "petshop-api" {
		t.Fatalf("issuer=%q, want petshop-api", cred.Issuer)
	}
}
