package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/ctxutil"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

const RoleAdmin = "admin"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrForbidden    = errors.New("admin role required")
)

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService verifies admin bearer tokens issued by the CMS login flow.
type AuthService interface {
	Verify(tokenString string) (*ctxutil.RequestData, error)
	// IsAuthorized returns nil only for a valid token carrying the admin role.
	IsAuthorized(tokenString string) (*ctxutil.RequestData, error)
	IssueToken(subject, role string, ttl time.Duration) (string, error)
}

type authService struct {
	log       *logger.Logger
	secretKey []byte
	leeway    time.Duration
}

func NewAuthService(baseLog *logger.Logger, jwtSecretKey string) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		log:       serviceLog,
		secretKey: []byte(jwtSecretKey),
		leeway:    30 * time.Second,
	}
}

func (as *authService) Verify(tokenString string) (*ctxutil.RequestData, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(as.leeway),
		jwt.WithExpirationRequired(),
	)
	parsed, err := parser.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return as.secretKey, nil
	})
	if err != nil {
		as.log.Debug("Token rejected", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &ctxutil.RequestData{Subject: claims.Subject, Role: claims.Role}, nil
}

func (as *authService) IsAuthorized(tokenString string) (*ctxutil.RequestData, error) {
	rd, err := as.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if rd.Role != RoleAdmin {
		return rd, ErrForbidden
	}
	return rd, nil
}

// IssueToken is used by tests and the local admin bootstrap.
func (as *authService) IssueToken(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.secretKey)
}
