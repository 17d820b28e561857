package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tyremart/internal/common"
	"tyremart/internal/models"
)

const (
	// AccessTokenTTL is the validity window for access tokens.
	AccessTokenTTL = 15 * time.Minute
	// RefreshTokenTTL is the validity window for refresh tokens.
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
)

// Claims are the identity claims embedded in every session token. Subject
// carries the caller id; DistributorID is set for subusers so scoping never
// needs a second lookup of the owning account.
type Claims struct {
	Role          string  `json:"role"`
	DistributorID *string `json:"distributor_id,omitempty"`
	TokenUse      string  `json:"token_use"`
	jwt.RegisteredClaims
}

// TokenService mints and parses signed session tokens. Tokens are opaque
// bearer strings to callers; only this service and the identity resolver read
// the claims.
type TokenService interface {
	Issue(subjectID uuid.UUID, role string, distributorID *uuid.UUID) (*models.TokenPair, error)
	Parse(tokenString string) (*Claims, error)
	Refresh(refreshToken string) (*models.TokenPair, error)
}

type tokenService struct {
	secret []byte
}

func NewTokenService(secret string) TokenService {
	return &tokenService{secret: []byte(secret)}
}

func (s *tokenService) Issue(subjectID uuid.UUID, role string, distributorID *uuid.UUID) (*models.TokenPair, error) {
	access, err := s.sign(subjectID, role, distributorID, tokenUseAccess, AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(subjectID, role, distributorID, tokenUseRefresh, RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *tokenService) sign(subjectID uuid.UUID, role string, distributorID *uuid.UUID, tokenUse string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:     role,
		TokenUse: tokenUse,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tyremart-auth",
			Subject:   subjectID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	if distributorID != nil {
		id := distributorID.String()
		claims.DistributorID = &id
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates signature, structure, and expiry. Absence of a token is not
// this service's concern; the identity resolver handles the no-credential case.
func (s *tokenService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// Refresh re-issues a token pair from a valid refresh token.
func (s *tokenService) Refresh(refreshToken string) (*models.TokenPair, error) {
	claims, err := s.Parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != tokenUseRefresh {
		return nil, common.ErrInvalidToken
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, common.ErrMalformedClaims
	}

	var distributorID *uuid.UUID
	if claims.DistributorID != nil {
		id, err := uuid.Parse(*claims.DistributorID)
		if err != nil {
			return nil, common.ErrMalformedClaims
		}
		distributorID = &id
	}

	return s.Issue(subjectID, claims.Role, distributorID)
}
