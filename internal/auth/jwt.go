// Package auth mints and validates the HS256 access tokens that carry an
// authenticated principal between the session layer and the inventory core.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/models"
)

// Claims extends the registered JWT claims with the user identity fields
// needed to rebuild a Principal.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string
	Username string
	Role     models.Role
}

// GenerateToken signs an access token for the given principal.
func GenerateToken(p models.Principal, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:   p.UserID,
		Username: p.Username,
		Role:     p.Role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetPrincipalFromToken parses and validates a token string and returns the
// principal encoded in it. Expired or otherwise invalid tokens return
// common.ErrInvalidToken.
func GetPrincipalFromToken(tokenString string, secretKey []byte) (models.Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return models.Principal{}, common.ErrInvalidToken
	}

	if !token.Valid {
		return models.Principal{}, common.ErrInvalidToken
	}

	return models.Principal{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}
