package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"truco-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "truco-server"

// Audience is the intended JWT audience
const Audience = "truco-server/match"

// ErrNoSecret is returned when a token is used before a secret was loaded
var ErrNoSecret = errors.New("jwt secret is not configured")

var secret []byte
var ttl time.Duration

// Seat identifies a player in a match
type Seat struct {
	MatchUUID string
	PlayerID  int64
}

type seatClaims struct {
	Match string `json:"match"`
	jwtgo.RegisteredClaims
}

// LoadKeys loads the signing secret from the configuration
// this method should only be called once.
func LoadKeys() {
	cfg := config.Instance().JWT
	if cfg.Secret == "" {
		logrus.Fatal("missing jwt secret in configuration")
	}

	SetSecret([]byte(cfg.Secret), cfg.TTL)
}

// SetSecret sets the HMAC secret and how long tokens are valid (0 for no expiry)
func SetSecret(s []byte, tokenTTL time.Duration) {
	secret = s
	ttl = tokenTTL
}

// Sign will sign a JWT for the player's seat in the match
func Sign(seat Seat) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := seatClaims{
		Match: seat.MatchUUID,
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience: jwtgo.ClaimStrings{Audience},
			ID:       uuid.New().String(),
			IssuedAt: jwtgo.NewNumericDate(now),
			Issuer:   Issuer,
			Subject:  strconv.FormatInt(seat.PlayerID, 10),
		},
	}

	if ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(ttl))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(secret)
}

// ValidSeat will validate a signed JWT and return the seat it grants
func ValidSeat(signedString string) (Seat, error) {
	if len(secret) == 0 {
		return Seat{}, ErrNoSecret
	}

	token, err := jwtgo.ParseWithClaims(signedString, &seatClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return secret, nil
	})

	if err != nil {
		return Seat{}, err
	}

	if !token.Valid {
		logrus.Warn("token claims were not valid. did not expect to reach this code")
		return Seat{}, errors.New("claims were not valid")
	}

	claims, ok := token.Claims.(*seatClaims)
	if !ok {
		return Seat{}, fmt.Errorf("expected seatClaims, got %T", token.Claims)
	}

	if !containsAudience(claims.Audience, Audience) {
		return Seat{}, errors.New("invalid audience")
	}

	if claims.Issuer != Issuer {
		return Seat{}, errors.New("invalid issuer")
	}

	if claims.Match == "" {
		return Seat{}, errors.New("missing match")
	}

	playerID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Seat{}, err
	}

	return Seat{MatchUUID: claims.Match, PlayerID: playerID}, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
