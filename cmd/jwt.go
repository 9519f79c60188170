package main

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"linkguard/internal/config"
	"linkguard/pkg/logger"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// JWTCommand constructs the 'jwt' subcommand that issues a bearer token for
// the check endpoints. The subject must be the user ID the checks are stored
// under, so it is validated as a UUID; --new-user generates a fresh one.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates a JWT for calling the /v1/checks endpoints",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			subject, _ := cmd.Flags().GetString("subject")
			newUser, _ := cmd.Flags().GetBool("new-user")
			TTL, _ := cmd.Flags().GetDuration("ttl")

			userID, err := jwtSubject(subject, newUser)
			if err != nil {
				logger.Fatal(ctx, "invalid subject", zap.Error(err))
			}

			key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.JWT.PrivateKey))
			if err != nil {
				logger.Fatal(ctx, "could not parse RSA private key", zap.Error(err))
			}

			signed, err := signUserToken(key, userID, TTL, time.Now())
			if err != nil {
				logger.Fatal(ctx, "could not sign JWT", zap.Error(err))
			}

			logger.Info(ctx, "issued token", zap.Stringer("userId", userID), zap.Duration("ttl", TTL))
			fmt.Println(signed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("subject", "", "user ID (UUID) the checks belong to")
	cmd.Flags().Bool("new-user", false, "generate a random user ID instead of --subject")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token TTL (e.g., 30s, 15m, 1h)")
	cmd.MarkFlagsOneRequired("subject", "new-user")
	cmd.MarkFlagsMutuallyExclusive("subject", "new-user")

	return cmd
}

func jwtSubject(subject string, newUser bool) (uuid.UUID, error) {
	if newUser {
		return uuid.New(), nil
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("subject must be a user UUID: %w", err)
	}
	if id == uuid.Nil {
		return uuid.Nil, errors.New("subject must not be the nil UUID")
	}

	return id, nil
}

// signUserToken returns an RS256 token whose subject is userID, valid from now
// until now+ttl.
func signUserToken(key *rsa.PrivateKey, userID uuid.UUID, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}
