package auth

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/janhq/imagine-api/internal/config"
)

// Validator validates JWTs using JWKS.
type Validator struct {
	cfg   *config.Config
	log   zerolog.Logger
	jwks  *keyfunc.JWKS
	ready atomic.Bool
}

// NewValidator initializes JWKS fetching when auth is enabled.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	v := &Validator{cfg: cfg, log: log.With().Str("component", "auth").Logger()}
	if !cfg.AuthEnabled {
		v.ready.Store(true)
		return v, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			v.log.Error().Err(err).Msg("jwks refresh error")
		},
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}
	v.jwks = jwks
	v.ready.Store(true)
	return v, nil
}

// Ready reports whether keys are loaded.
func (v *Validator) Ready() bool {
	return v == nil || v.ready.Load()
}

// Middleware enforces JWT auth when enabled.
func (v *Validator) Middleware() gin.HandlerFunc {
	if v == nil || !v.cfg.AuthEnabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		opts := []jwt.ParserOption{
			jwt.WithIssuer(v.cfg.AuthIssuer),
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		}
		if v.cfg.AuthAudience != "" {
			opts = append(opts, jwt.WithAudience(v.cfg.AuthAudience))
		}

		token, err := jwt.Parse(tokenString, v.jwks.Keyfunc, opts...)
		if err != nil || !token.Valid {
			v.log.Debug().Err(err).Msg("rejecting token")
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set("auth_token", token)
		c.Next()
	}
}

// Close stops background JWKS refreshes.
func (v *Validator) Close() {
	if v != nil && v.jwks != nil {
		v.jwks.EndBackground()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}
