package cognito

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
)

type Config struct {
	Region     string
	UserPoolID string
}

// Verifier validates Cognito ID tokens against the user pool's JWKS.
// An empty UserPoolID leaves the verifier unconfigured, which callers
// treat as "accept without verification" for local development.
type Verifier struct {
	issuer string
	client *http.Client
	log    logger.Logger

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

func NewVerifier(cfg Config, log logger.Logger) *Verifier {
	v := &Verifier{
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
		keys:   make(map[string]*rsa.PublicKey),
	}
	if cfg.UserPoolID != "" {
		v.issuer = fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", cfg.Region, cfg.UserPoolID)
	}
	return v
}

// Configured reports whether a user pool is set up for verification.
func (v *Verifier) Configured() bool {
	return v.issuer != ""
}

// Verify checks the token signature and issuer and maps its claims to a user.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*models.User, error) {
	const op = "cognito.Verify"

	if !v.Configured() {
		return nil, fmt.Errorf("%s: %w", op, types.ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, v.keyFunc(ctx),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		v.log.Warn(wrap.WithAction(ctx, types.ActionExternalServiceFailed),
			"token verification failed", "err", err.Error())
		return nil, fmt.Errorf("%s: %w", op, types.ErrInvalidToken)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, types.ErrInvalidToken)
	}

	user := &models.User{
		Sub:      claimString(claims, "sub"),
		Username: claimString(claims, "cognito:username"),
		Email:    claimString(claims, "email"),
		Name:     claimString(claims, "name"),
	}
	if user.Username == "" {
		user.Username = user.Sub
	}
	if user.Name == "" {
		user.Name = user.Username
	}
	return user, nil
}

func (v *Verifier) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		return v.publicKey(ctx, kid)
	}
}

func (v *Verifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	v.mu.RUnlock()
	if ok {
		return key, nil
	}

	// Unknown kid: the pool may have rotated its keys.
	if err := v.refresh(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

// refresh fetches the pool's JWKS and replaces the cached key set.
func (v *Verifier) refresh(ctx context.Context) error {
	const op = "cognito.refresh"

	url := v.issuer + "/.well-known/jwks.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: jwks endpoint returned %d", op, resp.StatusCode)
	}

	var doc struct {
		Keys []struct {
			Kid string `json:"kid"`
			Kty string `json:"kty"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(k.N, k.E)
		if err != nil {
			v.log.Warn(ctx, "skipping malformed jwks key", "kid", k.Kid, "err", err.Error())
			continue
		}
		keys[k.Kid] = pub
	}

	v.mu.Lock()
	v.keys = keys
	v.mu.Unlock()

	return nil
}

func parseRSAKey(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}

	exp := 0
	for _, b := range eb {
		exp = exp<<8 | int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: exp}, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
