package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed covers structurally broken tokens and tokens missing required claims.
	ErrMalformed = errors.New("malformed token")
	// ErrInvalidSignature is returned when the signature does not verify or the algorithm is not HS256.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrExpired is returned when the signature verifies but the expiry has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalidKey is returned when a codec is built without a usable secret.
	ErrInvalidKey = errors.New("invalid key")
)

// DefaultTTL is the validity window of a session token
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the decoded payload of a session token
type Claims struct {
	Subject   string // account email
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// registered converts to wire claims. NumericDate carries whole seconds, so
// times are truncated here to keep Encode and Decode symmetric.
func (c Claims) registered() gojwt.RegisteredClaims {
	rc := gojwt.RegisteredClaims{
		Subject: c.Subject,
		Issuer:  c.Issuer,
	}
	if !c.IssuedAt.IsZero() {
		rc.IssuedAt = gojwt.NewNumericDate(c.IssuedAt.Truncate(time.Second))
	}
	if !c.ExpiresAt.IsZero() {
		rc.ExpiresAt = gojwt.NewNumericDate(c.ExpiresAt.Truncate(time.Second))
	}
	return rc
}

func claimsFrom(rc *gojwt.RegisteredClaims) *Claims {
	c := &Claims{Subject: rc.Subject, Issuer: rc.Issuer}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time.UTC()
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time.UTC()
	}
	return c
}

// Config holds codec configuration
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Codec mints and verifies HS256 session tokens.
// It holds only read-only state and is safe for concurrent use.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a Codec
type Option func(*Codec)

// WithClock replaces the time source used for issuing and checking expiry
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a codec signing with cfg.Secret
func NewCodec(cfg Config, opts ...Option) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("%w: secret is empty", ErrInvalidKey)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Codec{
		secret: append([]byte(nil), cfg.Secret...),
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewTestCodec creates a codec for tests with a fixed secret
func NewTestCodec(secret string, ttl time.Duration, opts ...Option) *Codec {
	c, err := NewCodec(Config{Secret: []byte(secret), Issuer: "freelancehub-test", TTL: ttl}, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// TTL returns the validity window applied by Mint
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Mint issues a token for subject valid from now until now+TTL.
// The returned claims are exactly what Decode yields for the token.
func (c *Codec) Mint(subject string) (string, Claims, error) {
	now := c.now().UTC().Truncate(time.Second)
	claims := Claims{
		Subject:   subject,
		Issuer:    c.issuer,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	}
	token, err := c.Encode(claims)
	if err != nil {
		return "", Claims{}, err
	}
	return token, claims, nil
}

// Encode signs claims as a compact JWS. Times are stored to the second.
func (c *Codec) Encode(claims Claims) (string, error) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims.registered())
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature first and only then the expiry.
// The returned error wraps exactly one of ErrMalformed, ErrInvalidSignature or ErrExpired.
func (c *Codec) Decode(token string) (*Claims, error) {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(c.issuer))
	}

	var rc gojwt.RegisteredClaims
	_, err := gojwt.ParseWithClaims(token, &rc, func(*gojwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}
	if rc.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformed)
	}
	return claimsFrom(&rc), nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid),
		errors.Is(err, gojwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, gojwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
