// Package jwt mints and verifies the API's session tokens.
//
// Tokens are compact JWS values signed with HMAC-SHA256 over a single
// process-wide secret. The subject is the account email and every token
// carries an expiry; there is no revocation list, so a token stays valid
// until it expires.
//
// # Usage
//
//	codec, err := jwt.NewCodec(jwt.Config{
//	    Secret: []byte(cfg.JWT.Secret),
//	    Issuer: "freelancehub",
//	    TTL:    7 * 24 * time.Hour,
//	})
//
//	token, claims, err := codec.Mint("dev@example.com")
//
// # Failure Kinds
//
// Decode verifies the signature before looking at any claim, and reports
// one of three errors:
//
//   - ErrMalformed: not three segments, undecodable, or missing exp/sub
//   - ErrInvalidSignature: signature mismatch or an algorithm other than HS256
//   - ErrExpired: signature valid but the expiry has passed
package jwt
