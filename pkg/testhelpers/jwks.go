package testhelpers

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"

	"github.com/golang-jwt/jwt/v5"
)

// KeySet is an RSA signing key published through an httptest JWKS endpoint.
type KeySet struct {
	KID    string
	key    *rsa.PrivateKey
	server *httptest.Server
}

// NewKeySet generates a key and starts serving its JWKS. Call Close when done.
func NewKeySet(kid string) (*KeySet, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	ks := &KeySet{KID: kid, key: key}
	ks.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"keys": []map[string]string{ks.jwk()}})
	}))
	return ks, nil
}

// URL is the JWKS endpoint.
func (ks *KeySet) URL() string {
	return ks.server.URL
}

// Close stops the JWKS endpoint.
func (ks *KeySet) Close() {
	ks.server.Close()
}

// SignRS256 signs claims with the published key.
func (ks *KeySet) SignRS256(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = ks.KID
	return token.SignedString(ks.key)
}

func (ks *KeySet) jwk() map[string]string {
	pub := ks.key.PublicKey
	return map[string]string{
		"kty": "RSA",
		"alg": "RS256",
		"use": "sig",
		"kid": ks.KID,
		"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}
