// internal/form/csrf.go
//
// Trampô: forms subsystem, stateless CSRF tokens.
//
// Context
//   The landing page fetches a token from GET /api/csrf and echoes it in the
//   X-CSRF-Token header of every public POST.  Tokens are stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(secret, nonce+unixMicro) )
//
//   •  nonce: 16 random bytes.
//   •  unixMicro: issue time, 8 bytes, big-endian.
//   •  HMAC: keyed with security.csrf_key.
//
//   Verification checks the signature and that the token is younger than
//   maxAge.  No server-side storage is needed, so any instance can verify.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	tokenBytes = 16 + 8 + sha256.Size // nonce + ts + sig
	maxAge     = 2 * time.Hour
	minKeyLen  = 32
)

var (
	secretMu  sync.RWMutex
	secretKey []byte
)

// SetCSRFKey installs the HMAC key.  Keys shorter than 32 bytes are refused
// and the ephemeral key stays in place.
func SetCSRFKey(key []byte) bool {
	if len(key) < minKeyLen {
		return false
	}
	secretMu.Lock()
	secretKey = append([]byte(nil), key...)
	secretMu.Unlock()
	return true
}

// GenerateToken creates a new CSRF token.  Call once per page load.
func GenerateToken() (string, error) {
	sec := fetchSecret()

	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(time.Now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, sign(sec, nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// VerifyToken returns true if tok passes HMAC and age checks.
func VerifyToken(tok string) bool {
	sec := fetchSecret()

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce, tsBytes, sig := raw[:16], raw[16:24], raw[24:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	if time.Since(issued) > maxAge || time.Until(issued) > time.Minute {
		// Expired, or issued in the future beyond clock skew.
		return false
	}

	return hmac.Equal(sig, sign(sec, nonce, tsBytes))
}

func sign(sec, nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, sec)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}

// fetchSecret returns the installed key, generating an ephemeral one on
// first use when none was configured.
func fetchSecret() []byte {
	secretMu.RLock()
	sec := secretKey
	secretMu.RUnlock()
	if sec != nil {
		return sec
	}

	secretMu.Lock()
	defer secretMu.Unlock()
	if secretKey == nil {
		secretKey = make([]byte, minKeyLen)
		_, _ = rand.Read(secretKey)
		zap.S().Warnw("security.csrf_key not set, using ephemeral key",
			"effect", "tokens die on restart and differ between instances")
	}
	return secretKey
}
