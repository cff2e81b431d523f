package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrNonceNotFound is returned when no nonce is stored for a wallet
var ErrNonceNotFound = errors.New("nonce not found")

// NonceStore issues single-use authentication challenges keyed by wallet
// address. Nonces expire after the configured TTL and are consumed
// atomically so a signature can never be replayed.
type NonceStore struct {
	ttl time.Duration
}

var (
	setNonceValue  = Set
	getNonceValue  = Get
	evalNonceCheck = Eval
)

// compare-and-delete: the nonce is removed only if it still matches the
// value the client signed
const consumeScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// NewNonceStore creates a nonce store with the given nonce lifetime
func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{ttl: ttl}
}

func nonceKey(walletAddress string) string {
	return "nonce:" + strings.ToLower(walletAddress)
}

// Issue generates a fresh challenge message for the wallet and stores it
// under the wallet's key, replacing any previous nonce.
func (s *NonceStore) Issue(ctx context.Context, walletAddress string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	message := fmt.Sprintf("Sign this message to authenticate with Liberty Finance: %d-%s",
		time.Now().UnixMilli(), hex.EncodeToString(buf))

	if err := setNonceValue(ctx, nonceKey(walletAddress), message, s.ttl); err != nil {
		return "", err
	}
	return message, nil
}

// Get returns the currently stored challenge for the wallet
func (s *NonceStore) Get(ctx context.Context, walletAddress string) (string, error) {
	message, err := getNonceValue(ctx, nonceKey(walletAddress))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrNonceNotFound
		}
		return "", err
	}
	return message, nil
}

// Consume deletes the stored challenge if it matches the given message.
// Returns true when the nonce was present, matched, and is now gone.
func (s *NonceStore) Consume(ctx context.Context, walletAddress, message string) (bool, error) {
	res, err := evalNonceCheck(ctx, consumeScript, []string{nonceKey(walletAddress)}, message)
	if err != nil {
		return false, err
	}

	deleted, ok := res.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected script result type %T", res)
	}
	return deleted == 1, nil
}
