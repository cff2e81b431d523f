package crypto

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
)

// RecoverAddress recovers the checksummed wallet address that produced an
// EIP-191 personal_sign signature over the given message.
func RecoverAddress(message, signatureHex string) (string, error) {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return "", ErrInvalidSignature
	}
	if len(sig) != 65 {
		return "", ErrInvalidSignature
	}

	// wallets encode the recovery id as 27/28, go-ethereum wants 0/1
	if sig[64] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return "", ErrInvalidSignature
	}

	hash := accounts.TextHash([]byte(message))
	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return "", ErrInvalidSignature
	}

	return crypto.PubkeyToAddress(*pubKey).Hex(), nil
}

// VerifySignature checks that the signature over message was produced by
// the expected wallet address. Address comparison is case-insensitive.
func VerifySignature(message, signatureHex, expectedAddress string) (bool, error) {
	recovered, err := RecoverAddress(message, signatureHex)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(recovered, expectedAddress), nil
}
