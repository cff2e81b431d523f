package usecases_test

import (
	"context"
	"crypto/ecdsa"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"liberty-staking.backend/internal/config"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/usecases"
	"liberty-staking.backend/pkg/jwt"
)

type wallet struct {
	key     *ecdsa.PrivateKey
	address string
}

func newWallet(t *testing.T) *wallet {
	t.Helper()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	return &wallet{key: key, address: ethcrypto.PubkeyToAddress(key.PublicKey).Hex()}
}

func (w *wallet) sign(t *testing.T, message string) string {
	t.Helper()
	sig, err := ethcrypto.Sign(accounts.TextHash([]byte(message)), w.key)
	require.NoError(t, err)
	sig[64] += 27
	return hexutil.Encode(sig)
}

type authFixture struct {
	usecase  *usecases.AuthUsecase
	users    *MockUserRepository
	referral *MockReferralRepository
	activity *MockActivityLogRepository
	nonces   *fakeNonceStore
	jwt      *jwt.JWTService
}

func newAuthFixture(t *testing.T, adminWallets ...string) *authFixture {
	t.Helper()
	users := new(MockUserRepository)
	referral := new(MockReferralRepository)
	activity := new(MockActivityLogRepository)
	nonces := newFakeNonceStore()
	jwtService := jwt.NewJWTService("test-secret", time.Hour)

	loweredAdmins := make([]string, 0, len(adminWallets))
	for _, w := range adminWallets {
		loweredAdmins = append(loweredAdmins, toLower(w))
	}

	return &authFixture{
		usecase: usecases.NewAuthUsecase(users, referral, activity, nonces, jwtService,
			config.AuthConfig{NonceTTL: 5 * time.Minute, AdminWallets: loweredAdmins},
			"https://liberty.example"),
		users:    users,
		referral: referral,
		activity: activity,
		nonces:   nonces,
		jwt:      jwtService,
	}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

func TestAuthUsecase_IssueNonce_InvalidWallet(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.usecase.IssueNonce(context.Background(), "")
	require.Error(t, err)

	_, err = f.usecase.IssueNonce(context.Background(), "not-a-wallet")
	require.Error(t, err)
}

func TestAuthUsecase_Verify_ExistingUser(t *testing.T) {
	f := newAuthFixture(t)
	w := newWallet(t)
	ctx := context.Background()

	message, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)

	user := &entities.User{WalletAddress: toLower(w.address), ProfileCompleted: true}
	f.users.On("GetByWallet", mock.Anything, w.address).Return(user, nil)
	f.users.On("UpdateLastLogin", mock.Anything, user.ID, mock.Anything).Return(nil)

	result, err := f.usecase.Verify(ctx, &entities.VerifyInput{
		WalletAddress: w.address,
		Signature:     w.sign(t, message),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.False(t, result.IsNewUser)
	require.True(t, result.ProfileCompleted)

	claims, err := f.jwt.Validate(result.Token)
	require.NoError(t, err)
	require.Equal(t, toLower(w.address), claims.WalletAddress)
	require.False(t, claims.IsAdmin)
}

func TestAuthUsecase_Verify_AdminClaim(t *testing.T) {
	w := newWallet(t)
	f := newAuthFixture(t, w.address)
	ctx := context.Background()

	message, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)

	user := &entities.User{WalletAddress: toLower(w.address)}
	f.users.On("GetByWallet", mock.Anything, w.address).Return(user, nil)
	f.users.On("UpdateLastLogin", mock.Anything, user.ID, mock.Anything).Return(nil)

	result, err := f.usecase.Verify(ctx, &entities.VerifyInput{
		WalletAddress: w.address,
		Signature:     w.sign(t, message),
	})
	require.NoError(t, err)

	claims, err := f.jwt.Validate(result.Token)
	require.NoError(t, err)
	require.True(t, claims.IsAdmin)
}

func TestAuthUsecase_Verify_UnknownWalletIsNewUser(t *testing.T) {
	f := newAuthFixture(t)
	w := newWallet(t)
	ctx := context.Background()

	message, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)

	f.users.On("GetByWallet", mock.Anything, w.address).Return(nil, domainerrors.ErrNotFound)

	result, err := f.usecase.Verify(ctx, &entities.VerifyInput{
		WalletAddress: w.address,
		Signature:     w.sign(t, message),
	})
	require.NoError(t, err)
	require.True(t, result.IsNewUser)
	require.Empty(t, result.Token)
}

func TestAuthUsecase_Verify_Replay(t *testing.T) {
	f := newAuthFixture(t)
	w := newWallet(t)
	ctx := context.Background()

	message, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)
	signature := w.sign(t, message)

	user := &entities.User{WalletAddress: toLower(w.address)}
	f.users.On("GetByWallet", mock.Anything, w.address).Return(user, nil)
	f.users.On("UpdateLastLogin", mock.Anything, user.ID, mock.Anything).Return(nil)

	_, err = f.usecase.Verify(ctx, &entities.VerifyInput{WalletAddress: w.address, Signature: signature})
	require.NoError(t, err)

	// the nonce was burned; replaying the same signature must fail
	_, err = f.usecase.Verify(ctx, &entities.VerifyInput{WalletAddress: w.address, Signature: signature})
	require.Error(t, err)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 401, appErr.Status)
}

func TestAuthUsecase_Verify_ReissueInvalidatesOldNonce(t *testing.T) {
	f := newAuthFixture(t)
	w := newWallet(t)
	ctx := context.Background()

	first, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)
	signature := w.sign(t, first)

	_, err = f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)

	// signature over the replaced nonce no longer verifies
	_, err = f.usecase.Verify(ctx, &entities.VerifyInput{WalletAddress: w.address, Signature: signature})
	require.Error(t, err)
}

func TestAuthUsecase_Verify_WrongSigner(t *testing.T) {
	f := newAuthFixture(t)
	w := newWallet(t)
	attacker := newWallet(t)
	ctx := context.Background()

	message, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)

	_, err = f.usecase.Verify(ctx, &entities.VerifyInput{
		WalletAddress: w.address,
		Signature:     attacker.sign(t, message),
	})
	require.Error(t, err)

	// a failed attempt must not burn the nonce
	user := &entities.User{WalletAddress: toLower(w.address)}
	f.users.On("GetByWallet", mock.Anything, w.address).Return(user, nil)
	f.users.On("UpdateLastLogin", mock.Anything, user.ID, mock.Anything).Return(nil)

	_, err = f.usecase.Verify(ctx, &entities.VerifyInput{
		WalletAddress: w.address,
		Signature:     w.sign(t, message),
	})
	require.NoError(t, err)
}

func TestAuthUsecase_Signup(t *testing.T) {
	f := newAuthFixture(t)
	w := newWallet(t)
	ctx := context.Background()

	message, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)

	f.users.On("GetByWallet", mock.Anything, w.address).Return(nil, domainerrors.ErrNotFound)
	f.users.On("GetByEmail", mock.Anything, "john@example.com").Return(nil, domainerrors.ErrNotFound)
	f.users.On("GetByReferralCode", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.users.On("CreateReferralLink", mock.Anything, mock.Anything).Return(nil)
	f.referral.On("UpsertTeamStats", mock.Anything, mock.Anything).Return(nil)
	f.activity.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.usecase.Signup(ctx, &entities.SignupInput{
		WalletAddress: w.address,
		Signature:     w.sign(t, message),
		FullName:      "John Doe",
		Email:         "john@example.com",
	})
	require.NoError(t, err)
	require.True(t, result.IsNewUser)
	require.NotEmpty(t, result.Token)
	require.Equal(t, toLower(w.address), result.User.WalletAddress)
	require.Contains(t, result.User.CustomReferralCode, "john-doe-")

	f.users.AssertCalled(t, "CreateReferralLink", mock.Anything, mock.MatchedBy(func(link *entities.ReferralLink) bool {
		return link.ReferralCode == result.User.CustomReferralCode
	}))
}

func TestAuthUsecase_Signup_WithReferrer(t *testing.T) {
	f := newAuthFixture(t)
	w := newWallet(t)
	ctx := context.Background()

	message, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)

	referrer := &entities.User{WalletAddress: "0xreferrer", CustomReferralCode: "ref-2026"}
	f.users.On("GetByWallet", mock.Anything, w.address).Return(nil, domainerrors.ErrNotFound)
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	f.users.On("GetByReferralCode", mock.Anything, "ref-2026").Return(referrer, nil)
	f.users.On("GetByReferralCode", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.users.On("CreateReferralLink", mock.Anything, mock.Anything).Return(nil)
	f.referral.On("UpsertTeamStats", mock.Anything, mock.Anything).Return(nil)
	f.activity.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.usecase.Signup(ctx, &entities.SignupInput{
		WalletAddress: w.address,
		Signature:     w.sign(t, message),
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		ReferrerCode:  "ref-2026",
	})
	require.NoError(t, err)
	require.Equal(t, "0xreferrer", result.User.ReferrerWalletAddress.String)
	require.Equal(t, "ref-2026", result.User.ReferrerCode.String)
}

func TestAuthUsecase_Signup_DuplicateWallet(t *testing.T) {
	f := newAuthFixture(t)
	w := newWallet(t)
	ctx := context.Background()

	message, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)

	f.users.On("GetByWallet", mock.Anything, w.address).Return(&entities.User{}, nil)

	_, err = f.usecase.Signup(ctx, &entities.SignupInput{
		WalletAddress: w.address,
		Signature:     w.sign(t, message),
		FullName:      "John",
		Email:         "john@example.com",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 409, appErr.Status)
}

func TestAuthUsecase_Signup_UnknownReferralCode(t *testing.T) {
	f := newAuthFixture(t)
	w := newWallet(t)
	ctx := context.Background()

	message, err := f.usecase.IssueNonce(ctx, w.address)
	require.NoError(t, err)

	f.users.On("GetByWallet", mock.Anything, w.address).Return(nil, domainerrors.ErrNotFound)
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	f.users.On("GetByReferralCode", mock.Anything, "no-such-code").Return(nil, domainerrors.ErrNotFound)

	_, err = f.usecase.Signup(ctx, &entities.SignupInput{
		WalletAddress: w.address,
		Signature:     w.sign(t, message),
		FullName:      "John",
		Email:         "john@example.com",
		ReferrerCode:  "no-such-code",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status)
}
