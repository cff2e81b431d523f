package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"liberty-staking.backend/internal/config"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/domain/repositories"
	"liberty-staking.backend/pkg/crypto"
	"liberty-staking.backend/pkg/jwt"
	"liberty-staking.backend/pkg/logger"
)

// NonceStore issues and consumes single-use signing challenges
type NonceStore interface {
	Issue(ctx context.Context, walletAddress string) (string, error)
	Get(ctx context.Context, walletAddress string) (string, error)
	Consume(ctx context.Context, walletAddress, message string) (bool, error)
}

var verifyWalletSignature = crypto.VerifySignature

// AuthUsecase handles wallet-signature authentication and registration
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	referralRepo repositories.ReferralRepository
	activityRepo repositories.ActivityLogRepository
	nonces       NonceStore
	jwtService   *jwt.JWTService
	authCfg      config.AuthConfig
	appBaseURL   string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	referralRepo repositories.ReferralRepository,
	activityRepo repositories.ActivityLogRepository,
	nonces NonceStore,
	jwtService *jwt.JWTService,
	authCfg config.AuthConfig,
	appBaseURL string,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		referralRepo: referralRepo,
		activityRepo: activityRepo,
		nonces:       nonces,
		jwtService:   jwtService,
		authCfg:      authCfg,
		appBaseURL:   appBaseURL,
	}
}

// IssueNonce creates a fresh signing challenge for the wallet
func (u *AuthUsecase) IssueNonce(ctx context.Context, walletAddress string) (string, error) {
	if !isWalletAddress(walletAddress) {
		return "", domainerrors.Unprocessable("VALIDATION_ERROR", "valid wallet address is required")
	}
	message, err := u.nonces.Issue(ctx, walletAddress)
	if err != nil {
		return "", domainerrors.InternalError(err)
	}
	return message, nil
}

// Verify checks a signed challenge and mints a session token. An unknown
// wallet gets IsNewUser with no token; the client completes signup next.
func (u *AuthUsecase) Verify(ctx context.Context, input *entities.VerifyInput) (*entities.AuthResult, error) {
	if err := u.consumeSignedNonce(ctx, input.WalletAddress, input.Signature); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByWallet(ctx, input.WalletAddress)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.AuthResult{IsNewUser: true}, nil
		}
		return nil, domainerrors.InternalError(err)
	}

	token, err := u.jwtService.Generate(user.ID, user.WalletAddress, u.authCfg.IsAdminWallet(user.WalletAddress))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.Warn(ctx, "failed to stamp last login", zap.Error(err))
	}

	return &entities.AuthResult{
		Token:            token,
		User:             user,
		ProfileCompleted: user.ProfileCompleted,
	}, nil
}

// Signup verifies a signed challenge and registers a profile for the
// wallet, minting its referral code and shareable link.
func (u *AuthUsecase) Signup(ctx context.Context, input *entities.SignupInput) (*entities.AuthResult, error) {
	if err := u.consumeSignedNonce(ctx, input.WalletAddress, input.Signature); err != nil {
		return nil, err
	}

	if _, err := u.userRepo.GetByWallet(ctx, input.WalletAddress); err == nil {
		return nil, domainerrors.Conflict("wallet is already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.Conflict("email is already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	user := &entities.User{
		WalletAddress:    strings.ToLower(input.WalletAddress),
		FullName:         input.FullName,
		Email:            strings.ToLower(input.Email),
		MobileNumber:     input.MobileNumber,
		Address:          input.Address,
		ZipCode:          input.ZipCode,
		Country:          input.Country,
		IsActive:         true,
		ProfileCompleted: input.FullName != "" && input.Email != "",
	}

	if input.ReferrerCode != "" {
		referrer, err := u.userRepo.GetByReferralCode(ctx, input.ReferrerCode)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.BadRequest("unknown referral code")
			}
			return nil, domainerrors.InternalError(err)
		}
		if strings.EqualFold(referrer.WalletAddress, input.WalletAddress) {
			return nil, domainerrors.BadRequest("cannot refer yourself")
		}
		user.ReferrerWalletAddress.SetValid(referrer.WalletAddress)
		user.ReferrerCode.SetValid(referrer.CustomReferralCode)
	}

	code, err := u.uniqueReferralCode(ctx, input.FullName)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	user.CustomReferralCode = code

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("wallet or email is already registered")
		}
		return nil, domainerrors.InternalError(err)
	}

	link := &entities.ReferralLink{
		UserID:        user.ID,
		WalletAddress: user.WalletAddress,
		ReferralCode:  code,
		Link:          fmt.Sprintf("%s/signup?ref=%s", u.appBaseURL, code),
	}
	if err := u.userRepo.CreateReferralLink(ctx, link); err != nil {
		logger.Error(ctx, "failed to create referral link", zap.Error(err))
	}

	if err := u.referralRepo.UpsertTeamStats(ctx, &entities.TeamStats{
		UserID:        user.ID,
		WalletAddress: user.WalletAddress,
	}); err != nil {
		logger.Warn(ctx, "failed to seed team stats", zap.Error(err))
	}

	if err := u.activityRepo.Create(ctx, &entities.ActivityLog{
		UserID:        user.ID,
		WalletAddress: user.WalletAddress,
		ActivityType:  entities.ActivitySignup,
	}); err != nil {
		logger.Warn(ctx, "failed to log signup activity", zap.Error(err))
	}

	token, err := u.jwtService.Generate(user.ID, user.WalletAddress, u.authCfg.IsAdminWallet(user.WalletAddress))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "user registered",
		zap.String("wallet", user.WalletAddress),
		zap.String("referral_code", code))

	return &entities.AuthResult{
		Token:            token,
		User:             user,
		IsNewUser:        true,
		ProfileCompleted: user.ProfileCompleted,
	}, nil
}

// consumeSignedNonce validates the signature over the wallet's live nonce
// and burns it so it cannot be replayed
func (u *AuthUsecase) consumeSignedNonce(ctx context.Context, walletAddress, signature string) error {
	message, err := u.nonces.Get(ctx, walletAddress)
	if err != nil {
		return domainerrors.Unauthorized("nonce expired or not issued")
	}

	ok, err := verifyWalletSignature(message, signature, walletAddress)
	if err != nil || !ok {
		return domainerrors.Unauthorized("invalid signature")
	}

	consumed, err := u.nonces.Consume(ctx, walletAddress, message)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if !consumed {
		return domainerrors.Unauthorized("nonce already used")
	}
	return nil
}

func (u *AuthUsecase) uniqueReferralCode(ctx context.Context, fullName string) (string, error) {
	year := time.Now().Year()
	for counter := 0; counter < 100; counter++ {
		code := ReferralCode(fullName, year, counter)
		_, err := u.userRepo.GetByReferralCode(ctx, code)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("referral code space exhausted")
}

func isWalletAddress(s string) bool {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, r := range s[2:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
