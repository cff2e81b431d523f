package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Wallet and email are lower-cased before
// insert so uniqueness holds regardless of caller casing.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m := userToModel(user)

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByWallet gets a user by wallet address, case-insensitively
func (r *UserRepository) GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", strings.ToLower(walletAddress)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByReferralCode gets a user by their referral code
func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("custom_referral_code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update updates mutable profile fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"full_name":            user.FullName,
		"mobile_number":        user.MobileNumber,
		"address":              user.Address,
		"zip_code":             user.ZipCode,
		"country":              user.Country,
		"is_active":            user.IsActive,
		"email_verified":       user.EmailVerified,
		"mobile_verified":      user.MobileVerified,
		"profile_completed":    user.ProfileCompleted,
		"referrer_set_onchain": user.ReferrerSetOnchain,
		"updated_at":           time.Now(),
	}
	if user.ReferrerSetTxHash.Valid {
		updates["referrer_set_tx_hash"] = user.ReferrerSetTxHash.String
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with an optional search over name, email, and wallet
func (r *UserRepository) List(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR email LIKE ? OR wallet_address LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userModels []models.User
	query = query.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, total, nil
}

// ListDirectReferees lists users whose referrer is the given wallet
func (r *UserRepository) ListDirectReferees(ctx context.Context, walletAddress string, offset, limit int) ([]*entities.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).
		Where("referrer_wallet_address = ?", strings.ToLower(walletAddress))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userModels []models.User
	query = query.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, total, nil
}

// ListRefereeWallets lists all users referred by any of the given wallets
func (r *UserRepository) ListRefereeWallets(ctx context.Context, walletAddresses []string) ([]*entities.User, error) {
	if len(walletAddresses) == 0 {
		return nil, nil
	}
	lowered := make([]string, 0, len(walletAddresses))
	for _, w := range walletAddresses {
		lowered = append(lowered, strings.ToLower(w))
	}

	var userModels []models.User
	if err := r.db.WithContext(ctx).
		Where("referrer_wallet_address IN ?", lowered).
		Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// CountAll counts all users
func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountActive counts active users
func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountCreatedSince counts users registered after the given time
func (r *UserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// CreateReferralLink stores the shareable link minted at signup
func (r *UserRepository) CreateReferralLink(ctx context.Context, link *entities.ReferralLink) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	m := &models.ReferralLink{
		ID:            link.ID,
		UserID:        link.UserID,
		WalletAddress: strings.ToLower(link.WalletAddress),
		ReferralCode:  link.ReferralCode,
		Link:          link.Link,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	link.CreatedAt = m.CreatedAt
	return nil
}

// GetReferralLinkByUserID gets a user's referral link
func (r *UserRepository) GetReferralLinkByUserID(ctx context.Context, userID uuid.UUID) (*entities.ReferralLink, error) {
	var m models.ReferralLink
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.ReferralLink{
		ID:            m.ID,
		UserID:        m.UserID,
		WalletAddress: m.WalletAddress,
		ReferralCode:  m.ReferralCode,
		Link:          m.Link,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func userToModel(u *entities.User) *models.User {
	return &models.User{
		ID:                    u.ID,
		WalletAddress:         strings.ToLower(u.WalletAddress),
		CustomReferralCode:    u.CustomReferralCode,
		ReferrerWalletAddress: lowerPtr(u.ReferrerWalletAddress.Ptr()),
		ReferrerCode:          u.ReferrerCode.Ptr(),
		FullName:              u.FullName,
		Email:                 strings.ToLower(u.Email),
		MobileNumber:          u.MobileNumber,
		Address:               u.Address,
		ZipCode:               u.ZipCode,
		Country:               u.Country,
		IsActive:              u.IsActive,
		EmailVerified:         u.EmailVerified,
		MobileVerified:        u.MobileVerified,
		ProfileCompleted:      u.ProfileCompleted,
		ReferrerSetOnchain:    u.ReferrerSetOnchain,
		ReferrerSetTxHash:     u.ReferrerSetTxHash.Ptr(),
		LastLogin:             u.LastLogin.Ptr(),
	}
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                    m.ID,
		WalletAddress:         m.WalletAddress,
		CustomReferralCode:    m.CustomReferralCode,
		ReferrerWalletAddress: null.StringFromPtr(m.ReferrerWalletAddress),
		ReferrerCode:          null.StringFromPtr(m.ReferrerCode),
		FullName:              m.FullName,
		Email:                 m.Email,
		MobileNumber:          m.MobileNumber,
		Address:               m.Address,
		ZipCode:               m.ZipCode,
		Country:               m.Country,
		IsActive:              m.IsActive,
		EmailVerified:         m.EmailVerified,
		MobileVerified:        m.MobileVerified,
		ProfileCompleted:      m.ProfileCompleted,
		ReferrerSetOnchain:    m.ReferrerSetOnchain,
		ReferrerSetTxHash:     null.StringFromPtr(m.ReferrerSetTxHash),
		LastLogin:             null.TimeFromPtr(m.LastLogin),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func lowerPtr(s *string) *string {
	if s == nil {
		return nil
	}
	lowered := strings.ToLower(*s)
	return &lowered
}
