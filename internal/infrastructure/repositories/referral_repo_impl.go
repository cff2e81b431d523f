package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/infrastructure/models"
)

// ReferralRepository implements referral earnings and team stats storage
type ReferralRepository struct {
	db *gorm.DB
}

// NewReferralRepository creates a new referral repository
func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// CreateEarning inserts a referral commission row
func (r *ReferralRepository) CreateEarning(ctx context.Context, earning *entities.ReferralEarning) error {
	if earning.ID == uuid.Nil {
		earning.ID = uuid.New()
	}
	m := &models.ReferralEarning{
		ID:               earning.ID,
		ReferrerUserID:   earning.ReferrerUserID,
		RefereeWallet:    strings.ToLower(earning.RefereeWallet),
		Level:            earning.Level,
		Amount:           earning.Amount,
		Percentage:       earning.Percentage,
		InvestmentAmount: earning.InvestmentAmount,
		Claimed:          earning.Claimed,
		EarnedAt:         earning.EarnedAt,
		TxHash:           earning.TxHash.Ptr(),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	earning.CreatedAt = m.CreatedAt
	return nil
}

// ListEarnings lists a user's earnings newest first, optionally filtered
// by claimed state
func (r *ReferralRepository) ListEarnings(ctx context.Context, userID uuid.UUID, claimed *bool, offset, limit int) ([]*entities.ReferralEarning, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReferralEarning{}).Where("referrer_user_id = ?", userID)
	if claimed != nil {
		query = query.Where("claimed = ?", *claimed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var earningModels []models.ReferralEarning
	query = query.Order("earned_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&earningModels).Error; err != nil {
		return nil, 0, err
	}

	earnings := make([]*entities.ReferralEarning, 0, len(earningModels))
	for i := range earningModels {
		earnings = append(earnings, earningToEntity(&earningModels[i]))
	}
	return earnings, total, nil
}

// SumEarned sums every commission the user has earned
func (r *ReferralRepository) SumEarned(ctx context.Context, userID uuid.UUID) (string, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&models.ReferralEarning{}).
		Where("referrer_user_id = ?", userID))
}

// SumClaimed sums commissions already paid out
func (r *ReferralRepository) SumClaimed(ctx context.Context, userID uuid.UUID) (string, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&models.ReferralEarning{}).
		Where("referrer_user_id = ? AND claimed = ?", userID, true))
}

// SumPending sums commissions not yet claimed. Pending always equals
// earned minus claimed because both partition on the claimed flag.
func (r *ReferralRepository) SumPending(ctx context.Context, userID uuid.UUID) (string, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&models.ReferralEarning{}).
		Where("referrer_user_id = ? AND claimed = ?", userID, false))
}

// MarkAllClaimed stamps every unclaimed earning with the payout tx hash
func (r *ReferralRepository) MarkAllClaimed(ctx context.Context, userID uuid.UUID, txHash string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.ReferralEarning{}).
		Where("referrer_user_id = ? AND claimed = ?", userID, false).
		Updates(map[string]interface{}{
			"claimed": true,
			"tx_hash": strings.ToLower(txHash),
		})
	return result.RowsAffected, result.Error
}

// GetTeamStats gets the team rollup for a user
func (r *ReferralRepository) GetTeamStats(ctx context.Context, userID uuid.UUID) (*entities.TeamStats, error) {
	var m models.TeamStats
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return teamStatsToEntity(&m), nil
}

// UpsertTeamStats inserts or replaces a user's team rollup
func (r *ReferralRepository) UpsertTeamStats(ctx context.Context, stats *entities.TeamStats) error {
	m := &models.TeamStats{
		UserID:          stats.UserID,
		WalletAddress:   strings.ToLower(stats.WalletAddress),
		TotalTeamSize:   stats.TotalTeamSize,
		Level1Count:     stats.Level1Count,
		Level2Count:     stats.Level2Count,
		Level3Count:     stats.Level3Count,
		ActiveMembers:   stats.ActiveMembers,
		InactiveMembers: stats.InactiveMembers,
		UpdatedAt:       time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.TeamStats{}).
		Where("user_id = ?", m.UserID).
		Updates(map[string]interface{}{
			"total_team_size":  m.TotalTeamSize,
			"level1_count":     m.Level1Count,
			"level2_count":     m.Level2Count,
			"level3_count":     m.Level3Count,
			"active_members":   m.ActiveMembers,
			"inactive_members": m.InactiveMembers,
			"updated_at":       m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.db.WithContext(ctx).Create(m).Error
	}
	return nil
}

// SumEarnedAll sums commissions platform-wide
func (r *ReferralRepository) SumEarnedAll(ctx context.Context) (string, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&models.ReferralEarning{}))
}

// SumClaimedAll sums paid-out commissions platform-wide
func (r *ReferralRepository) SumClaimedAll(ctx context.Context) (string, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&models.ReferralEarning{}).
		Where("claimed = ?", true))
}

func (r *ReferralRepository) sumAmount(ctx context.Context, query *gorm.DB) (string, error) {
	var sum decimal.Decimal
	row := query.Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&sum); err != nil {
		return "", err
	}
	return sum.String(), nil
}

func earningToEntity(m *models.ReferralEarning) *entities.ReferralEarning {
	return &entities.ReferralEarning{
		ID:               m.ID,
		ReferrerUserID:   m.ReferrerUserID,
		RefereeWallet:    m.RefereeWallet,
		Level:            m.Level,
		Amount:           m.Amount,
		Percentage:       m.Percentage,
		InvestmentAmount: m.InvestmentAmount,
		Claimed:          m.Claimed,
		EarnedAt:         m.EarnedAt,
		TxHash:           null.StringFromPtr(m.TxHash),
		CreatedAt:        m.CreatedAt,
	}
}

func teamStatsToEntity(m *models.TeamStats) *entities.TeamStats {
	return &entities.TeamStats{
		UserID:          m.UserID,
		WalletAddress:   m.WalletAddress,
		TotalTeamSize:   m.TotalTeamSize,
		Level1Count:     m.Level1Count,
		Level2Count:     m.Level2Count,
		Level3Count:     m.Level3Count,
		ActiveMembers:   m.ActiveMembers,
		InactiveMembers: m.InactiveMembers,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ActivityLogRepository records user-visible platform events
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create inserts an activity log row
func (r *ActivityLogRepository) Create(ctx context.Context, log *entities.ActivityLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	m := &models.ActivityLog{
		ID:            log.ID,
		UserID:        log.UserID,
		WalletAddress: strings.ToLower(log.WalletAddress),
		ActivityType:  log.ActivityType,
		Payload:       log.Payload,
		TxHash:        log.TxHash.Ptr(),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.CreatedAt = m.CreatedAt
	return nil
}

// ListByUser lists a user's activity newest first
func (r *ActivityLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entities.ActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logModels []models.ActivityLog
	query = query.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*entities.ActivityLog, 0, len(logModels))
	for i := range logModels {
		m := logModels[i]
		logs = append(logs, &entities.ActivityLog{
			ID:            m.ID,
			UserID:        m.UserID,
			WalletAddress: m.WalletAddress,
			ActivityType:  m.ActivityType,
			Payload:       m.Payload,
			TxHash:        null.StringFromPtr(m.TxHash),
			CreatedAt:     m.CreatedAt,
		})
	}
	return logs, total, nil
}
