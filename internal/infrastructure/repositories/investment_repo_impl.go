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

// statuses owed money; the "active" list bucket and activity rollups
var activeStatuses = []string{
	string(entities.InvestmentStatusActive),
	string(entities.InvestmentStatusMatured),
	string(entities.InvestmentStatusPartiallyPaid),
}

// InvestmentRepository implements the investment ledger
type InvestmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create inserts an investment. The unique index on stake_tx_hash turns a
// duplicate insert into ErrAlreadyExists so callers can re-read the
// existing row.
func (r *InvestmentRepository) Create(ctx context.Context, investment *entities.Investment) error {
	if investment.ID == uuid.Nil {
		investment.ID = uuid.New()
	}
	m := investmentToModel(investment)

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	investment.CreatedAt = m.CreatedAt
	investment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an investment by ID
func (r *InvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	var m models.Investment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return investmentToEntity(&m), nil
}

// GetByStakeTxHash gets an investment by its stake transaction hash
func (r *InvestmentRepository) GetByStakeTxHash(ctx context.Context, txHash string) (*entities.Investment, error) {
	var m models.Investment
	if err := r.db.WithContext(ctx).Where("stake_tx_hash = ?", strings.ToLower(txHash)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return investmentToEntity(&m), nil
}

// ListByUser lists a user's investments, newest first, optionally filtered
// to a set of statuses
func (r *InvestmentRepository) ListByUser(ctx context.Context, userID uuid.UUID, statuses []entities.InvestmentStatus, offset, limit int) ([]*entities.Investment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Investment{}).Where("user_id = ?", userID)
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		query = query.Where("status IN ?", values)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var investmentModels []models.Investment
	query = query.Order("stake_timestamp DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&investmentModels).Error; err != nil {
		return nil, 0, err
	}

	investments := make([]*entities.Investment, 0, len(investmentModels))
	for i := range investmentModels {
		investments = append(investments, investmentToEntity(&investmentModels[i]))
	}
	return investments, total, nil
}

// SumTotalByUser sums a user's total staked amount across all statuses
func (r *InvestmentRepository) SumTotalByUser(ctx context.Context, userID uuid.UUID) (string, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&models.Investment{}).Where("user_id = ?", userID))
}

// SumTotalByWallets sums staked amounts grouped by wallet address
func (r *InvestmentRepository) SumTotalByWallets(ctx context.Context, walletAddresses []string) (map[string]string, error) {
	result := make(map[string]string, len(walletAddresses))
	if len(walletAddresses) == 0 {
		return result, nil
	}

	var rows []struct {
		WalletAddress string
		Total         decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.Investment{}).
		Select("wallet_address, COALESCE(SUM(total_amount), 0) AS total").
		Where("wallet_address IN ?", lowerAll(walletAddresses)).
		Group("wallet_address").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.WalletAddress] = row.Total.String()
	}
	return result, nil
}

// CountActiveByUser counts a user's investments still owed money
func (r *InvestmentRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Investment{}).
		Where("user_id = ? AND status IN ?", userID, activeStatuses).
		Count(&count).Error
	return count, err
}

// CountActiveByWallets counts active-bucket investments grouped by wallet
func (r *InvestmentRepository) CountActiveByWallets(ctx context.Context, walletAddresses []string) (map[string]int64, error) {
	result := make(map[string]int64, len(walletAddresses))
	if len(walletAddresses) == 0 {
		return result, nil
	}

	var rows []struct {
		WalletAddress string
		Count         int64
	}
	err := r.db.WithContext(ctx).Model(&models.Investment{}).
		Select("wallet_address, COUNT(*) AS count").
		Where("wallet_address IN ? AND status IN ?", lowerAll(walletAddresses), activeStatuses).
		Group("wallet_address").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.WalletAddress] = row.Count
	}
	return result, nil
}

// ListMatured lists investments past maturity and not fully paid, oldest
// maturity first
func (r *InvestmentRepository) ListMatured(ctx context.Context, asOf time.Time, offset, limit int) ([]*entities.Investment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Investment{}).
		Where("maturity_timestamp <= ? AND fully_paid = ? AND status IN ?", asOf, false, activeStatuses)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var investmentModels []models.Investment
	query = query.Order("maturity_timestamp ASC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&investmentModels).Error; err != nil {
		return nil, 0, err
	}

	investments := make([]*entities.Investment, 0, len(investmentModels))
	for i := range investmentModels {
		investments = append(investments, investmentToEntity(&investmentModels[i]))
	}
	return investments, total, nil
}

// CountAll counts all investments
func (r *InvestmentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Investment{}).Count(&count).Error
	return count, err
}

// SumTotalAll sums all staked amounts
func (r *InvestmentRepository) SumTotalAll(ctx context.Context) (string, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&models.Investment{}))
}

// SumActiveAll sums staked amounts still in the active bucket
func (r *InvestmentRepository) SumActiveAll(ctx context.Context) (string, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&models.Investment{}).Where("status IN ?", activeStatuses))
}

func (r *InvestmentRepository) sumAmount(ctx context.Context, query *gorm.DB) (string, error) {
	var sum decimal.Decimal
	row := query.Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&sum); err != nil {
		return "", err
	}
	return sum.String(), nil
}

func investmentToModel(inv *entities.Investment) *models.Investment {
	return &models.Investment{
		ID:                     inv.ID,
		UserID:                 inv.UserID,
		WalletAddress:          strings.ToLower(inv.WalletAddress),
		OrderID:                inv.OrderID.Ptr(),
		TokenAddress:           strings.ToLower(inv.TokenAddress),
		TokenSymbol:            inv.TokenSymbol,
		OrderCount:             inv.OrderCount,
		AmountPerOrder:         inv.AmountPerOrder,
		TotalAmount:            inv.TotalAmount,
		LockedAPR:              inv.LockedAPR,
		LockedMaturityDuration: inv.LockedMaturityDuration,
		StakeTimestamp:         inv.StakeTimestamp,
		MaturityTimestamp:      inv.MaturityTimestamp,
		EpochID:                inv.EpochID,
		PaidOrderCount:         inv.PaidOrderCount,
		FullyPaid:              inv.FullyPaid,
		IsReinvestment:         inv.IsReinvestment,
		Status:                 string(inv.Status),
		StakeTxHash:            strings.ToLower(inv.StakeTxHash),
		LastPayoutTxHash:       inv.LastPayoutTxHash.Ptr(),
	}
}

func investmentToEntity(m *models.Investment) *entities.Investment {
	return &entities.Investment{
		ID:                     m.ID,
		UserID:                 m.UserID,
		WalletAddress:          m.WalletAddress,
		OrderID:                null.StringFromPtr(m.OrderID),
		TokenAddress:           m.TokenAddress,
		TokenSymbol:            m.TokenSymbol,
		OrderCount:             m.OrderCount,
		AmountPerOrder:         m.AmountPerOrder,
		TotalAmount:            m.TotalAmount,
		LockedAPR:              m.LockedAPR,
		LockedMaturityDuration: m.LockedMaturityDuration,
		StakeTimestamp:         m.StakeTimestamp,
		MaturityTimestamp:      m.MaturityTimestamp,
		EpochID:                m.EpochID,
		PaidOrderCount:         m.PaidOrderCount,
		FullyPaid:              m.FullyPaid,
		IsReinvestment:         m.IsReinvestment,
		Status:                 entities.InvestmentStatus(m.Status),
		StakeTxHash:            m.StakeTxHash,
		LastPayoutTxHash:       null.StringFromPtr(m.LastPayoutTxHash),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func lowerAll(values []string) []string {
	lowered := make([]string, 0, len(values))
	for _, v := range values {
		lowered = append(lowered, strings.ToLower(v))
	}
	return lowered
}
