package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"liberty-staking.backend/internal/domain/entities"
)

// InvestmentRepository defines investment ledger operations
type InvestmentRepository interface {
	// Create inserts a new investment. A duplicate stake tx hash returns
	// domain ErrAlreadyExists.
	Create(ctx context.Context, investment *entities.Investment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error)
	GetByStakeTxHash(ctx context.Context, txHash string) (*entities.Investment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, statuses []entities.InvestmentStatus, offset, limit int) ([]*entities.Investment, int64, error)
	SumTotalByUser(ctx context.Context, userID uuid.UUID) (string, error)
	SumTotalByWallets(ctx context.Context, walletAddresses []string) (map[string]string, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountActiveByWallets(ctx context.Context, walletAddresses []string) (map[string]int64, error)
	ListMatured(ctx context.Context, asOf time.Time, offset, limit int) ([]*entities.Investment, int64, error)
	CountAll(ctx context.Context) (int64, error)
	SumTotalAll(ctx context.Context) (string, error)
	SumActiveAll(ctx context.Context) (string, error)
}
