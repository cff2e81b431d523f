package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"liberty-staking.backend/internal/domain/entities"
)

// UserRepository defines user data operations. Wallet and email lookups
// are case-insensitive (values are lower-cased at the repository edge).
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error)
	ListDirectReferees(ctx context.Context, walletAddress string, offset, limit int) ([]*entities.User, int64, error)
	ListRefereeWallets(ctx context.Context, walletAddresses []string) ([]*entities.User, error)
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CreateReferralLink(ctx context.Context, link *entities.ReferralLink) error
	GetReferralLinkByUserID(ctx context.Context, userID uuid.UUID) (*entities.ReferralLink, error)
}
