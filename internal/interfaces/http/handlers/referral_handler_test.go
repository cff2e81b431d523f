package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"liberty-staking.backend/internal/config"
	"liberty-staking.backend/internal/domain/entities"
	"liberty-staking.backend/internal/interfaces/http/handlers"
	"liberty-staking.backend/internal/usecases"
)

type referralRouterFixture struct {
	router      *gin.Engine
	referral    *MockReferralRepository
	users       *MockUserRepository
	investments *MockInvestmentRepository
	activity    *MockActivityLogRepository
	userID      uuid.UUID
}

func newReferralRouter() *referralRouterFixture {
	referral := new(MockReferralRepository)
	users := new(MockUserRepository)
	investments := new(MockInvestmentRepository)
	activity := new(MockActivityLogRepository)
	userID := uuid.New()

	usecase := usecases.NewReferralUsecase(referral, users, investments, activity,
		config.ReferralConfig{MinClaimAmount: "500", LevelPercentages: []int64{500, 300, 200}})
	handler := handlers.NewReferralHandler(usecase)

	r := gin.New()
	group := r.Group("/referrals", authAs(userID, "0xreferrer", false))
	group.GET("/stats", handler.Stats)
	group.GET("/earnings", handler.Earnings)
	group.GET("/team", handler.Team)
	group.POST("/claim", handler.Claim)
	group.POST("/claim/confirm", handler.ConfirmClaim)

	return &referralRouterFixture{
		router:      r,
		referral:    referral,
		users:       users,
		investments: investments,
		activity:    activity,
		userID:      userID,
	}
}

func TestReferralHandler_Stats(t *testing.T) {
	f := newReferralRouter()

	f.referral.On("SumEarned", mock.Anything, f.userID).Return("750.50", nil)
	f.referral.On("SumClaimed", mock.Anything, f.userID).Return("100", nil)
	f.referral.On("SumPending", mock.Anything, f.userID).Return("650.50", nil)
	f.referral.On("GetTeamStats", mock.Anything, f.userID).Return(&entities.TeamStats{
		UserID:        f.userID,
		TotalTeamSize: 4,
	}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/referrals/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	stats := body["stats"].(map[string]interface{})
	require.Equal(t, "650.50", stats["pending"])
	require.Equal(t, true, stats["canClaim"])
}

func TestReferralHandler_Claim_BelowMin(t *testing.T) {
	f := newReferralRouter()

	f.referral.On("SumPending", mock.Anything, f.userID).Return("250", nil)

	w := postJSON(f.router, "/referrals/claim", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "BELOW_MIN_CLAIM")
}

func TestReferralHandler_Claim_Authorized(t *testing.T) {
	f := newReferralRouter()

	f.referral.On("SumPending", mock.Anything, f.userID).Return("650.50", nil)

	w := postJSON(f.router, "/referrals/claim", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "650.50")
}

func TestReferralHandler_ConfirmClaim(t *testing.T) {
	f := newReferralRouter()
	user := &entities.User{ID: f.userID, WalletAddress: "0xreferrer"}

	f.referral.On("MarkAllClaimed", mock.Anything, f.userID, "0xClaimTx").Return(int64(3), nil)
	f.users.On("GetByID", mock.Anything, f.userID).Return(user, nil)
	f.activity.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := postJSON(f.router, "/referrals/claim/confirm", `{"txHash":"0xClaimTx"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"claimedCount":3`)
}

func TestReferralHandler_ConfirmClaim_MissingTxHash(t *testing.T) {
	f := newReferralRouter()

	w := postJSON(f.router, "/referrals/claim/confirm", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReferralHandler_Earnings_Filter(t *testing.T) {
	f := newReferralRouter()
	unclaimed := false

	f.referral.On("ListEarnings", mock.Anything, f.userID, &unclaimed, 0, 20).
		Return([]*entities.ReferralEarning{{
			ID:       uuid.New(),
			Amount:   "50.00",
			Level:    1,
			EarnedAt: time.Now(),
		}}, int64(1), nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/referrals/earnings?claimed=false", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "50.00")
}

func TestReferralHandler_Team(t *testing.T) {
	f := newReferralRouter()

	referees := []*entities.User{{ID: uuid.New(), WalletAddress: "0xaaa", FullName: "Alice Referee"}}
	f.users.On("ListDirectReferees", mock.Anything, "0xreferrer", 0, 20).Return(referees, int64(1), nil)
	f.investments.On("SumTotalByWallets", mock.Anything, []string{"0xaaa"}).
		Return(map[string]string{"0xaaa": "1500.75"}, nil)
	f.investments.On("CountActiveByWallets", mock.Anything, []string{"0xaaa"}).
		Return(map[string]int64{"0xaaa": 2}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/referrals/team", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "1500.75")
	require.Contains(t, w.Body.String(), "Alice Referee")
}

func TestReferralHandler_NothingToClaim(t *testing.T) {
	f := newReferralRouter()

	f.referral.On("SumPending", mock.Anything, f.userID).Return("0", nil)

	w := postJSON(f.router, "/referrals/claim", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "NOTHING_TO_CLAIM")
}
