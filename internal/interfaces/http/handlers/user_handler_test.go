package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/interfaces/http/handlers"
	"liberty-staking.backend/internal/usecases"
)

type userRouterFixture struct {
	router      *gin.Engine
	users       *MockUserRepository
	investments *MockInvestmentRepository
	referral    *MockReferralRepository
	userID      uuid.UUID
}

func newUserRouter() *userRouterFixture {
	users := new(MockUserRepository)
	investments := new(MockInvestmentRepository)
	referral := new(MockReferralRepository)
	userID := uuid.New()

	handler := handlers.NewUserHandler(usecases.NewUserUsecase(users, investments, referral))

	r := gin.New()
	group := r.Group("/users", authAs(userID, "0xme", false))
	group.GET("/profile", handler.Profile)
	group.GET("/dashboard-stats", handler.DashboardStats)

	return &userRouterFixture{
		router:      r,
		users:       users,
		investments: investments,
		referral:    referral,
		userID:      userID,
	}
}

func TestUserHandler_Profile(t *testing.T) {
	f := newUserRouter()

	f.users.On("GetByID", mock.Anything, f.userID).
		Return(&entities.User{ID: f.userID, WalletAddress: "0xme", FullName: "Mia Me"}, nil)
	f.users.On("GetReferralLinkByUserID", mock.Anything, f.userID).
		Return(&entities.ReferralLink{
			UserID:       f.userID,
			ReferralCode: "mia-me-2026",
			Link:         "https://liberty.example/signup?ref=mia-me-2026",
		}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/profile", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "mia-me-2026")
	require.Contains(t, w.Body.String(), "Mia Me")
}

func TestUserHandler_Profile_NotFound(t *testing.T) {
	f := newUserRouter()

	f.users.On("GetByID", mock.Anything, f.userID).Return(nil, domainerrors.ErrNotFound)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/profile", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_DashboardStats(t *testing.T) {
	f := newUserRouter()

	f.investments.On("SumTotalByUser", mock.Anything, f.userID).Return("5000.00", nil)
	f.investments.On("CountActiveByUser", mock.Anything, f.userID).Return(int64(3), nil)
	f.referral.On("SumEarned", mock.Anything, f.userID).Return("250.00", nil)
	f.referral.On("SumPending", mock.Anything, f.userID).Return("100.00", nil)
	f.referral.On("GetTeamStats", mock.Anything, f.userID).
		Return(&entities.TeamStats{UserID: f.userID, TotalTeamSize: 7}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/dashboard-stats", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	stats := body["stats"].(map[string]interface{})
	require.Equal(t, "5000.00", stats["totalInvested"])
	require.Equal(t, float64(3), stats["activeInvestments"])
	require.Equal(t, float64(7), stats["teamSize"])
}
