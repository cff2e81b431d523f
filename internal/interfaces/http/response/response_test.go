package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/interfaces/http/response"
)

func record(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccessMergesData(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		response.Success(c, http.StatusCreated, gin.H{"token": "abc"})
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, true, body["success"])
	require.Equal(t, "abc", body["token"])
}

func TestErrorAppError(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		response.Error(c, domainerrors.Unprocessable("BELOW_MIN_CLAIM", "too little"))
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, false, body["success"])
	errObj := body["error"].(map[string]interface{})
	require.Equal(t, "BELOW_MIN_CLAIM", errObj["code"])
	require.Equal(t, "too little", errObj["message"])
}

func TestErrorWrapsUnknownErrors(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		response.Error(c, errors.New("pq: connection refused"))
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	errObj := body["error"].(map[string]interface{})
	require.Equal(t, "INTERNAL_ERROR", errObj["code"])
	require.NotContains(t, errObj["message"], "pq:")
}
