package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(method, path string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, path, nil)
	return c
}

func TestTransformSuccessUnwrapsData(t *testing.T) {
	c := testContext("GET", "/api/orgs")

	body := `{"success":true,"message":"custom message","data":{"items":[]}}`
	unified := transformToUnifiedResponse(c, body, 200, "req-1", 5*time.Millisecond)

	assert.True(t, unified.Success)
	assert.Equal(t, "custom message", unified.Message)
	assert.NotNil(t, unified.Data)
	assert.Nil(t, unified.Error)
	require.NotNil(t, unified.Meta)
	assert.Equal(t, "req-1", unified.Meta.RequestID)
	assert.Equal(t, "GET", unified.Meta.Method)
}

func TestTransformErrorCarriesDetails(t *testing.T) {
	c := testContext("POST", "/api/orgs/x/invites")

	body := `{"error":"Invitation already pending for this email"}`
	unified := transformToUnifiedResponse(c, body, 409, "req-2", time.Millisecond)

	assert.False(t, unified.Success)
	require.NotNil(t, unified.Error)
	assert.Equal(t, "CONFLICT", unified.Error.Code)
	assert.Equal(t, "Invitation already pending for this email", unified.Error.Details)
}

func TestTransformExpiredInvite(t *testing.T) {
	c := testContext("POST", "/api/invites/x/accept")

	unified := transformToUnifiedResponse(c, `{"error":"Invitation expired"}`, 410, "req-3", time.Millisecond)

	assert.False(t, unified.Success)
	require.NotNil(t, unified.Error)
	assert.Equal(t, "GONE", unified.Error.Code)
	assert.Equal(t, "Resource expired", unified.Message)
}

func TestTransformNonJSONBody(t *testing.T) {
	c := testContext("GET", "/api/orgs")

	unified := transformToUnifiedResponse(c, "upstream blew up", 500, "req-4", time.Millisecond)

	assert.False(t, unified.Success)
	require.NotNil(t, unified.Error)
	assert.Equal(t, "INTERNAL_ERROR", unified.Error.Code)
	assert.Equal(t, "upstream blew up", unified.Error.Details)
}

func TestShouldSkipUnifiedResponse(t *testing.T) {
	assert.True(t, shouldSkipUnifiedResponse(testContext("GET", "/health")))
	assert.True(t, shouldSkipUnifiedResponse(testContext("GET", "/swagger/index.html")))
	assert.True(t, shouldSkipUnifiedResponse(testContext("GET", "/api/ws")))
	assert.False(t, shouldSkipUnifiedResponse(testContext("GET", "/api/orgs")))

	upgrade := testContext("GET", "/api/anything")
	upgrade.Request.Header.Set("Upgrade", "websocket")
	assert.True(t, shouldSkipUnifiedResponse(upgrade))
}
