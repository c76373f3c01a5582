package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appValidator "github.com/mentorloop/mentorloop/pkg/validator"
)

func TestFormatValidationError(t *testing.T) {
	require.Equal(t, "invalid request payload", formatValidationError(nil))

	errs := appValidator.ValidationErrors{
		{Field: "email", Tag: "email"},
		{Field: "start_time", Tag: "required"},
		{Field: "rating", Tag: "max", Param: "5"},
	}
	got := formatValidationError(errs)
	require.Contains(t, got, "email must be a valid email address")
	require.Contains(t, got, "start time is required")
	require.Contains(t, got, "rating must be at most 5")
}

func TestParseDateQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+query, nil)
		return c
	}

	parsed, err := parseDateQuery(newCtx("from=2025-03-10"), "from")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	require.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *parsed)

	parsed, err = parseDateQuery(newCtx(""), "from")
	require.NoError(t, err)
	require.Nil(t, parsed)

	_, err = parseDateQuery(newCtx("from=10%2F03%2F2025"), "from")
	require.Error(t, err)
}
