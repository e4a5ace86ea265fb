package listintervals

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIntervalsHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	New().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/intervals", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	intervals := []Interval{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &intervals))
	require.Len(t, intervals, 11)

	assert.Equal(t, Interval{Code: "1mi", Label: "Every 1 Minutes", DurationMs: 60_000}, intervals[0])
	assert.Equal(t, Interval{Code: "1d", Label: "Daily", DurationMs: 86_400_000, IsDefault: true}, intervals[5])
	assert.Equal(t, "1m", intervals[10].Code)
	assert.Equal(t, int64(30*86_400_000), intervals[10].DurationMs)
}
