package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dawerha/backend/internal/common"
	"github.com/stretchr/testify/require"
)

func Test_NewHandler(t *testing.T) {
	common.PromCounters[common.SchedulerTicksTotal].WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), common.SchedulerTicksTotal)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}
