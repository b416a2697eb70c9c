package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSettled(t *testing.T) {
	winsBefore := testutil.ToFloat64(roundsTotal.WithLabelValues(OutcomeWin))
	lossesBefore := testutil.ToFloat64(roundsTotal.WithLabelValues(OutcomeLoss))
	wageredBefore := testutil.ToFloat64(wageredTotal)
	paidBefore := testutil.ToFloat64(paidTotal)

	RecordSettled(true, 100, 198)
	RecordSettled(false, 50, 0)

	assert.Equal(t, winsBefore+1, testutil.ToFloat64(roundsTotal.WithLabelValues(OutcomeWin)))
	assert.Equal(t, lossesBefore+1, testutil.ToFloat64(roundsTotal.WithLabelValues(OutcomeLoss)))
	assert.Equal(t, wageredBefore+150, testutil.ToFloat64(wageredTotal))
	assert.Equal(t, paidBefore+198, testutil.ToFloat64(paidTotal))
}

func TestHandlerExposesCounters(t *testing.T) {
	RecordRejected()
	RecordHTTP("/v1/number-game/play-round", http.MethodPost, http.StatusBadRequest, time.Now())

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `numbergame_rounds_total{outcome="rejected"}`))
	assert.True(t, strings.Contains(body, "numbergame_http_requests_total"))
}
