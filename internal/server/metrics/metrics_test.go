package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAppend_IncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(storeAppends.WithLabelValues("metrics_test", OutcomeCommitted))
	RecordAppend("metrics_test", OutcomeCommitted, time.Millisecond)
	after := testutil.ToFloat64(storeAppends.WithLabelValues("metrics_test", OutcomeCommitted))
	assert.Equal(t, before+1, after)
}

func TestRecordDegradation_IncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(storeDegradations.WithLabelValues("metrics_test"))
	RecordDegradation("metrics_test")
	assert.Equal(t, before+1, testutil.ToFloat64(storeDegradations.WithLabelValues("metrics_test")))
}

func newInstrumentedRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(InstrumentHandler)
	r.HandleFunc("/brew/{pot}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodPost)
	r.NotFoundHandler = InstrumentHandler(http.NotFoundHandler())
	return r
}

func TestInstrumentHandler_LabelsByRouteTemplate(t *testing.T) {
	h := newInstrumentedRouter()

	before := testutil.ToFloat64(httpRequests.WithLabelValues("POST", "/brew/{pot}", "418"))
	for _, pot := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/brew/"+pot, nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(httpRequests.WithLabelValues("POST", "/brew/{pot}", "418")))
}

func TestInstrumentHandler_UnmatchedPathsShareOneSeries(t *testing.T) {
	h := newInstrumentedRouter()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/junk/warmup", nil))
	series, err := testutil.GatherAndCount(Registry, "foodstore_http_requests_total")
	require.NoError(t, err)

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", UnmatchedRoute, "404"))
	for i := 0; i < 500; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/junk/%d", i), nil))
		require.Equal(t, http.StatusNotFound, rr.Code)
	}

	after, err := testutil.GatherAndCount(Registry, "foodstore_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, series, after)
	assert.Equal(t, before+500, testutil.ToFloat64(httpRequests.WithLabelValues("GET", UnmatchedRoute, "404")))
}

func TestHandler_ExposesStoreMetrics(t *testing.T) {
	RecordAppend("exposed", OutcomeFailed, time.Millisecond)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "foodstore_store_appends_total"))
}
