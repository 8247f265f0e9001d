package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRecommendation(t *testing.T) {
	okBefore := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("ok"))
	emptyBefore := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("empty"))

	ObserveRecommendation(10, 5, time.Millisecond)
	ObserveRecommendation(1, 0, time.Microsecond)

	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("ok")) - okBefore; got != 1 {
		t.Errorf("ok delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("empty")) - emptyBefore; got != 1 {
		t.Errorf("empty delta = %v, want 1", got)
	}
}

func TestMiddlewareCountsStatus(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "404"))

	h := Middleware(http.NotFoundHandler())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "404")) - before; got != 1 {
		t.Errorf("404 delta = %v, want 1", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveRecommendation(3, 2, time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "moviedb_recommendations_total") {
		t.Error("expected moviedb_recommendations_total in /metrics output")
	}
}
