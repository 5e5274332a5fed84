package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"routeviz/internal/model"
)

func TestObserveDatasetAndHandler(t *testing.T) {
	RegisterDefault()
	RegisterDefault() // idempotent
	ObserveDataset([]model.VehicleSummary{{Vehicle: "v-test", Resolved: 3, Edges: 2, Dropped: 1}})
	if got := testutil.ToFloat64(DroppedNodes.WithLabelValues("v-test")); got != 1 {
		t.Fatalf("dropped gauge = %v", got)
	}
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != 200 {
		t.Fatalf("metrics: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `routeviz_nodes{vehicle="v-test"} 3`) {
		t.Fatalf("missing nodes gauge in exposition")
	}
}
