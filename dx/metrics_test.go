package dx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mkdx/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestOutcomesAreCounted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken/f/1/datastream/1" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	ok := requestsTotal.WithLabelValues(opGet, outcomeOK)
	failed := requestsTotal.WithLabelValues(opGet, outcomeRequestError)
	missing := requestsTotal.WithLabelValues(opPost, outcomeMissingAPIKey)

	okBefore := testutil.ToFloat64(ok)
	failedBefore := testutil.ToFloat64(failed)
	missingBefore := testutil.ToFloat64(missing)

	good := New("key", "f", WithAPIURL(srv.URL+"/good"))
	bad := New("key", "f", WithAPIURL(srv.URL+"/broken"))
	noKey := New("", "f")

	good.Get(context.Background(), models.Query{StreamId: "1"})
	bad.Get(context.Background(), models.Query{StreamId: "1"})
	noKey.Post(context.Background(), "1", "x")

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
	assert.Equal(t, missingBefore+1, testutil.ToFloat64(missing))
}
