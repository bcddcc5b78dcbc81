package service

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountRequestsByRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	router, _ := newTestRouter(t, WithRegistry(registry))

	doRequest(router, http.MethodGet, "/books/1", nil)
	doRequest(router, http.MethodGet, "/books/2", nil)
	doRequest(router, http.MethodGet, "/books/99", nil)
	doRequest(router, http.MethodGet, "/nowhere", nil)

	families, err := registry.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "library_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, label := range metric.GetLabel() {
				labels[label.GetName()] = label.GetValue()
			}
			counts[labels["route"]+" "+labels["status"]] += metric.GetCounter().GetValue()
		}
	}

	assert.Equal(t, float64(2), counts["/books/:id 200"])
	assert.Equal(t, float64(1), counts["/books/:id 404"])
	assert.Equal(t, float64(1), counts["unmatched 404"])
}

func TestMetricsBooksGauge(t *testing.T) {
	registry := prometheus.NewRegistry()
	router, library := newTestRouter(t, WithRegistry(registry))

	doRequest(router, http.MethodPost, "/books", validBook())

	count, err := testutil.GatherAndCount(registry, "library_books")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == "library_books" {
			assert.Equal(t, float64(library.Len()), family.GetMetric()[0].GetGauge().GetValue())
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	doRequest(router, http.MethodGet, "/books", nil)
	w := doRequest(router, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "library_http_requests_total")
	assert.Contains(t, w.Body.String(), "library_books 4")
}
