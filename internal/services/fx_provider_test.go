package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRatesInvertsUpstreamQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/INR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		// Upstream quotes SGD-per-INR; the provider must return INR-per-SGD.
		w.Write([]byte(`{"base":"INR","rates":{"SGD":0.02,"MYR":0.05,"USD":0.012}}`))
	}))
	defer server.Close()

	provider := NewHTTPFXProvider(server.URL, time.Second, 0, time.Millisecond)
	rates, err := provider.FetchRates(context.Background(), "inr", []string{"SGD", "myr"})
	require.NoError(t, err)

	require.Len(t, rates, 2)
	assert.True(t, rates["SGD"].Equal(d("50")))
	assert.True(t, rates["MYR"].Equal(d("20")))
}

func TestFetchRatesSkipsMissingAndNonPositiveQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"rates":{"SGD":0.02,"MYR":0}}`))
	}))
	defer server.Close()

	provider := NewHTTPFXProvider(server.URL, time.Second, 0, time.Millisecond)
	rates, err := provider.FetchRates(context.Background(), "INR", []string{"SGD", "MYR", "THB"})
	require.NoError(t, err)

	require.Len(t, rates, 1)
	_, ok := rates["SGD"]
	assert.True(t, ok)
}

func TestFetchRatesRetriesOnFailure(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"rates":{"SGD":0.02}}`))
	}))
	defer server.Close()

	provider := NewHTTPFXProvider(server.URL, time.Second, 2, time.Millisecond)
	rates, err := provider.FetchRates(context.Background(), "INR", []string{"SGD"})
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.True(t, rates["SGD"].Equal(d("50")))
}

func TestFetchRatesExhaustsRetryBudget(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewHTTPFXProvider(server.URL, time.Second, 2, time.Millisecond)
	_, err := provider.FetchRates(context.Background(), "INR", []string{"SGD"})

	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestFetchRatesEmptyBodyIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"rates":{}}`))
	}))
	defer server.Close()

	provider := NewHTTPFXProvider(server.URL, time.Second, 0, time.Millisecond)
	_, err := provider.FetchRates(context.Background(), "INR", []string{"SGD"})
	assert.Error(t, err)
}

func TestFetchRatesHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := NewHTTPFXProvider(server.URL, time.Second, 3, time.Hour)
	_, err := provider.FetchRates(ctx, "INR", []string{"SGD"})
	require.Error(t, err)
}
