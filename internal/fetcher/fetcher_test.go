package fetcher

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfarias/promoforge/internal/models"
)

func newTestFetcher(minBody int) *Fetcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{
		UserAgent:     "test-agent",
		MinBodyLength: minBody,
		Timeout:       5 * time.Second,
	}, logger)
}

func staticChannel(name, url string) ChannelSpec {
	return ChannelSpec{
		Name:  name,
		Build: func(string) string { return url },
	}
}

func TestFetchStopsAtFirstViableChannel(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer failing.Close()

	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("blocked"))
	}))
	defer short.Close()

	validCalls := 0
	valid := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		validCalls++
		w.Write([]byte(strings.Repeat("a", 200)))
	}))
	defer valid.Close()

	// A channel after the viable one must never be attempted.
	neverCalled := 0
	never := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		neverCalled++
		w.Write([]byte(strings.Repeat("b", 200)))
	}))
	defer never.Close()

	f := newTestFetcher(100)
	channels := []ChannelSpec{
		staticChannel("a", failing.URL),
		staticChannel("b", short.URL),
		staticChannel("c", valid.URL),
		staticChannel("d", never.URL),
	}

	body, attempts, err := f.Fetch(context.Background(), "http://example.com/item", channels)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 200), string(body))
	assert.Equal(t, 1, validCalls)
	assert.Equal(t, 0, neverCalled)

	require.Len(t, attempts, 3)
	assert.Equal(t, "a", attempts[0].Channel)
	assert.Equal(t, models.AttemptHTTPError, attempts[0].Outcome)
	assert.Equal(t, http.StatusForbidden, attempts[0].Status)
	assert.Equal(t, "b", attempts[1].Channel)
	assert.Equal(t, models.AttemptShortBody, attempts[1].Outcome)
	assert.Equal(t, "c", attempts[2].Channel)
	assert.Equal(t, models.AttemptSuccess, attempts[2].Outcome)
	assert.Equal(t, 200, attempts[2].BodyLength)
}

func TestFetchExhaustsAllChannels(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	f := newTestFetcher(100)
	channels := []ChannelSpec{
		staticChannel("a", failing.URL),
		staticChannel("b", failing.URL),
	}

	body, attempts, err := f.Fetch(context.Background(), "http://example.com/item", channels)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Nil(t, body)
	assert.Len(t, attempts, 2)
	for _, attempt := range attempts {
		assert.Equal(t, models.AttemptHTTPError, attempt.Outcome)
	}
}

func TestFetchRecordsNetworkErrors(t *testing.T) {
	f := newTestFetcher(100)
	channels := []ChannelSpec{
		staticChannel("dead", "http://127.0.0.1:1/unreachable"),
	}

	_, attempts, err := f.Fetch(context.Background(), "http://example.com/item", channels)
	assert.ErrorIs(t, err, ErrExhausted)
	require.Len(t, attempts, 1)
	assert.Equal(t, models.AttemptNetworkError, attempts[0].Outcome)
}

func TestFetchRequiresChannels(t *testing.T) {
	f := newTestFetcher(100)
	_, _, err := f.Fetch(context.Background(), "http://example.com/item", nil)
	assert.ErrorIs(t, err, ErrNoChannels)
}

func TestFetchSendsUserAgentAndChannelHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept-Language")
		w.Write([]byte(strings.Repeat("a", 200)))
	}))
	defer server.Close()

	f := newTestFetcher(100)
	ch := staticChannel("direct", server.URL)
	ch.Headers = browserHeaders

	_, _, err := f.Fetch(context.Background(), "http://example.com/item", []ChannelSpec{ch})
	require.NoError(t, err)
	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7", gotAccept)
}

func TestDefaultChannelOrder(t *testing.T) {
	relays, order := DefaultRelays()
	channels := DefaultChannels("http://localhost:4000", relays, order)

	require.Len(t, channels, 4)
	assert.Equal(t, "direct", channels[0].Name)
	assert.Equal(t, "local-proxy", channels[1].Name)
	assert.Equal(t, "allorigins", channels[2].Name)
	assert.Equal(t, "codetabs", channels[3].Name)

	target := "https://www.mercadolivre.com.br/produto/p/MLB123"
	assert.Equal(t, target, channels[0].Build(target))
	assert.Contains(t, channels[1].Build(target), "http://localhost:4000/proxy?url=")
	assert.Contains(t, channels[2].Build(target), "api.allorigins.win")
	assert.NotContains(t, channels[2].Build(target), "://www.mercadolivre", "target must be URL-encoded")
}

func TestDefaultChannelsWithoutLocalProxy(t *testing.T) {
	relays, order := DefaultRelays()
	channels := DefaultChannels("", relays, order)

	require.Len(t, channels, 3)
	assert.Equal(t, "direct", channels[0].Name)
	assert.Equal(t, "allorigins", channels[1].Name)
}

func TestFetchImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	f := newTestFetcher(100)
	body, contentType, err := f.FetchImage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))
	assert.Equal(t, "image/jpeg", contentType)
}

func TestFetchImageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFetcher(100)
	_, _, err := f.FetchImage(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrImageUnavailable)
}
