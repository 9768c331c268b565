package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/interfaces/mock"
	"github.com/status-im/defi-native-core/internal/models"
)

func TestFetcher_FirstTransportSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mock.NewMockTransport(ctrl)
	secondary := mock.NewMockTransport(ctrl)

	req := models.FetchRequest{Method: http.MethodGet, URL: "https://example.org"}
	primary.EXPECT().Do(gomock.Any(), req).Return(&models.FetchResponse{StatusCode: 200, Body: []byte("ok")}, nil).Times(1)
	// secondary.Do must not be called

	fetcher := NewFetcherWithTransports([]interfaces.Transport{primary, secondary}, zap.NewNop())
	resp, err := fetcher.Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []byte("ok"), resp.Body)
}

func TestFetcher_FallsBackOnTransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mock.NewMockTransport(ctrl)
	secondary := mock.NewMockTransport(ctrl)

	req := models.FetchRequest{Method: http.MethodGet, URL: "https://example.org"}
	primary.EXPECT().Do(gomock.Any(), req).Return(nil, errors.New("connection refused")).Times(1)
	primary.EXPECT().Name().Return("client").AnyTimes()
	secondary.EXPECT().Do(gomock.Any(), req).Return(&models.FetchResponse{StatusCode: 200, Body: []byte("ok")}, nil).Times(1)

	fetcher := NewFetcherWithTransports([]interfaces.Transport{primary, secondary}, zap.NewNop())
	resp, err := fetcher.Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestFetcher_AllTransportsExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mock.NewMockTransport(ctrl)
	secondary := mock.NewMockTransport(ctrl)

	req := models.FetchRequest{Method: http.MethodGet, URL: "https://example.org"}
	primary.EXPECT().Do(gomock.Any(), req).Return(nil, errors.New("refused")).Times(1)
	primary.EXPECT().Name().Return("client").AnyTimes()
	secondary.EXPECT().Do(gomock.Any(), req).Return(nil, errors.New("no curl")).Times(1)
	secondary.EXPECT().Name().Return("curl").AnyTimes()

	fetcher := NewFetcherWithTransports([]interfaces.Transport{primary, secondary}, zap.NewNop())
	_, err := fetcher.Do(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, cerrors.CodeUnavailable, cerrors.CodeOf(err))
}

func TestFetcher_HTTPStatusIsNotAFallbackTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mock.NewMockTransport(ctrl)
	secondary := mock.NewMockTransport(ctrl)

	req := models.FetchRequest{Method: http.MethodGet, URL: "https://example.org"}
	primary.EXPECT().Do(gomock.Any(), req).Return(&models.FetchResponse{StatusCode: 503}, nil).Times(1)
	// secondary.Do must not be called: the upstream answered, the transport worked

	fetcher := NewFetcherWithTransports([]interfaces.Transport{primary, secondary}, zap.NewNop())
	resp, err := fetcher.Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestCheckStatus(t *testing.T) {
	assert.NoError(t, CheckStatus(&models.FetchResponse{StatusCode: 200}))
	assert.NoError(t, CheckStatus(&models.FetchResponse{StatusCode: 204}))

	err := CheckStatus(&models.FetchResponse{StatusCode: 429})
	assert.Equal(t, cerrors.CodeRateLimited, cerrors.CodeOf(err))

	err = CheckStatus(&models.FetchResponse{StatusCode: 500})
	assert.Equal(t, cerrors.CodeUnavailable, cerrors.CodeOf(err))

	err = CheckStatus(&models.FetchResponse{StatusCode: 404})
	assert.Equal(t, cerrors.CodeUnavailable, cerrors.CodeOf(err))
}

func TestNewFetcher_TransportOrder(t *testing.T) {
	fetcher := NewFetcher("client", zap.NewNop())
	require.Len(t, fetcher.transports, 2)
	assert.Equal(t, "client", fetcher.transports[0].Name())
	assert.Equal(t, "curl", fetcher.transports[1].Name())

	fetcher = NewFetcher("curl", zap.NewNop())
	require.Len(t, fetcher.transports, 2)
	assert.Equal(t, "curl", fetcher.transports[0].Name())
	assert.Equal(t, "client", fetcher.transports[1].Name())
}

func TestClientTransport_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1"}`))
	}))
	defer server.Close()

	transport := NewClientTransport()
	resp, err := transport.Do(context.Background(), models.FetchRequest{
		Method:  http.MethodPost,
		URL:     server.URL,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    []byte(`{"jsonrpc":"2.0","id":1,"method":"eth_chainId","params":[]}`),
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(resp.Body), `"result":"0x1"`)
}

func TestClientTransport_ContextCancellation(t *testing.T) {
	transport := NewClientTransport()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := transport.Do(ctx, models.FetchRequest{Method: http.MethodGet, URL: "https://example.org"})
	assert.Error(t, err)
}

func TestCurlTransport_MissingBinary(t *testing.T) {
	transport := &CurlTransport{binary: "curl-binary-that-does-not-exist"}

	_, err := transport.Do(context.Background(), models.FetchRequest{Method: http.MethodGet, URL: "https://example.org"})
	assert.Error(t, err)
}
