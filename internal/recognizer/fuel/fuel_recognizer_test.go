package fuel_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanstation/internal/domain"
	"scanstation/internal/recognizer/fuel"
)

func testDoc() domain.CapturedDocument {
	return domain.CapturedDocument{
		Data:        []byte("jpeg bytes"),
		ContentType: "image/jpeg",
		FileName:    "fuel.jpg",
		Method:      domain.CaptureCamera,
	}
}

func TestFuelRecognizer_PositiveMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "fuel.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"isFuelReceipt": true,
			"confidence": 0.93,
			"data": {
				"fuelType": "レギュラー",
				"quantity": "45",
				"unitPrice": 165,
				"totalAmount": "7,425円",
				"vehicleNumber": "品川 500 あ 12-34",
				"date": "2025-12-01",
				"storeName": "ENEOS 環七店"
			}
		}`))
	}))
	defer srv.Close()

	r := fuel.NewWithEndpoint(srv.URL, time.Second)
	out, err := r.Recognize(context.Background(), testDoc())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFuel, out.Kind)
	assert.InDelta(t, 0.93, out.Confidence, 1e-9)
	require.NotNil(t, out.Fuel)
	assert.Equal(t, "レギュラー", out.Fuel.FuelType)
	assert.Equal(t, 45.0, out.Fuel.QuantityLiters)
	assert.Equal(t, 165.0, out.Fuel.UnitPrice)
	assert.Equal(t, 7425.0, out.Fuel.TotalAmount)
	assert.Equal(t, "ENEOS 環七店", out.Fuel.StoreName)
}

func TestFuelRecognizer_FuelTypeWithoutFlagStillMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "isFuelReceipt": false, "data": {"fuelType": "軽油"}}`))
	}))
	defer srv.Close()

	r := fuel.NewWithEndpoint(srv.URL, time.Second)
	out, err := r.Recognize(context.Background(), testDoc())

	require.NoError(t, err)
	assert.Equal(t, "軽油", out.Fuel.FuelType)
}

func TestFuelRecognizer_NotAFuelReceipt_ReturnsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "isFuelReceipt": false, "data": {"fuelType": ""}}`))
	}))
	defer srv.Close()

	r := fuel.NewWithEndpoint(srv.URL, time.Second)
	_, err := r.Recognize(context.Background(), testDoc())

	assert.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestFuelRecognizer_ServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	r := fuel.NewWithEndpoint(srv.URL, time.Second)
	_, err := r.Recognize(context.Background(), testDoc())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoMatch)
}

func TestFuelRecognizer_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := fuel.NewWithEndpoint(srv.URL, time.Second)
	_, err := r.Recognize(context.Background(), testDoc())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFuelRecognizer_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read and can
		// observe the client disconnect; otherwise r.Context() is never
		// canceled and the deferred srv.Close() deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r := fuel.NewWithEndpoint(srv.URL, time.Second)
	_, err := r.Recognize(ctx, testDoc())

	require.Error(t, err)
}
