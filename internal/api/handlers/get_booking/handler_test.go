package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotline/bookingengine/internal/api/handlers"
	"github.com/slotline/bookingengine/internal/service/bookings"
	"github.com/slotline/bookingengine/internal/service/bookings/models"
)

type fakeService struct {
	booking *models.BookingResponse
	err     error
}

func (f *fakeService) GetByID(_ context.Context, _ int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc *fakeService, url string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, &nopLogger{})

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", handler.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{booking: &models.BookingResponse{
		ID:           1,
		BusinessID:   1,
		CustomerName: "Anna",
		Status:       "confirmed",
	}}

	rec := doRequest(t, svc, "/api/v1/bookings/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_InvalidID(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "/api/v1/bookings/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_NotFound(t *testing.T) {
	rec := doRequest(t, &fakeService{err: bookings.ErrBookingNotFound}, "/api/v1/bookings/99")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestHandle_InternalError(t *testing.T) {
	rec := doRequest(t, &fakeService{err: errors.New("boom")}, "/api/v1/bookings/1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
