package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ozdmr89/aerodesk/internal/domain"
	"github.com/ozdmr89/aerodesk/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookingsForPassenger(ctx context.Context, passengerID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := booking.CreateBookingInput{
		FlightID:    1,
		PassengerID: 7,
		SeatNumber:  "12A",
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Booking{
		ID:          42,
		Reference:   "AB12CD",
		PassengerID: 7,
		FlightID:    1,
		SeatNumber:  "12A",
		Status:      domain.BookingStatusConfirmed,
		AmountCents: 129900,
	}

	mockService.On("CreateBooking", c.Request.Context(), input).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), response.ID)
	assert.Equal(t, "AB12CD", response.Reference)
	assert.Equal(t, string(domain.BookingStatusConfirmed), response.Status)
	assert.Equal(t, int64(129900), response.AmountCents)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_badRequest(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"flight_id": `},
		{name: "missing flight id", body: `{"passenger_id": 7}`},
		{name: "missing passenger id", body: `{"flight_id": 1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewBufferString(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")

			handler.create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockService.AssertNotCalled(t, "CreateBooking")
		})
	}
}

func TestBookingHandler_create_conflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "flight full", serviceErr: domain.ErrFlightFull, wantStatus: http.StatusConflict},
		{name: "seat taken", serviceErr: domain.ErrSeatTaken, wantStatus: http.StatusConflict},
		{name: "duplicate booking", serviceErr: domain.ErrAlreadyBooked, wantStatus: http.StatusConflict},
		{name: "flight not found", serviceErr: domain.ErrFlightNotFound, wantStatus: http.StatusNotFound},
		{name: "passenger not found", serviceErr: domain.ErrPassengerNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			body, _ := json.Marshal(booking.CreateBookingInput{FlightID: 1, PassengerID: 7, SeatNumber: "12A"})
			c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
			c.Request.Header.Set("Content-Type", "application/json")

			mockService.On("CreateBooking", c.Request.Context(), mock.Anything).Return(nil, tc.serviceErr)

			handler.create(c)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.serviceErr.Error())
		})
	}
}

func TestBookingHandler_create_internalErrorIsOpaque(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(booking.CreateBookingInput{FlightID: 1, PassengerID: 7})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", c.Request.Context(), mock.Anything).
		Return(nil, assert.AnError)

	handler.create(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Request = httptest.NewRequest("GET", "/bookings/42", nil)

	found := &domain.Booking{ID: 42, Reference: "AB12CD", Status: domain.BookingStatusCancelled}
	mockService.On("GetBooking", c.Request.Context(), int64(42)).Return(found, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCancelled), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_get_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("GET", "/bookings/99", nil)

	mockService.On("GetBooking", c.Request.Context(), int64(99)).Return(nil, domain.ErrBookingNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_get_invalidID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/bookings/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetBooking")
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/42", nil)

	mockService.On("CancelBooking", c.Request.Context(), int64(42)).Return(nil)

	handler.cancel(c)
	// gin defers status-only writes until the engine flushes them; outside the
	// engine the recorder never sees the code unless it is flushed explicitly.
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/42", nil)

	mockService.On("CancelBooking", c.Request.Context(), int64(42)).Return(domain.ErrBookingNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_listForPassenger(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("GET", "/passengers/7/bookings", nil)

	bookings := []domain.Booking{
		{ID: 1, PassengerID: 7, FlightID: 1, Status: domain.BookingStatusConfirmed},
		{ID: 2, PassengerID: 7, FlightID: 2, Status: domain.BookingStatusCancelled},
	}
	mockService.On("ListBookingsForPassenger", c.Request.Context(), int64(7)).Return(bookings, nil)

	handler.listForPassenger(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_listForPassenger_empty(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("GET", "/passengers/7/bookings", nil)

	mockService.On("ListBookingsForPassenger", c.Request.Context(), int64(7)).Return([]domain.Booking{}, nil)

	handler.listForPassenger(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
