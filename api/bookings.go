package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozdmr89/aerodesk/internal/domain"
	"github.com/ozdmr89/aerodesk/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID    int64  `json:"flight_id" binding:"required"`
	PassengerID int64  `json:"passenger_id" binding:"required"`
	SeatNumber  string `json:"seat_number"`
}

type bookingResponse struct {
	ID          int64  `json:"id"`
	Reference   string `json:"reference"`
	PassengerID int64  `json:"passenger_id"`
	FlightID    int64  `json:"flight_id"`
	SeatNumber  string `json:"seat_number"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

// RegisterPassengerRoutes hangs the passenger-scoped booking listing off the
// passengers group.
func (h *BookingHandler) RegisterPassengerRoutes(router *gin.RouterGroup) {
	router.GET("/:id/bookings", h.listForPassenger)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FlightID <= 0 || req.PassengerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "flight_id and passenger_id must be positive"})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:    req.FlightID,
		PassengerID: req.PassengerID,
		SeatNumber:  req.SeatNumber,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	found, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) listForPassenger(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger id"})
		return
	}

	bookings, err := h.service.ListBookingsForPassenger(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	responses := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		Reference:   b.Reference,
		PassengerID: b.PassengerID,
		FlightID:    b.FlightID,
		SeatNumber:  b.SeatNumber,
		Status:      string(b.Status),
		AmountCents: b.AmountCents,
	}
}
