package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ozdmr89/aerodesk/api"
	"github.com/ozdmr89/aerodesk/config"
	"github.com/ozdmr89/aerodesk/internal/service/booking"
	"github.com/ozdmr89/aerodesk/internal/service/flights"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(flightSvc, bookingSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires the gateway routes. Split out of Run so tests can drive the
// full router without a listener.
func NewRouter(flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	flightHandler := api.NewFlightHandler(flightSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)

	flightHandler.Register(router.Group("/flights"))
	bookingHandler.Register(router.Group("/bookings"))
	bookingHandler.RegisterPassengerRoutes(router.Group("/passengers"))

	return router
}
