package wire

import (
	"equipment-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - Reserve equipment for an interval
		r.Post("/", bookingHandler.CreateBooking)

		// POST /api/bookings/batch - Best-effort batch under one project
		r.Post("/batch", bookingHandler.CreateProjectBookings)

		// POST /api/bookings/mark-overdue - External sweep entry point
		r.Post("/mark-overdue", bookingHandler.MarkOverdue)

		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}/status", bookingHandler.ChangeBookingStatus)
		r.Put("/{id}/payment-status", bookingHandler.ChangePaymentStatus)
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})

	// GET /api/availability - Interval conflict check without reserving
	r.Get("/api/availability", bookingHandler.CheckAvailability)

	// GET /api/clients/{id}/bookings - Booking history for a client
	r.Get("/api/clients/{id}/bookings", bookingHandler.GetClientBookings)
}
