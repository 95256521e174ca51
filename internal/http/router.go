package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// New собирает роутер поверх сервисов. Аутентификации здесь нет:
// проверка прав - забота внешнего слоя, который вызывает это API.
func New(
	terms *TermHandler,
	students *StudentHandler,
	requests *RequestHandler,
	bookings *BookingHandler,
	payments *PaymentHandler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/terms", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			terms.Routes(r)
		})

		r.Route("/students", func(r chi.Router) {
			students.Routes(r)
			payments.StudentRoutes(r)
			bookings.StudentRoutes(r)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			requests.Routes(r)
			bookings.RequestRoutes(r)
		})

		r.Route("/lessons", bookings.LessonRoutes)

		r.Get("/balances", payments.allBalances)
	})

	return router
}
