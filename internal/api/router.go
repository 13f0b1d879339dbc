package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
)

// Handler обработчик одного маршрута
type Handler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

// Routes обработчики всех маршрутов сервиса
type Routes struct {
	GetSettings          Handler
	GetMonthAvailability Handler
	GetDaySlots          Handler
	CreateBooking        Handler

	GetAdminSettings Handler
	UpdateSettings   Handler
	ListBookings     Handler
	GetBooking       Handler
}

// Options сквозные middleware и служебные эндпоинты
type Options struct {
	// Metrics оборачивает все маршруты; nil - без метрик
	Metrics mux.MiddlewareFunc
	// MetricsPath и MetricsHandler публикуют /metrics; пустой путь - не публиковать
	MetricsPath    string
	MetricsHandler http.Handler
	// BookingLimit ограничивает POST /booking; nil - без ограничения
	BookingLimit func(http.Handler) http.Handler
	AdminToken   string
}

// NewRouter собирает маршруты /api/v1
func NewRouter(routes Routes, opts Options, logger middleware.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if opts.MetricsPath != "" && opts.MetricsHandler != nil {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (мастер бронирования)
	// ============================================================

	api.HandleFunc("/settings", routes.GetSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", routes.GetMonthAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", routes.GetDaySlots.Handle).Methods(http.MethodGet)

	var createBooking http.Handler = http.HandlerFunc(routes.CreateBooking.Handle)
	if opts.BookingLimit != nil {
		createBooking = opts.BookingLimit(createBooking)
	}
	api.Handle("/booking", createBooking).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminToken(opts.AdminToken, logger))

	admin.HandleFunc("/settings", routes.GetAdminSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", routes.UpdateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings", routes.ListBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", routes.GetBooking.Handle).Methods(http.MethodGet)

	return r
}
