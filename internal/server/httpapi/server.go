// Package httpapi is the thin JSON-over-HTTP layer in front of the users,
// orders and messages services. It parses requests, calls exactly one
// service method and maps typed failures to status codes.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/foodstore/internal/logging"
	"github.com/dmitrijs2005/foodstore/internal/server/metrics"
	"github.com/dmitrijs2005/foodstore/internal/server/models"
	"github.com/gorilla/mux"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) error
	Authenticate(ctx context.Context, email, password string) (bool, error)
}

type OrderService interface {
	Place(ctx context.Context, in models.OrderInput) (int, error)
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
}

type MessageService interface {
	Record(ctx context.Context, name, email, message string) error
}

// Collection is what the health endpoint reports on. Every recordstore.Store
// satisfies it.
type Collection interface {
	Name() string
	Len(ctx context.Context) (int, error)
}

type Server struct {
	address     string
	logger      logging.Logger
	users       UserService
	orders      OrderService
	messages    MessageService
	collections []Collection
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewServer(address string, l logging.Logger, us UserService, ol OrderService, ml MessageService,
	secretKey string, tokenTTL time.Duration, collections ...Collection) *Server {
	return &Server{
		address:     address,
		logger:      l.With("module", "http_server"),
		users:       us,
		orders:      ol,
		messages:    ml,
		collections: collections,
		jwtSecret:   []byte(secretKey),
		tokenTTL:    tokenTTL,
	}
}

// Router builds the route table with middleware applied.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.InstrumentHandler, s.requestLogger, corsMiddleware)
	r.NotFoundHandler = metrics.InstrumentHandler(http.NotFoundHandler())
	r.MethodNotAllowedHandler = metrics.InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	r.HandleFunc("/customer/signup", s.handleSignup).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/customer/login", s.handleLogin).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/customer/orders", s.requireToken(http.HandlerFunc(s.handleMyOrders))).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/place-order", s.handlePlaceOrder).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/contact", s.handleContact).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
