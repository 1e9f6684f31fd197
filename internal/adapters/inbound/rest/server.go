package rest

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/brintopos/brintopos/internal/application"
)

// Credential headers checked by the gate middleware.
const (
	HeaderPOSCredential   = "X-POS-Credential"
	HeaderAdminCredential = "X-Admin-Credential"
	HeaderVoidCredential  = "X-Void-Credential"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
)

type handlers struct {
	till *application.TillService
	dash *application.DashboardService
	log  logrus.FieldLogger
}

// SetupRoutes builds the router for one till. POS routes sit under /api and
// admin routes under /api/admin, each behind its gate.
func SetupRoutes(till *application.TillService, dash *application.DashboardService, log logrus.FieldLogger) *Server {
	h := &handlers{till: till, dash: dash, log: log.WithField("component", "http")}

	router := mux.NewRouter()
	router.Use(h.logRequests)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	pos := router.PathPrefix("/api").Subrouter()

	// admin
	admin := pos.PathPrefix("/admin").Subrouter()
	admin.Use(gate(HeaderAdminCredential, dash.Authorize))

	admin.HandleFunc("/menu", h.adminMenu).Methods("GET")
	admin.HandleFunc("/menu", h.addMenuItem).Methods("POST")
	admin.HandleFunc("/menu/{id}", h.updateMenuItem).Methods("PUT")
	admin.HandleFunc("/menu/{id}", h.removeMenuItem).Methods("DELETE")
	admin.HandleFunc("/invoices", h.listInvoices).Methods("GET")
	admin.HandleFunc("/invoices/{id}", h.getInvoice).Methods("GET")
	admin.HandleFunc("/invoices/{id}", h.updateInvoice).Methods("PATCH")
	admin.HandleFunc("/invoices/{id}/void", h.voidInvoice).Methods("POST")
	admin.HandleFunc("/summary", h.summary).Methods("GET")

	// till
	posRoutes := pos.NewRoute().Subrouter()
	posRoutes.Use(gate(HeaderPOSCredential, till.Unlock))

	posRoutes.HandleFunc("/menu", h.menu).Methods("GET")
	posRoutes.HandleFunc("/categories", h.categories).Methods("GET")
	posRoutes.HandleFunc("/order", h.order).Methods("GET")
	posRoutes.HandleFunc("/order", h.clearOrder).Methods("DELETE")
	posRoutes.HandleFunc("/order/table", h.selectTable).Methods("PUT")
	posRoutes.HandleFunc("/order/items", h.addItem).Methods("POST")
	posRoutes.HandleFunc("/order/items/{id}", h.updateLine).Methods("PATCH")
	posRoutes.HandleFunc("/order/items/{id}", h.removeItem).Methods("DELETE")
	posRoutes.HandleFunc("/checkout", h.beginCheckout).Methods("POST")
	posRoutes.HandleFunc("/checkout", h.cancelCheckout).Methods("DELETE")
	posRoutes.HandleFunc("/checkout/method", h.chooseMethod).Methods("PUT")
	posRoutes.HandleFunc("/checkout/cash", h.tenderCash).Methods("PUT")
	posRoutes.HandleFunc("/checkout/complete", h.completeCheckout).Methods("POST")
	posRoutes.HandleFunc("/invoices/{id}/ticket", h.kitchenTicket).Methods("GET")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(addr string) error {
	svr.server = &http.Server{
		Addr:              addr,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	if svr.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
