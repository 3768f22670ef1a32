// Package server wires the HTTP collaborator interface: routing, method
// dispatch, panic recovery, and request logging.
package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tmahefa/facturier/internal/handlers"
	"github.com/tmahefa/facturier/internal/httpx"
	"github.com/tmahefa/facturier/internal/services"
	"github.com/tmahefa/facturier/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares
// applied.
func New(st store.Store, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	ledger := services.NewStockLedger(st)
	directory := services.NewClientDirectory(st)
	invoiceSvc := services.NewInvoiceService(st, ledger, directory)
	backupSvc := services.NewBackupService(st)

	ih := handlers.NewInvoiceHandler(invoiceSvc)
	ch := handlers.NewClientHandler(directory)
	sh := handlers.NewStockHandler(ledger)
	settingsHandler := handlers.NewSettingsHandler(st)
	bh := handlers.NewBackupHandler(backupSvc)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if pinger, ok := st.(interface{ Ping() error }); ok {
			if err := pinger.Ping(); err != nil {
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("/invoices", methods(map[string]http.HandlerFunc{
		http.MethodGet:  ih.List,
		http.MethodPost: ih.Create,
	}))
	mux.Handle("/invoices/get", methods(map[string]http.HandlerFunc{http.MethodGet: ih.Get}))
	mux.Handle("/invoices/update", methods(map[string]http.HandlerFunc{http.MethodPost: ih.Update}))
	mux.Handle("/invoices/delete", methods(map[string]http.HandlerFunc{http.MethodPost: ih.Delete}))
	mux.Handle("/invoices/confirm", methods(map[string]http.HandlerFunc{http.MethodPost: ih.Confirm}))
	mux.Handle("/invoices/next-number", methods(map[string]http.HandlerFunc{http.MethodGet: ih.NextNumber}))
	mux.Handle("/stats", methods(map[string]http.HandlerFunc{http.MethodGet: ih.Stats}))

	mux.Handle("/clients", methods(map[string]http.HandlerFunc{
		http.MethodGet:  ch.List,
		http.MethodPost: ch.Create,
	}))
	mux.Handle("/clients/update", methods(map[string]http.HandlerFunc{http.MethodPost: ch.Update}))
	mux.Handle("/clients/delete", methods(map[string]http.HandlerFunc{http.MethodPost: ch.Delete}))

	mux.Handle("/stock", methods(map[string]http.HandlerFunc{
		http.MethodGet:  sh.List,
		http.MethodPost: sh.Create,
	}))
	mux.Handle("/stock/update", methods(map[string]http.HandlerFunc{http.MethodPost: sh.Update}))
	mux.Handle("/stock/delete", methods(map[string]http.HandlerFunc{http.MethodPost: sh.Delete}))
	mux.Handle("/stock/add-quantity", methods(map[string]http.HandlerFunc{http.MethodPost: sh.AddQuantity}))

	mux.Handle("/settings", methods(map[string]http.HandlerFunc{
		http.MethodGet: settingsHandler.Get,
		http.MethodPut: settingsHandler.Save,
	}))

	mux.Handle("/backup/export", methods(map[string]http.HandlerFunc{http.MethodGet: bh.Export}))
	mux.Handle("/backup/import", methods(map[string]http.HandlerFunc{http.MethodPost: bh.Import}))
	mux.Handle("/backup/reset", methods(map[string]http.HandlerFunc{http.MethodPost: bh.Reset}))

	return withRecover(withLogging(mux, log), log)
}

// methods dispatches by HTTP method, answering 405 with an Allow header
// otherwise.
func methods(routes map[string]http.HandlerFunc) http.Handler {
	allow := ""
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		if _, ok := routes[m]; ok {
			if allow != "" {
				allow += ","
			}
			allow += m
		}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.Method]; ok {
			h(w, r)
			return
		}
		w.Header().Set("Allow", allow)
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func withRecover(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
