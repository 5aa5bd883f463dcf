package httpserver

import (
	"net/http"
	"time"

	"ploshtadka/internal/platform/config"
)

// writeGrace lets a handler whose context expired still write its error
// response before the connection deadline.
const writeGrace = 5 * time.Second

// New builds the API server. Its write deadline trails cfg.RequestTimeout.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + writeGrace,
		IdleTimeout:       120 * time.Second,
	}
}
