// Package greeting serves the application's single public route.
package greeting

import (
	"io"
	"net/http"
)

// Message is the body returned for GET /.
const Message = "Hello, Future Cloud Solution Architect! This is a simple app for P3-Deploy App to Azure App Service. I am so happy to see you here! :)"

// Handler writes Message with a 200 status.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, Message)
}

// NewMux returns a mux with only the greeting route registered. Every other
// path gets the mux's 404 and other methods on / get its 405.
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", Handler)
	return mux
}
