// Package web serves the embedded entry page. The client keeps the whole
// flow stateless server-side: it carries the disagreement text and the
// collected answers forward between the two API calls itself.
package web

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexPage []byte

// Index serves the entry page.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexPage)
}
