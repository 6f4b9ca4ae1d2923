package handlers

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

// The three kiosk screens are plain polling views; every interaction they
// perform goes through the /api endpoints.

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderPage(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, nil); err != nil {
		log.Printf("failed to render %s: %v", name, err)
	}
}

// TerminalPageHandler serves the cashier sale terminal.
func TerminalPageHandler(w http.ResponseWriter, _ *http.Request) {
	renderPage(w, "terminal.html")
}

// KitchenPageHandler serves the kitchen display.
func KitchenPageHandler(w http.ResponseWriter, _ *http.Request) {
	renderPage(w, "cocina.html")
}

// CashierBoardPageHandler serves the cashier's order board.
func CashierBoardPageHandler(w http.ResponseWriter, _ *http.Request) {
	renderPage(w, "caja_pedidos.html")
}
