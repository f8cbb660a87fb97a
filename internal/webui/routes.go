package webui

import "net/http"

func (webUI *WebUI) SetWebUIRoutes(mux *http.ServeMux) {
	// Go 1.21's ServeMux has no method patterns; "GET /debug/" would
	// register a dead host-based route instead of restricting the method.
	mux.HandleFunc("/debug/", webUI.debugIndexHandler)
}
