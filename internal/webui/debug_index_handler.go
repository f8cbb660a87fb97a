// Package webui serves a plain HTML debug view of the loaded reference
// datasets. It is meant for development and is not mounted in production.
package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"transitscore.colosseumlihtc.org/internal/app"
)

//go:embed debug_index.html
var templateFS embed.FS

// debugDumpLimit keeps dataset dumps readable. Statewide datasets run to
// hundreds of thousands of records.
const debugDumpLimit = 100

type WebUI struct {
	*app.Application
}

func NewWebUI(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func capCount(total int) int {
	if total > debugDumpLimit {
		return debugDumpLimit
	}
	return total
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "stats":
		data = webUI.RefData.Stats()
		title = "Reference Data - Stats"
	case "stops":
		stops := webUI.RefData.Stops()
		data = stops[:capCount(len(stops))]
		title = "Reference Data - Transit Stops"
	case "hqta":
		areas := webUI.RefData.HQTAAreas()
		data = areas[:capCount(len(areas))]
		title = "Reference Data - HQTA Boundaries"
	case "hqts":
		records := webUI.RefData.HQTSRecords()
		data = records[:capCount(len(records))]
		title = "Reference Data - HQTS Records"
	case "sources":
		data = webUI.DataConfig
		title = "Reference Data - Configured Sources"
	default:
		data = map[string]string{
			"error": "Please use one of the following: stats, stops, hqta, hqts, sources.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
