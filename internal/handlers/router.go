// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/ammerola/parts-be/internal/handlers/middleware"
	"github.com/ammerola/parts-be/internal/pkg/metrics"
)

const apiV1 = "/api/v1"

// Routes wires the handlers onto a ServeMux. A nil Tokens disables
// authentication; a nil Health or Metrics skips those endpoints.
type Routes struct {
	Parts   *PartHandler
	Imports *ImportHandler
	Export  *ExportHandler
	Health  *HealthHandler
	Metrics *metrics.Metrics
	Tokens  middleware.TokenVerifier
}

// Register adds every route to mux.
func (rt Routes) Register(mux *http.ServeMux) {
	if rt.Health != nil {
		mux.HandleFunc("GET /health", rt.Health.Health)
		mux.HandleFunc("GET /ready", rt.Health.Readiness)
	}
	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics.Handler())
	}

	mux.Handle("GET "+apiV1+"/parts", rt.readOrAdmin(rt.Parts.ListParts))
	mux.Handle("POST "+apiV1+"/parts", rt.readOrAdmin(rt.Parts.CreatePart))
	mux.Handle("GET "+apiV1+"/parts/stats", rt.readOrAdmin(rt.Parts.Stats))
	mux.Handle("GET "+apiV1+"/parts/export.csv", rt.readOrAdmin(rt.Export.ExportCSV))
	mux.Handle("GET "+apiV1+"/parts/{id}", rt.readOrAdmin(rt.Parts.GetPart))
	mux.Handle("PUT "+apiV1+"/parts/{id}", rt.readOrAdmin(rt.Parts.UpdatePart))
	mux.Handle("PATCH "+apiV1+"/parts/{id}", rt.readOrAdmin(rt.Parts.PatchPart))
	mux.Handle("DELETE "+apiV1+"/parts/{id}", rt.readOrAdmin(rt.Parts.DeletePart))

	mux.Handle("POST "+apiV1+"/parts/import-csv", rt.readOrAdmin(rt.Imports.ImportCSV))
	mux.Handle("GET "+apiV1+"/parts/import-csv/{task_id}", rt.adminOnly(rt.Imports.ImportStatus))
	mux.Handle("POST "+apiV1+"/parts/replenish", rt.readOrAdmin(rt.Imports.Replenish))
}

// readOrAdmin lets any authenticated caller read and requires admin to write.
func (rt Routes) readOrAdmin(h http.HandlerFunc) http.Handler {
	if rt.Tokens == nil {
		return h
	}
	return middleware.Authenticate(rt.Tokens)(middleware.AdminOrReadOnly(h))
}

func (rt Routes) adminOnly(h http.HandlerFunc) http.Handler {
	if rt.Tokens == nil {
		return h
	}
	return middleware.Authenticate(rt.Tokens)(middleware.RequireAdmin(h))
}
