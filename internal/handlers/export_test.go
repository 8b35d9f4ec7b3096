// internal/handlers/export_test.go
package handlers_test

import (
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/handlers"
	"github.com/ammerola/parts-be/test/helpers"
	"github.com/ammerola/parts-be/test/mocks"
)

func TestExportHandler_ExportCSV(t *testing.T) {
	parts := []*domain.Part{
		helpers.CreateTestPart(),
		helpers.CreateTestPart(func(p *domain.Part) {
			p.Name = "Wiper, rear"
			p.Description = `12" blade`
			p.Price = decimal.RequireFromString("7.5")
			p.Quantity = 0
		}),
	}

	ctrl := gomock.NewController(t)
	service := mocks.NewMockPartService(ctrl)
	service.EXPECT().Export(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, fn func(*domain.Part) error) error {
			for _, p := range parts {
				if err := fn(p); err != nil {
					return err
				}
			}
			return nil
		})
	handler := handlers.NewExportHandler(service, helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.ExportCSV(w, httptest.NewRequest(http.MethodGet, "/api/v1/parts/export.csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="parts-\d{8}\.csv"$`, w.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "description", "price", "quantity"},
		{"Brake Pad", "Front brake pad set", "30.00", "3"},
		{"Wiper, rear", `12" blade`, "7.50", "0"},
	}, records)
}

func TestExportHandler_ExportCSV_EmptyCatalogue(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockPartService(ctrl)
	service.EXPECT().Export(gomock.Any(), gomock.Any()).Return(nil)
	handler := handlers.NewExportHandler(service, helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.ExportCSV(w, httptest.NewRequest(http.MethodGet, "/api/v1/parts/export.csv", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "name,description,price,quantity\n", w.Body.String())
}

func TestExportHandler_ExportCSV_StopsOnServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockPartService(ctrl)
	service.EXPECT().Export(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, fn func(*domain.Part) error) error {
			require.NoError(t, fn(helpers.CreateTestPart()))
			return errors.New("cursor closed")
		})
	handler := handlers.NewExportHandler(service, helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.ExportCSV(w, httptest.NewRequest(http.MethodGet, "/api/v1/parts/export.csv", nil))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2)
}
