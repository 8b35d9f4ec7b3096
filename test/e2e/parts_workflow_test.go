//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/suite"

	redis_a "github.com/ammerola/parts-be/internal/adapters/redis_adapter"
	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/internal/core/services"
	"github.com/ammerola/parts-be/internal/handlers"
	"github.com/ammerola/parts-be/internal/handlers/middleware"
	"github.com/ammerola/parts-be/internal/pkg/auth"
	"github.com/ammerola/parts-be/internal/workers"
	"github.com/ammerola/parts-be/test/helpers"
)

const importQueue = "imports"

// inlineQueue runs every submitted task through the worker mux before
// Submit returns and remembers the outcome for the status endpoint.
type inlineQueue struct {
	mu      sync.Mutex
	handler asynq.Handler
	tasks   map[string]*ports.TaskStatus
}

func newInlineQueue(handler asynq.Handler) *inlineQueue {
	return &inlineQueue{handler: handler, tasks: make(map[string]*ports.TaskStatus)}
}

func (q *inlineQueue) Submit(ctx context.Context, task ports.Task) (*ports.TaskHandle, error) {
	id := uuid.NewString()
	err := q.handler.ProcessTask(ctx, asynq.NewTask(task.Type, task.Payload))

	now := time.Now().UTC()
	status := &ports.TaskStatus{ID: id, Type: task.Type, Queue: task.Queue, State: "completed", CompletedAt: &now}
	if err != nil {
		status.State = "archived"
		status.LastError = err.Error()
		status.CompletedAt = nil
	}

	q.mu.Lock()
	q.tasks[id] = status
	q.mu.Unlock()

	return &ports.TaskHandle{ID: id, Type: task.Type, Queue: task.Queue, EnqueuedAt: now}, nil
}

func (q *inlineQueue) TaskStatus(_ context.Context, queue, id string) (*ports.TaskStatus, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	status, ok := q.tasks[id]
	if !ok || status.Queue != queue {
		return nil, ports.ErrTaskNotFound
	}
	return status, nil
}

type PartsE2ESuite struct {
	suite.Suite
	server     *httptest.Server
	client     *http.Client
	baseURL    string
	store      *helpers.PartStore
	testRedis  *helpers.TestRedis
	adminToken string
	staffToken string
}

func (s *PartsE2ESuite) SetupTest() {
	s.store = helpers.NewPartStore()
	s.testRedis = helpers.SetupTestRedis(s.T())
	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL
}

func (s *PartsE2ESuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *PartsE2ESuite) startTestServer() *httptest.Server {
	cfg := helpers.LoadTestConfig()
	log := helpers.TestLogger()

	cache := redis_a.NewCache(s.testRedis.Client, cfg.Redis.Namespace, log)
	partService := services.NewPartService(s.store, cache, domain.DefaultReplenishMinimum, log)
	importer := services.NewCSVImporter(s.store, cache, log)
	replenisher := services.NewStockReplenisher(s.store, cache, log)

	mux := workers.NewServeMux(
		workers.NewImportProcessor(importer, nil, log),
		workers.NewReplenishProcessor(replenisher, nil, log),
		log,
	)
	queue := newInlineQueue(mux)

	tokens := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, cfg.Security.JWTExpiration)
	var err error
	s.adminToken, err = tokens.Issue("admin-1", auth.RoleAdmin)
	s.Require().NoError(err)
	s.staffToken, err = tokens.Issue("reader-1", auth.RoleReader)
	s.Require().NoError(err)

	router := http.NewServeMux()
	handlers.Routes{
		Parts:   handlers.NewPartHandler(partService, log),
		Imports: handlers.NewImportHandler(queue, queue, nil, 1<<20, importQueue, log),
		Export:  handlers.NewExportHandler(partService, log),
		Tokens:  tokens,
	}.Register(router)

	var handler http.Handler = router
	handler = middleware.Logger(log)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(log)(handler)

	return httptest.NewServer(handler)
}

func (s *PartsE2ESuite) TestPartLifecycle() {
	resp := s.makeRequest(http.MethodPost, "/api/v1/parts", s.adminToken, map[string]any{
		"name":        "Oil Filter",
		"description": "Spin-on filter",
		"price":       "12.499",
		"quantity":    4,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("Location"))

	var created domain.Part
	s.decodeResponse(resp, &created)
	s.Equal("Oil Filter", created.Name)
	s.Equal("12.5", created.Price.String())

	resp = s.makeRequest(http.MethodGet, "/api/v1/parts/"+created.ID.String(), s.staffToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var fetched domain.Part
	s.decodeResponse(resp, &fetched)
	s.Equal(created.ID, fetched.ID)

	resp = s.makeRequest(http.MethodPatch, "/api/v1/parts/"+created.ID.String(), s.adminToken, map[string]any{
		"quantity": 9,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var patched domain.Part
	s.decodeResponse(resp, &patched)
	s.Equal(9, patched.Quantity)
	s.Equal("Spin-on filter", patched.Description)

	resp = s.makeRequest(http.MethodGet, "/api/v1/parts?search=oil", s.staffToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var page ports.ListResult
	s.decodeResponse(resp, &page)
	s.Equal(int64(1), page.Count)

	resp = s.makeRequest(http.MethodDelete, "/api/v1/parts/"+created.ID.String(), s.adminToken, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodGet, "/api/v1/parts/"+created.ID.String(), s.adminToken, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *PartsE2ESuite) TestCSVImportWorkflow() {
	resp := s.makeRequest(http.MethodPost, "/api/v1/parts", s.adminToken, map[string]any{
		"name": "Brake Pad", "description": "old", "price": "30.00", "quantity": 1,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Warm the stats cache so the import has something to invalidate.
	resp = s.makeRequest(http.MethodGet, "/api/v1/parts/stats", s.staffToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var before domain.StockStats
	s.decodeResponse(resp, &before)
	s.Equal(int64(1), before.TotalParts)

	csvText := "\ufeffname,description,price,quantity\n" +
		"Brake Pad,Front set,30.00,7\n" +
		"Brake Pad,Rear set,25.50,2\n" +
		",no name,1.00,1\n" +
		"Spark Plug,Iridium,-4.00,8\n"

	resp = s.uploadFile("/api/v1/parts/import-csv", s.adminToken, "parts.csv", []byte(csvText))
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)
	var scheduled struct {
		Detail string `json:"detail"`
		TaskID string `json:"task_id"`
		Queue  string `json:"queue"`
	}
	s.decodeResponse(resp, &scheduled)
	s.Equal("import scheduled", scheduled.Detail)
	s.Equal(importQueue, scheduled.Queue)

	matches := s.store.FindByName("Brake Pad")
	s.Require().Len(matches, 2)
	s.Equal(7, matches[0].Quantity)
	s.Equal("Front set", matches[0].Description)
	s.Equal("25.5", matches[1].Price.String())
	s.Empty(s.store.FindByName("Spark Plug"))

	resp = s.makeRequest(http.MethodGet, "/api/v1/parts/stats", s.staffToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var after domain.StockStats
	s.decodeResponse(resp, &after)
	s.Equal(int64(2), after.TotalParts)
	s.Equal(int64(9), after.TotalQuantity)

	resp = s.makeRequest(http.MethodGet, "/api/v1/parts/import-csv/"+scheduled.TaskID, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var status ports.TaskStatus
	s.decodeResponse(resp, &status)
	s.Equal("completed", status.State)

	resp = s.makeRequest(http.MethodGet, "/api/v1/parts/import-csv/"+scheduled.TaskID, s.staffToken, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func (s *PartsE2ESuite) TestMalformedImportIsArchived() {
	resp := s.uploadFile("/api/v1/parts/import-csv", s.adminToken, "broken.csv",
		[]byte("name,price\n"+strings.Repeat("x", 200<<10)+",30\n"))
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)
	var scheduled struct {
		TaskID string `json:"task_id"`
	}
	s.decodeResponse(resp, &scheduled)

	resp = s.makeRequest(http.MethodGet, "/api/v1/parts/import-csv/"+scheduled.TaskID, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var status ports.TaskStatus
	s.decodeResponse(resp, &status)
	s.Equal("archived", status.State)
	s.Contains(status.LastError, domain.ErrMalformedCSV.Error())
	s.Empty(s.store.Snapshot())
}

func (s *PartsE2ESuite) TestReplenishAndExport() {
	for _, p := range []map[string]any{
		{"name": "Wiper", "price": "8.00", "quantity": 2},
		{"name": "Fuse, 10A", "price": "0.75", "quantity": 40},
	} {
		resp := s.makeRequest(http.MethodPost, "/api/v1/parts", s.adminToken, p)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.makeRequest(http.MethodPost, "/api/v1/parts/replenish?minimum=5", s.adminToken, nil)
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	s.Equal(5, s.store.FindByName("Wiper")[0].Quantity)
	s.Equal(40, s.store.FindByName("Fuse, 10A")[0].Quantity)

	resp = s.makeRequest(http.MethodGet, "/api/v1/parts/export.csv", s.staffToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), "text/csv")
	defer resp.Body.Close()

	records, err := csv.NewReader(resp.Body).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal([]string{"name", "description", "price", "quantity"}, records[0])

	byName := make(map[string][]string)
	for _, r := range records[1:] {
		byName[r[0]] = r
	}
	s.Equal([]string{"Wiper", "", "8.00", "5"}, byName["Wiper"])
	s.Equal([]string{"Fuse, 10A", "", "0.75", "40"}, byName["Fuse, 10A"])
}

func (s *PartsE2ESuite) TestAuthentication() {
	resp := s.makeRequest(http.MethodGet, "/api/v1/parts", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("WWW-Authenticate"))
	resp.Body.Close()

	resp = s.makeRequest(http.MethodGet, "/api/v1/parts", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodPost, "/api/v1/parts", s.staffToken, map[string]any{
		"name": "Bulb", "price": "2.00", "quantity": 1,
	})
	s.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.uploadFile("/api/v1/parts/import-csv", s.staffToken, "parts.csv", []byte("name\nBulb\n"))
	s.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	s.Empty(s.store.Snapshot())
}

func (s *PartsE2ESuite) makeRequest(method, path, token string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *PartsE2ESuite) uploadFile(path, token, filename string, content []byte) *http.Response {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, &body)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *PartsE2ESuite) decodeResponse(resp *http.Response, v any) {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		s.Require().NoError(fmt.Errorf("decode %s: %w", resp.Request.URL.Path, err))
	}
}

func TestPartsE2E(t *testing.T) {
	suite.Run(t, new(PartsE2ESuite))
}
