package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/services"
	"github.com/ammerola/parts-be/internal/workers"
	"github.com/ammerola/parts-be/test/helpers"
	"github.com/ammerola/parts-be/test/mocks"
)

func importTask(t *testing.T, payload workers.ImportCSVPayload) *asynq.Task {
	t.Helper()
	task, err := workers.NewImportCSVTask(payload, "default")
	require.NoError(t, err)
	return asynq.NewTask(task.Type, task.Payload)
}

func TestImportProcessor_ProcessTask(t *testing.T) {
	tests := []struct {
		name          string
		task          func(t *testing.T) *asynq.Task
		setupMocks    func(importer *mocks.MockPartImporter)
		expectedError bool
		skipRetry     bool
	}{
		{
			name: "successful_import",
			task: func(t *testing.T) *asynq.Task {
				return importTask(t, workers.ImportCSVPayload{CSVText: "name,price\nA,1\n", Filename: "a.csv"})
			},
			setupMocks: func(importer *mocks.MockPartImporter) {
				importer.EXPECT().Import(gomock.Any(), "name,price\nA,1\n").
					Return(&domain.ImportResult{Created: 1, Total: 1}, nil)
			},
		},
		{
			name: "malformed_csv_is_not_retried",
			task: func(t *testing.T) *asynq.Task {
				return importTask(t, workers.ImportCSVPayload{CSVText: "name\n" + strings.Repeat("x", 200<<10)})
			},
			setupMocks: func(importer *mocks.MockPartImporter) {
				importer.EXPECT().Import(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: field too large", domain.ErrMalformedCSV))
			},
			expectedError: true,
			skipRetry:     true,
		},
		{
			name: "repository_failure_is_retried",
			task: func(t *testing.T) *asynq.Task {
				return importTask(t, workers.ImportCSVPayload{CSVText: "name\nA\n"})
			},
			setupMocks: func(importer *mocks.MockPartImporter) {
				importer.EXPECT().Import(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection reset"))
			},
			expectedError: true,
		},
		{
			name: "invalid_payload",
			task: func(t *testing.T) *asynq.Task {
				return asynq.NewTask(workers.TypeImportCSV, []byte("{not json"))
			},
			setupMocks:    func(importer *mocks.MockPartImporter) {},
			expectedError: true,
			skipRetry:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			importer := mocks.NewMockPartImporter(ctrl)
			tt.setupMocks(importer)

			processor := workers.NewImportProcessor(importer, nil, helpers.TestLogger())
			err := processor.ProcessTask(context.Background(), tt.task(t))

			if !tt.expectedError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}

func TestReplenishProcessor_ProcessTask(t *testing.T) {
	tests := []struct {
		name          string
		payload       []byte
		setupMocks    func(r *mocks.MockStockReplenisher)
		expectedError bool
		skipRetry     bool
	}{
		{
			name:    "explicit_minimum",
			payload: []byte(`{"minimum":25}`),
			setupMocks: func(r *mocks.MockStockReplenisher) {
				r.EXPECT().Replenish(gomock.Any(), 25).Return(&domain.ReplenishResult{Minimum: 25, UpdatedCount: 3}, nil)
			},
		},
		{
			name:    "empty_payload_uses_default",
			payload: nil,
			setupMocks: func(r *mocks.MockStockReplenisher) {
				r.EXPECT().Replenish(gomock.Any(), domain.DefaultReplenishMinimum).
					Return(&domain.ReplenishResult{Minimum: 10}, nil)
			},
		},
		{
			name:    "negative_minimum_is_not_retried",
			payload: []byte(`{"minimum":-1}`),
			setupMocks: func(r *mocks.MockStockReplenisher) {
				r.EXPECT().Replenish(gomock.Any(), -1).
					Return(nil, domain.NewValidationError("minimum", "must not be negative"))
			},
			expectedError: true,
			skipRetry:     true,
		},
		{
			name:    "repository_failure_is_retried",
			payload: []byte(`{"minimum":10}`),
			setupMocks: func(r *mocks.MockStockReplenisher) {
				r.EXPECT().Replenish(gomock.Any(), 10).Return(nil, errors.New("timeout"))
			},
			expectedError: true,
		},
		{
			name:          "invalid_payload",
			payload:       []byte(`"ten"`),
			setupMocks:    func(r *mocks.MockStockReplenisher) {},
			expectedError: true,
			skipRetry:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			replenisher := mocks.NewMockStockReplenisher(ctrl)
			tt.setupMocks(replenisher)

			processor := workers.NewReplenishProcessor(replenisher, nil, helpers.TestLogger())
			err := processor.ProcessTask(context.Background(), asynq.NewTask(workers.TypeReplenishStock, tt.payload))

			if !tt.expectedError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}

func TestServeMux_RoutesToProcessors(t *testing.T) {
	store := helpers.NewPartStore(helpers.CreateTestPart(func(p *domain.Part) { p.Quantity = 2 }))
	log := helpers.TestLogger()

	mux := workers.NewServeMux(
		workers.NewImportProcessor(services.NewCSVImporter(store, nil, log), nil, log),
		workers.NewReplenishProcessor(services.NewStockReplenisher(store, nil, log), nil, log),
		log,
	)

	task, err := workers.NewImportCSVTask(workers.ImportCSVPayload{CSVText: "name,price,quantity\nWiper,5.00,1\n"}, "default")
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(task.Type, task.Payload)))
	require.Len(t, store.FindByName("Wiper"), 1)

	task, err = workers.NewReplenishTask(10, "default")
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(task.Type, task.Payload)))

	for _, p := range store.Snapshot() {
		assert.Equal(t, 10, p.Quantity, p.Name)
	}

	err = mux.ProcessTask(context.Background(), asynq.NewTask("parts:unknown", nil))
	assert.Error(t, err)
}

func TestTaskConstructors(t *testing.T) {
	task, err := workers.NewImportCSVTask(workers.ImportCSVPayload{CSVText: "x", Filename: "f.csv"}, "critical")
	require.NoError(t, err)
	assert.Equal(t, workers.TypeImportCSV, task.Type)
	assert.Equal(t, "critical", task.Queue)
	assert.JSONEq(t, `{"csv_text":"x","filename":"f.csv"}`, string(task.Payload))

	task, err = workers.NewReplenishTask(10, "default")
	require.NoError(t, err)
	assert.Equal(t, workers.TypeReplenishStock, task.Type)
	assert.JSONEq(t, `{"minimum":10}`, string(task.Payload))

	var result workers.ImportCSVResult
	result.Created = 2
	result.Filename = "a.csv"
	b, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"created":2,"updated":0,"skipped":0,"total":0,"filename":"a.csv","duration_ms":0}`, string(b))
}
