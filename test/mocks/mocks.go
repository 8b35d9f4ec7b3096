// Package mocks holds gomock doubles for the ports.
package mocks

//go:generate mockgen -source=../../internal/core/ports/part_repository.go -destination=part_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/part_service.go -destination=part_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/task_queue.go -destination=task_queue_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/archive.go -destination=archive_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_mock.go -package=mocks
