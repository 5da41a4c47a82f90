package usecase_test

import (
	"context"
	"errors"
	"testing"

	"job-portal-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	report := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok}).
		WithOptional("redis", ok).
		Check(context.Background())
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, map[string]string{"database": "ok", "redis": "ok"}, report.Checks)

	report = usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok}).
		WithOptional("redis", down).
		Check(context.Background())
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "connection refused", report.Checks["redis"])

	report = usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": down}).
		WithOptional("redis", down).
		Check(context.Background())
	assert.Equal(t, "unavailable", report.Status)
}
