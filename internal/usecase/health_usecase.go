package usecase

import (
	"context"
	"time"
)

// HealthCheck probes one dependency. nil means healthy.
type HealthCheck func(ctx context.Context) error

type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthReport
}

// HealthChecker aggregates dependency probes into one HealthReport.
type HealthChecker struct {
	checks   map[string]HealthCheck
	optional map[string]bool
}

// NewHealthUsecase takes required checks; optional ones are added with
// WithOptional and only degrade the report instead of failing it.
func NewHealthUsecase(checks map[string]HealthCheck) *HealthChecker {
	if checks == nil {
		checks = map[string]HealthCheck{}
	}
	return &HealthChecker{checks: checks, optional: map[string]bool{}}
}

func (u *HealthChecker) WithOptional(name string, check HealthCheck) *HealthChecker {
	u.checks[name] = check
	u.optional[name] = true
	return u
}

// Check runs every probe with a short timeout. Status is "ok", "degraded"
// when only optional probes fail, or "unavailable".
func (u *HealthChecker) Check(ctx context.Context) HealthReport {
	report := HealthReport{Status: "ok", Checks: make(map[string]string, len(u.checks))}

	for name, check := range u.checks {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := check(probeCtx)
		cancel()

		if err == nil {
			report.Checks[name] = "ok"
			continue
		}
		report.Checks[name] = err.Error()
		if u.optional[name] {
			if report.Status == "ok" {
				report.Status = "degraded"
			}
		} else {
			report.Status = "unavailable"
		}
	}
	return report
}
