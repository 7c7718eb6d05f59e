package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mesaYaManager/internal/modules/zones/application/port"
	"mesaYaManager/internal/modules/zones/domain"
	"mesaYaManager/internal/platform/metrics"
)

// SettingsUseCase backs the zone assignment screen.
type SettingsUseCase struct {
	api port.UsersAPI
}

func NewSettingsUseCase(api port.UsersAPI) *SettingsUseCase {
	return &SettingsUseCase{api: api}
}

func (uc *SettingsUseCase) Layout(ctx context.Context, token string) (domain.Layout, error) {
	started := time.Now()
	waiters, err := uc.api.ListWaiters(ctx, token)
	metrics.BackendRequestDuration.WithLabelValues("list_users").Observe(time.Since(started).Seconds())
	if err != nil {
		slog.Error("waiters fetch failed", slog.Any("error", err))
		return domain.Layout{}, fmt.Errorf("list waiters: %w", err)
	}
	return domain.BuildLayout(waiters), nil
}

// Assign moves the waiter and returns the refreshed layout.
func (uc *SettingsUseCase) Assign(ctx context.Context, token string, assignment domain.Assignment) (domain.Layout, error) {
	if err := assignment.Validate(); err != nil {
		return domain.Layout{}, err
	}

	started := time.Now()
	err := uc.api.AssignZone(ctx, token, assignment.WaiterID, assignment.Zone)
	metrics.BackendRequestDuration.WithLabelValues("assign_zone").Observe(time.Since(started).Seconds())
	metrics.ZoneAssignmentsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		slog.Error("zone assignment failed", slog.Int64("waiterId", assignment.WaiterID), slog.Any("zone", assignment.Zone), slog.Any("error", err))
		return domain.Layout{}, fmt.Errorf("assign waiter %d: %w", assignment.WaiterID, err)
	}
	slog.Info("zone assignment updated", slog.Int64("waiterId", assignment.WaiterID), slog.Any("zone", assignment.Zone))

	return uc.Layout(ctx, token)
}
