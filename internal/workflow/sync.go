package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/username/master-calendar/internal/store"
)

// Store is the remote-store surface the coordinator needs
type Store interface {
	ListHolidays(ctx context.Context, token string) ([]store.Holiday, error)
	CreateHoliday(ctx context.Context, token string, h store.Holiday) (store.Holiday, error)
	UpdateHoliday(ctx context.Context, token string, id store.FlexibleID, h store.Holiday) (store.Holiday, error)
	PatchHoliday(ctx context.Context, token string, id store.FlexibleID, h store.Holiday) (store.Holiday, error)
	DeleteHoliday(ctx context.Context, token string, id store.FlexibleID) error

	ListPayrollPeriods(ctx context.Context, token string) ([]store.PayrollPeriod, error)
	CreatePayrollPeriod(ctx context.Context, token string, p store.PayrollPeriod) (store.PayrollPeriod, error)
	UpdatePayrollPeriod(ctx context.Context, token string, id store.FlexibleID, p store.PayrollPeriod) (store.PayrollPeriod, error)
	DeletePayrollPeriod(ctx context.Context, token string, id store.FlexibleID) error
}

// Coordinator sequences mutations against the remote store and keeps the
// in-memory collections in step. Local state changes only after the
// remote call succeeds; a failed call leaves the collections untouched.
// The credential is passed into every mutating call explicitly.
//
// Not safe for concurrent mutation; the UI serializes mutating workflows
// by disabling their controls while one is in flight.
type Coordinator struct {
	store  Store
	panel  *Panel
	logger *zap.Logger

	holidays []store.Holiday
	periods  []store.PayrollPeriod
}

// NewCoordinator creates a coordinator over the given store and panel
func NewCoordinator(s Store, panel *Panel, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		store:  s,
		panel:  panel,
		logger: logger,
	}
}

// Holidays returns the current in-memory holiday collection
func (c *Coordinator) Holidays() []store.Holiday { return c.holidays }

// Periods returns the current in-memory payroll period collection
func (c *Coordinator) Periods() []store.PayrollPeriod { return c.periods }

// Panel returns the edit panel the coordinator closes after mutations
func (c *Coordinator) Panel() *Panel { return c.panel }

// Load performs the two initial fetches. Each failure is swallowed into
// an empty collection; the calendar always renders, with or without
// data.
func (c *Coordinator) Load(ctx context.Context, token string) {
	holidays, err := c.store.ListHolidays(ctx, token)
	if err != nil {
		c.logger.Warn("Could not fetch holidays", zap.Error(err))
		holidays = nil
	}
	c.holidays = holidays

	periods, err := c.store.ListPayrollPeriods(ctx, token)
	if err != nil {
		c.logger.Warn("Could not fetch payroll periods", zap.Error(err))
		periods = nil
	}
	c.periods = periods
}

// SaveHoliday validates the form, issues the remote create or update
// (update when the panel has a persisted holiday selected), applies the
// local mutation, closes the panel, then triggers holiday propagation.
// A PropagationError means the save itself is committed.
func (c *Coordinator) SaveHoliday(ctx context.Context, token string, form HolidayForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if token == "" {
		return store.ErrUnauthenticated
	}

	existing := c.panel.SelectedHoliday()
	if existing != nil && existing.ID.IsZero() {
		existing = nil
	}
	record := form.Record(existing)

	if existing != nil {
		updated, err := c.store.UpdateHoliday(ctx, token, existing.ID, record)
		if err != nil {
			return err
		}
		c.replaceHoliday(updated)
	} else {
		created, err := c.store.CreateHoliday(ctx, token, record)
		if err != nil {
			return err
		}
		c.holidays = append(c.holidays, created)
	}

	c.panel.Close()

	if err := c.PropagateHolidays(ctx, token); err != nil {
		return &PropagationError{Err: err}
	}
	return nil
}

// DeleteHoliday removes a persisted holiday remotely and locally, closes
// the panel, then triggers propagation so employee schedules drop the
// day.
func (c *Coordinator) DeleteHoliday(ctx context.Context, token string, id store.FlexibleID) error {
	if id.IsZero() {
		return &ValidationError{Field: "id", Message: "Holiday is not saved yet."}
	}
	if token == "" {
		return store.ErrUnauthenticated
	}

	if err := c.store.DeleteHoliday(ctx, token, id); err != nil {
		return err
	}

	kept := c.holidays[:0]
	for _, h := range c.holidays {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	c.holidays = kept

	c.panel.Close()

	if err := c.PropagateHolidays(ctx, token); err != nil {
		return &PropagationError{Err: err}
	}
	return nil
}

// SavePayrollPeriod validates and persists a payroll period. Payroll
// mutations do not trigger holiday propagation.
func (c *Coordinator) SavePayrollPeriod(ctx context.Context, token string, form PeriodForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if token == "" {
		return store.ErrUnauthenticated
	}

	existing := c.panel.SelectedPeriod()
	if existing != nil && existing.ID.IsZero() {
		existing = nil
	}
	record := form.Record(existing)

	if existing != nil {
		updated, err := c.store.UpdatePayrollPeriod(ctx, token, existing.ID, record)
		if err != nil {
			return err
		}
		c.replacePeriod(updated)
	} else {
		created, err := c.store.CreatePayrollPeriod(ctx, token, record)
		if err != nil {
			return err
		}
		c.periods = append(c.periods, created)
	}

	c.panel.Close()
	return nil
}

// DeletePayrollPeriod removes a persisted payroll period remotely and
// locally and closes the panel.
func (c *Coordinator) DeletePayrollPeriod(ctx context.Context, token string, id store.FlexibleID) error {
	if id.IsZero() {
		return &ValidationError{Field: "id", Message: "Payroll period is not saved yet."}
	}
	if token == "" {
		return store.ErrUnauthenticated
	}

	if err := c.store.DeletePayrollPeriod(ctx, token, id); err != nil {
		return err
	}

	kept := c.periods[:0]
	for _, p := range c.periods {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.periods = kept

	c.panel.Close()
	return nil
}

// PropagateHolidays pushes holidays out to all employee schedules. The
// backend has no dedicated endpoint for this; its signal handlers fire
// on holiday writes, so the trigger is a PATCH of the first holiday with
// its own unchanged fields. Kept exactly for compatibility with the
// deployed backend.
func (c *Coordinator) PropagateHolidays(ctx context.Context, token string) error {
	if token == "" {
		return store.ErrUnauthenticated
	}

	holidays, err := c.store.ListHolidays(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to fetch holidays for propagation: %w", err)
	}
	if len(holidays) == 0 {
		c.logger.Info("No holidays to propagate")
		return nil
	}

	first := holidays[0]
	if _, err := c.store.PatchHoliday(ctx, token, first.ID, first); err != nil {
		return err
	}

	c.logger.Info("Holidays propagated to employee schedules",
		zap.String("trigger_id", first.ID.String()),
		zap.Int("count", len(holidays)))
	return nil
}

func (c *Coordinator) replaceHoliday(updated store.Holiday) {
	for i := range c.holidays {
		if c.holidays[i].ID == updated.ID {
			c.holidays[i] = updated
			return
		}
	}
	c.holidays = append(c.holidays, updated)
}

func (c *Coordinator) replacePeriod(updated store.PayrollPeriod) {
	for i := range c.periods {
		if c.periods[i].ID == updated.ID {
			c.periods[i] = updated
			return
		}
	}
	c.periods = append(c.periods, updated)
}
