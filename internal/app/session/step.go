package session

import (
	"context"
	"errors"

	"farmverse/internal/app/ports"
	"farmverse/internal/domain/farm"
	"farmverse/internal/domain/world"
)

// Step advances the session by dt seconds. The order inside a frame is
// fixed: action countdowns commit first, then movement, then the day cycle
// and clock. Returned errors are journaling or autosave failures; the
// session state is valid regardless.
func (s *Session) Step(ctx context.Context, dt float64) error {
	var errs []error

	for _, done := range s.actuator.Tick(dt) {
		applied := s.farm.Commit(done)
		if done.Class == farm.ClassTool {
			s.farm.Player.SetIdle()
		}
		if err := s.appendEvents(ctx, s.newEvent(farm.EventActionCommitted, map[string]any{
			"class":   string(done.Class),
			"id":      done.ID,
			"target":  map[string]any{"x": done.Target.X, "y": done.Target.Y},
			"applied": applied,
		})); err != nil {
			errs = append(errs, err)
		}
	}

	if !s.actuator.Busy() && (s.heldX != 0 || s.heldY != 0) {
		s.farm.MovePlayer(s.heldX, s.heldY, dt)
		s.farm.Player.Status = string(s.farm.Player.Facing)
	} else if !s.actuator.Busy() {
		s.farm.Player.SetIdle()
	}

	if s.cycle.Tick(dt) {
		if err := s.advanceDay(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.clock.Tick(dt)

	return errors.Join(errs...)
}

// advanceDay applies the day boundary: bump the counter, grow watered
// crops, dry the grid, roll tomorrow's weather, and autosave. A rainy roll
// waters the whole grid immediately. Autosave retries the default slot once
// before giving up; a failed save never unwinds the day change.
func (s *Session) advanceDay(ctx context.Context) error {
	soil := s.farm.Soil

	s.farm.Day++
	soil.UpdatePlants()
	soil.RemoveWater()

	raining := world.RollRain(s.rand)
	soil.SetRaining(raining)
	if raining {
		soil.WaterAll()
	}
	s.clock.Reset()
	if s.metrics != nil {
		s.metrics.RecordDayAdvance()
	}

	path, saveErr := s.autosave(ctx)
	s.recordProgress(ctx)

	journalErr := s.appendEvents(ctx, s.newEvent(farm.EventDayAdvanced, map[string]any{
		"day":     s.farm.Day,
		"raining": raining,
		"saved":   saveErr == nil,
		"path":    path,
	}))
	return errors.Join(saveErr, journalErr)
}

// autosave persists into the bound slot, falling back to the default slot
// once when the first write fails.
func (s *Session) autosave(ctx context.Context) (string, error) {
	snapshot := s.farm.Snapshot()

	path, err := s.saves.Save(ctx, s.currentSlot, snapshot)
	if s.metrics != nil {
		s.metrics.RecordSave(err == nil)
	}
	if err == nil {
		return path, nil
	}

	var saveErr *ports.SaveError
	if !errors.As(err, &saveErr) {
		return "", err
	}

	if s.metrics != nil {
		s.metrics.RecordSaveRetry()
	}
	path, retryErr := s.saves.Save(ctx, s.defaultSlot, snapshot)
	if s.metrics != nil {
		s.metrics.RecordSave(retryErr == nil)
	}
	if retryErr != nil {
		return "", errors.Join(err, retryErr)
	}
	s.currentSlot = s.defaultSlot
	return path, nil
}
