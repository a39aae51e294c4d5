package service

import "sebbi-server/internal/domain"

// sagaStep is one named step of a multi-step external flow. Compensate
// undoes the step's side effect when a later step fails; nil marks a step
// that cannot be undone.
type sagaStep struct {
	name       string
	run        func() error
	compensate func() error
}

// saga executes steps in order. On failure, the compensations of the steps
// completed so far run in reverse order, best-effort: a compensation
// failure is logged and never propagated, the original step error is
// returned unchanged.
type saga struct {
	name   string
	logger domain.Logger
	steps  []sagaStep
}

func newSaga(name string, logger domain.Logger) *saga {
	return &saga{name: name, logger: logger}
}

func (s *saga) add(step sagaStep) {
	s.steps = append(s.steps, step)
}

func (s *saga) run() error {
	for i, step := range s.steps {
		if err := step.run(); err != nil {
			s.compensateCompleted(i - 1)
			return err
		}
	}
	return nil
}

func (s *saga) compensateCompleted(last int) {
	for i := last; i >= 0; i-- {
		step := s.steps[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(); err != nil {
			s.logger.Error("Compensation failed", err, "saga", s.name, "step", step.name)
		} else {
			s.logger.Info("Compensated step", "saga", s.name, "step", step.name)
		}
	}
}
