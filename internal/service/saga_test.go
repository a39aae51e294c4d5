package service

import (
	"errors"
	"testing"
)

func TestSaga_RunAllSteps(t *testing.T) {
	var order []string
	sg := newSaga("test", NewMockLogger())
	sg.add(sagaStep{
		name: "first",
		run: func() error {
			order = append(order, "first")
			return nil
		},
	})
	sg.add(sagaStep{
		name: "second",
		run: func() error {
			order = append(order, "second")
			return nil
		},
	})

	if err := sg.run(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected steps to run in order, got %v", order)
	}
}

func TestSaga_CompensatesInReverse(t *testing.T) {
	var compensated []string
	stepErr := errors.New("third step failed")

	sg := newSaga("test", NewMockLogger())
	sg.add(sagaStep{
		name: "first",
		run:  func() error { return nil },
		compensate: func() error {
			compensated = append(compensated, "first")
			return nil
		},
	})
	sg.add(sagaStep{
		name: "second",
		run:  func() error { return nil },
		compensate: func() error {
			compensated = append(compensated, "second")
			return nil
		},
	})
	sg.add(sagaStep{
		name: "third",
		run:  func() error { return stepErr },
	})

	err := sg.run()
	if !errors.Is(err, stepErr) {
		t.Fatalf("Expected the original step error, got %v", err)
	}
	if len(compensated) != 2 || compensated[0] != "second" || compensated[1] != "first" {
		t.Errorf("Expected reverse-order compensation, got %v", compensated)
	}
}

func TestSaga_CompensationFailureDoesNotMaskError(t *testing.T) {
	stepErr := errors.New("second step failed")

	sg := newSaga("test", NewMockLogger())
	sg.add(sagaStep{
		name:       "first",
		run:        func() error { return nil },
		compensate: func() error { return errors.New("compensation failed") },
	})
	sg.add(sagaStep{
		name: "second",
		run:  func() error { return stepErr },
	})

	err := sg.run()
	if !errors.Is(err, stepErr) {
		t.Fatalf("Expected the original step error, got %v", err)
	}
}

func TestSaga_FirstStepFailureCompensatesNothing(t *testing.T) {
	compensated := false

	sg := newSaga("test", NewMockLogger())
	sg.add(sagaStep{
		name: "first",
		run:  func() error { return errors.New("boom") },
		compensate: func() error {
			compensated = true
			return nil
		},
	})

	if err := sg.run(); err == nil {
		t.Fatal("Expected error from failing step")
	}
	if compensated {
		t.Error("Expected no compensation when the failing step itself did not complete")
	}
}
