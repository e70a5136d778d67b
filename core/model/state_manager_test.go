package model

import (
	"sync"
	"testing"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
)

func TestStateManagerLifecycle(t *testing.T) {
	s := NewStateManager()
	if s.IsFitted() {
		t.Fatal("new state should not be fitted")
	}

	err := s.RequireFitted("Apriori", "Result")
	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}
	if nf.ModelName != "Apriori" || nf.Method != "Result" {
		t.Errorf("unexpected error fields: %+v", nf)
	}

	s.SetFitted(4, 3)
	if err := s.RequireFitted("Apriori", "Result"); err != nil {
		t.Errorf("unexpected error after fit: %v", err)
	}
	if n, m := s.Dimensions(); n != 4 || m != 3 {
		t.Errorf("Dimensions() = (%d, %d), want (4, 3)", n, m)
	}

	s.Reset()
	if s.IsFitted() {
		t.Error("Reset should clear the fitted flag")
	}
	if n, m := s.Dimensions(); n != 0 || m != 0 {
		t.Errorf("Reset should clear dimensions, got (%d, %d)", n, m)
	}
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	s := NewStateManager()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetFitted(i, i)
			_ = s.IsFitted()
			_, _ = s.Dimensions()
		}(i)
	}
	wg.Wait()
	if !s.IsFitted() {
		t.Error("expected fitted after concurrent SetFitted calls")
	}
}
