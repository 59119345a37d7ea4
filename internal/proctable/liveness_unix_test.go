//go:build !windows

package proctable

import (
	"os"
	"testing"
)

func TestAliveSelf(t *testing.T) {
	alive, err := Alive(os.Getpid())
	if err != nil {
		t.Fatalf("alive: %v", err)
	}
	if !alive {
		t.Fatal("own pid reported dead")
	}
}

func TestAliveNonexistent(t *testing.T) {
	// Far beyond the default kernel.pid_max, so the kernel reports ESRCH.
	alive, err := Alive(1 << 30)
	if err != nil {
		t.Fatalf("alive: %v", err)
	}
	if alive {
		t.Fatal("sentinel pid reported alive")
	}
}
