package clipboard

import "testing"

func TestCopyUnavailable(t *testing.T) {
	if IsAvailable() {
		t.Skip("clipboard is available on this system")
	}
	if err := Copy("text"); err != ErrUnavailable {
		t.Errorf("Copy() error = %v, want ErrUnavailable", err)
	}
}

func TestIsAvailableMatchesCopyCommand(t *testing.T) {
	if got, want := IsAvailable(), copyCommand() != nil; got != want {
		t.Errorf("IsAvailable() = %v, copyCommand() nil = %v", got, !want)
	}
}
