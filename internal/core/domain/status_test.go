package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Completed", "Rejected"} {
		if _, err := ParseStatus(valid); err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", valid, err)
		}
	}

	for _, invalid := range []string{"", "pending", "Done", "COMPLETED", "Cancelled"} {
		if _, err := ParseStatus(invalid); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseStatus(%q) error = %v, want ErrUnknownStatus", invalid, err)
		}
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		current RequestStatus
		next    RequestStatus
		wantErr error
	}{
		{"pending to completed", StatusPending, StatusCompleted, nil},
		{"pending to rejected", StatusPending, StatusRejected, nil},
		{"pending to pending no-op", StatusPending, StatusPending, ErrInvalidTransition},
		{"completed is terminal", StatusCompleted, StatusRejected, ErrInvalidTransition},
		{"repeat completed", StatusCompleted, StatusCompleted, ErrInvalidTransition},
		{"rejected is terminal", StatusRejected, StatusCompleted, ErrInvalidTransition},
		{"rejected back to pending", StatusRejected, StatusPending, ErrInvalidTransition},
		{"unknown current", RequestStatus("Waiting"), StatusCompleted, ErrUnknownStatus},
		{"unknown next", StatusPending, RequestStatus("Done"), ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.current, tt.next)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Transition(%s, %s) error = %v, want %v", tt.current, tt.next, err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.next {
				t.Errorf("Transition(%s, %s) = %s, want %s", tt.current, tt.next, got, tt.next)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() {
		t.Error("Pending should not be terminal")
	}
	if !StatusCompleted.IsTerminal() {
		t.Error("Completed should be terminal")
	}
	if !StatusRejected.IsTerminal() {
		t.Error("Rejected should be terminal")
	}
}
