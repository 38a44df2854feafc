package commands

import (
	"errors"
	"testing"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{"simple", []string{"3"}, 3, ""},
		{"joined args", []string{" 7 "}, 7, ""},
		{"missing", nil, 0, "task number required"},
		{"not a number", []string{"abc"}, 0, "invalid task number: abc"},
		{"zero", []string{"0"}, 0, "task number out of range: 0"},
		{"negative", []string{"-2"}, 0, "task number out of range: -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTaskRef(tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseTaskRefMissingIsSentinel(t *testing.T) {
	_, err := parseTaskRef(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}
