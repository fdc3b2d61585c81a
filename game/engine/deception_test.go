package engine

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		current  HeadKind
		previous HeadKind
		want     HeadKind
		wantErr  error
	}{
		{"truth stands alone", Truth, NoHead, Truth, nil},
		{"lie stands alone", Lie, Truth, Lie, nil},
		{"repeat after truth", Repeat, Truth, Truth, nil},
		{"repeat after lie", Repeat, Lie, Lie, nil},
		{"repeat with no previous", Repeat, NoHead, NoHead, ErrRepeatWithoutPrecedent},
		{"repeat after unresolved repeat", Repeat, Repeat, NoHead, ErrUnresolvedPrecedent},
		{"no current head", NoHead, Truth, NoHead, ErrUnknownHeadKind},
		{"out of range", HeadKind(9), Truth, NoHead, ErrUnknownHeadKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.current, tt.previous)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%s, %s) = %s, want %s", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestResolveChain(t *testing.T) {
	tests := []struct {
		name  string
		kinds []HeadKind
		want  []bool
	}{
		{
			name:  "repeats carry the nearest ancestor",
			kinds: []HeadKind{Truth, Repeat, Repeat, Lie, Repeat},
			want:  []bool{false, false, false, true, true},
		},
		{
			name:  "long run of repeats",
			kinds: []HeadKind{Lie, Repeat, Repeat, Repeat, Repeat, Repeat},
			want:  []bool{true, true, true, true, true, true},
		},
		{
			name:  "alternating",
			kinds: []HeadKind{Lie, Truth, Repeat, Lie, Repeat, Truth},
			want:  []bool{true, false, false, true, true, false},
		},
		{
			name:  "empty",
			kinds: nil,
			want:  []bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveChain(tt.kinds)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d values, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("head %d: lying = %v, want %v", i+1, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolveChain_LeadingRepeat(t *testing.T) {
	_, err := ResolveChain([]HeadKind{Repeat, Truth})
	if !errors.Is(err, ErrRepeatWithoutPrecedent) {
		t.Errorf("Expected ErrRepeatWithoutPrecedent, got %v", err)
	}
}

func TestIsLying(t *testing.T) {
	lying, err := IsLying(Repeat, Lie)
	if err != nil || !lying {
		t.Errorf("IsLying(repeat, lie) = %v, %v", lying, err)
	}
	lying, err = IsLying(Truth, Lie)
	if err != nil || lying {
		t.Errorf("IsLying(truth, lie) = %v, %v", lying, err)
	}
	if _, err := IsLying(Repeat, NoHead); err == nil {
		t.Error("Expected error for a repeat with no precedent")
	}
}
