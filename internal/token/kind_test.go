package token

import "testing"

func TestKind_IsTrivia(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{Comment, true},
		{NonLogicalNewline, true},
		{Newline, false},
		{String, false},
		{Name, false},
		{EOF, false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsTrivia(); got != tt.want {
			t.Errorf("%v.IsTrivia() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestKind_String_Total(t *testing.T) {
	for k := Invalid; k <= RBrace; k++ {
		if k.String() == "Unknown" {
			t.Errorf("kind %d has no String() case", uint8(k))
		}
	}
}
