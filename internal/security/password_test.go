package security

import (
	"strings"
	"testing"
)

func TestHashPassword_ProducesVerifiableHash(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !strings.Contains(hash, ":") {
		t.Errorf("expected salt:hash encoding, got %q", hash)
	}

	ok, err := VerifyPassword("Sup3rSecret!", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !ok {
		t.Error("expected password to verify against its own hash")
	}
}

func TestHashPassword_SaltsAreRandom(t *testing.T) {
	first, err := HashPassword("same-password1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("same-password1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if first == second {
		t.Error("expected distinct hashes for the same password")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("CorrectHorse9")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		encoded  string
		want     bool
		wantErr  bool
	}{
		{name: "correct password", password: "CorrectHorse9", encoded: hash, want: true},
		{name: "wrong password", password: "WrongHorse9", encoded: hash, want: false},
		{name: "empty password", password: "", encoded: hash, want: false},
		{name: "empty hash", password: "CorrectHorse9", encoded: "", want: false},
		{name: "malformed hash", password: "CorrectHorse9", encoded: "not-a-hash", wantErr: true},
		{name: "bad base64", password: "CorrectHorse9", encoded: "!!!:???", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyPassword(tt.password, tt.encoded)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("VerifyPassword = %v, want %v", got, tt.want)
			}
		})
	}
}
