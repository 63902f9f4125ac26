package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/core/domain"
)

func newDirectory(t *testing.T) (*DirectoryService, context.Context) {
	t.Helper()
	db := newTestDB(t)
	return NewDirectoryService(repositories.NewIdentityRepository(db), newTestConfig()), context.Background()
}

func TestNormalizePhone(t *testing.T) {
	directory, _ := newDirectory(t)

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{"plain digits", "9876543210", "9876543210", nil},
		{"formatted", " 98765-43210 ", "9876543210", nil},
		{"country code", "+91 98765 43210", "919876543210", nil},
		{"admin alias", "admin", "9876543210", nil},
		{"admin alias case insensitive", "ADMIN", "9876543210", nil},
		{"too short", "12345", "", domain.ErrInvalidPhone},
		{"letters only", "notaphone", "", domain.ErrInvalidPhone},
		{"empty", "", "", domain.ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := directory.NormalizePhone(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NormalizePhone(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRegisterUpsertsByPhone(t *testing.T) {
	directory, ctx := newDirectory(t)

	first, err := directory.Register(ctx, "First Owner", "9000000001", "C-301", "1111")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Registering the same phone again replaces the record
	second, err := directory.Register(ctx, "New Owner", "9000000001", "C-302", "2222")
	if err != nil {
		t.Fatalf("re-Register: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-registration created a new row: %d != %d", second.ID, first.ID)
	}
	if second.FullName != "New Owner" || second.FlatID != "C-302" {
		t.Errorf("re-registration did not replace details: %+v", second)
	}

	// Old MPIN no longer works, new one does
	if _, err := directory.Authenticate(ctx, "9000000001", "1111"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("old mpin should be rejected, got %v", err)
	}
	if _, err := directory.Authenticate(ctx, "9000000001", "2222"); err != nil {
		t.Errorf("new mpin should work, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	directory, ctx := newDirectory(t)

	if _, err := directory.Register(ctx, "Meera", "9000000002", "D-404", "4321"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name    string
		phone   string
		mpin    string
		wantErr error
	}{
		{"correct", "9000000002", "4321", nil},
		{"wrong mpin", "9000000002", "0000", domain.ErrInvalidCredentials},
		{"unknown phone", "9111111111", "4321", domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := directory.Authenticate(ctx, tt.phone, tt.mpin)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIdentityResponseHidesMPINHash(t *testing.T) {
	directory, ctx := newDirectory(t)

	identity, err := directory.Register(ctx, "Suresh", "9000000003", "E-505", "5555")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	data, err := json.Marshal(identity.ToResponse())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	if strings.Contains(body, "mpin") || strings.Contains(body, identity.MPINHash) {
		t.Errorf("serialized identity leaks credential material: %s", body)
	}

	// The model itself also refuses to serialize the hash
	data, err = json.Marshal(identity)
	if err != nil {
		t.Fatalf("marshal model: %v", err)
	}
	if strings.Contains(string(data), identity.MPINHash) {
		t.Errorf("serialized model leaks the mpin hash: %s", data)
	}
}

func TestLookup(t *testing.T) {
	directory, ctx := newDirectory(t)

	if _, err := directory.Register(ctx, "Priya", "9000000004", "F-606", "6666"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := directory.Lookup(ctx, "9000000004")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !result.Exists || result.DisplayName != "Priya" {
		t.Errorf("Lookup = %+v, want exists with display name Priya", result)
	}

	result, err = directory.Lookup(ctx, "9222222222")
	if err != nil {
		t.Fatalf("Lookup unknown: %v", err)
	}
	if result.Exists {
		t.Error("unknown phone should not resolve")
	}
}
