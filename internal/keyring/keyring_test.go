package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/lumen/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://lumen@localhost:5432/lumen?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://lumen@localhost/lumen"); err != nil {
		t.Fatal(err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolveConnectionString(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		keyring    string
		wantConn   string
		wantSource Source
		wantErr    error
	}{
		{
			name:       "environment wins",
			env:        "postgres://env@localhost/lumen",
			keyring:    "postgres://ring@localhost/lumen",
			wantConn:   "postgres://env@localhost/lumen",
			wantSource: SourceEnv,
		},
		{
			name:       "keyring fallback",
			keyring:    "postgres://ring@localhost/lumen",
			wantConn:   "postgres://ring@localhost/lumen",
			wantSource: SourceKeyring,
		},
		{
			name:    "nothing configured",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gokeyring.MockInit()
			t.Setenv(constants.EnvConnectionString, tt.env)
			if tt.keyring != "" {
				if err := SetConnectionString(tt.keyring); err != nil {
					t.Fatal(err)
				}
			}

			conn, source, err := ResolveConnectionString()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if conn != tt.wantConn || source != tt.wantSource {
				t.Errorf("got (%q, %q), want (%q, %q)", conn, source, tt.wantConn, tt.wantSource)
			}
		})
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should be available")
	}
}
