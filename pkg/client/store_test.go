package client

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))

	if _, err := store.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Load on empty store err = %v, want ErrNoCredentials", err)
	}

	in := &Credentials{
		Token: "tok",
		Name:  "Officer Singh",
		Roles: []string{"ROLE_OFFICER"},
		Badge: "PB-1021",
	}
	if err := store.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.Token != in.Token || out.Name != in.Name || out.Badge != in.Badge {
		t.Errorf("Load = %+v, want %+v", out, in)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Load after Clear err = %v, want ErrNoCredentials", err)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()

	in := &Credentials{Token: "tok", Roles: []string{"ROLE_USER"}}
	store.Save(in)
	in.Token = "mutated"

	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.Token != "tok" {
		t.Errorf("stored credentials were mutated through the caller's pointer")
	}
}
