package storage_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/storage"
)

func TestDisks_Resolve(t *testing.T) {
	disks := storage.Disks{
		"public": "https://cdn.example.com/files/",
		"broken": "://nope",
	}

	got, err := disks.Resolve("public", "/avatars/me.png")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "https://cdn.example.com/files/avatars/me.png" {
		t.Fatalf("unexpected url %q", got)
	}

	if _, err := disks.Resolve("s3", "a.png"); !errors.Is(err, storage.ErrUnknownDisk) {
		t.Fatalf("expected ErrUnknownDisk, got %v", err)
	}
	if _, err := disks.Resolve("broken", "a.png"); err == nil {
		t.Fatalf("expected join error for invalid base url")
	}
}
