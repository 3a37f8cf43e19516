package sqlitekv

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/longduongbao29/Translator-app/internal/adapters/db/sqlite"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db)
}

func TestGetMissReturnsNilNil(t *testing.T) {
	s := testStore(t)
	b, err := s.Get(context.Background(), "absent")
	if err != nil || b != nil {
		t.Fatalf("miss = (%v, %v), want (nil, nil)", b, err)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	b, err := s.Get(ctx, "k")
	if err != nil || !bytes.Equal(b, []byte("v1")) {
		t.Fatalf("get = (%q, %v)", b, err)
	}

	// Overwrite keeps a single row per key.
	if err := s.Put(ctx, "k", []byte("v2"), time.Hour); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err = s.Get(ctx, "k")
	if err != nil || !bytes.Equal(b, []byte("v2")) {
		t.Fatalf("get after overwrite = (%q, %v)", b, err)
	}
}

func TestExpiredKeyIsAMiss(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("put: %v", err)
	}
	b, err := s.Get(ctx, "k")
	if err != nil || b != nil {
		t.Fatalf("expired get = (%q, %v), want (nil, nil)", b, err)
	}
}
