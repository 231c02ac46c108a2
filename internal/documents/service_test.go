package documents

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	localstore "regportal-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(localstore.New(t.TempDir()), NewMemoryRepo())
}

func TestUploadSupersedesPriorActive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, "user-1", "passport", "passport-v1.txt", nil, strings.NewReader("old scan"))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, err := svc.Upload(ctx, "user-1", "passport", "passport-v2.txt", nil, strings.NewReader("new scan"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}

	docs, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected exactly one active passport, got %d", len(docs))
	}
	if docs[0].ID != second.ID {
		t.Fatalf("expected active document %s, got %s", second.ID, docs[0].ID)
	}

	replaced, err := svc.Repo.GetByID(ctx, "user-1", first.ID)
	if err != nil {
		t.Fatalf("get replaced: %v", err)
	}
	if replaced.Status != StatusReplaced {
		t.Fatalf("expected status %s, got %s", StatusReplaced, replaced.Status)
	}
}

func TestUploadDifferentTypesDoNotSupersede(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "user-1", "passport", "passport.txt", nil, strings.NewReader("a")); err != nil {
		t.Fatalf("upload passport: %v", err)
	}
	if _, err := svc.Upload(ctx, "user-1", "tax_clearance", "tax.txt", nil, strings.NewReader("b")); err != nil {
		t.Fatalf("upload tax clearance: %v", err)
	}

	docs, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected two active documents, got %d", len(docs))
	}
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "user-1", "passport", "empty.txt", nil, bytes.NewReader(nil))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUploadValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	negative := -1

	if _, err := svc.Upload(ctx, "", "passport", "f.txt", nil, strings.NewReader("x")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing user: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Upload(ctx, "user-1", "  ", "f.txt", nil, strings.NewReader("x")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing type: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Upload(ctx, "user-1", "passport", "f.txt", &negative, strings.NewReader("x")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative expiry: expected ErrInvalidInput, got %v", err)
	}
}

func TestUploadSetsExpiryFromDays(t *testing.T) {
	svc := newTestService(t)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	days := 10
	doc, err := svc.Upload(context.Background(), "user-1", "passport", "p.txt", &days, strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.ExpiryDate == nil {
		t.Fatalf("expected expiry date to be set")
	}
	if want := fixed.AddDate(0, 0, 10); !doc.ExpiryDate.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, doc.ExpiryDate)
	}

	annotated, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if annotated[0].ExpiryStatus != ExpiryValid {
		t.Fatalf("expected %s, got %s", ExpiryValid, annotated[0].ExpiryStatus)
	}
	if annotated[0].DaysUntilExpiry == nil || *annotated[0].DaysUntilExpiry != 10 {
		t.Fatalf("expected 10 days until expiry, got %v", annotated[0].DaysUntilExpiry)
	}
}

func TestListScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "user-1", "passport", "p.txt", nil, strings.NewReader("x")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	docs, err := svc.List(ctx, "user-2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no documents for other user, got %d", len(docs))
	}
}

func TestDownloadMissingBytesReportsNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc := Document{
		ID:           "doc-1",
		UserID:       "user-1",
		DocumentType: "passport",
		FileName:     "p.txt",
		StorageKey:   "user-1/gone.txt",
		UploadDate:   time.Now().UTC(),
		Status:       StatusActive,
	}
	if _, err := svc.Repo.CreateSuperseding(ctx, doc); err != nil {
		t.Fatalf("seed metadata: %v", err)
	}

	_, _, err := svc.Download(ctx, "user-1", "doc-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDownloadOtherOwnerNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user-1", "passport", "p.txt", nil, strings.NewReader("secret"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, _, err := svc.Download(ctx, "user-2", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other owner, got %v", err)
	}

	_, data, err := svc.Download(ctx, "user-1", doc.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if string(data) != "secret" {
		t.Fatalf("expected original bytes, got %q", data)
	}
}
