package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/buckets/internal/domain"
	"github.com/MrSnakeDoc/buckets/internal/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := "sqlite:///" + filepath.Join(t.TempDir(), "buckets.db")
	s, err := Open(Options{URL: url}, logger.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return s
}

func mustTx(t *testing.T, s *Store, fn func(tx *Tx) error) {
	t.Helper()
	if err := s.Tx(context.Background(), fn); err != nil {
		t.Fatalf("Tx() error = %v", err)
	}
}

func createBucket(t *testing.T, s *Store, title string) domain.Bucket {
	t.Helper()
	b := domain.NewBucket(title, title+" description")
	mustTx(t, s, func(tx *Tx) error { return tx.CreateBucket(&b) })
	return b
}

func createItem(t *testing.T, s *Store, bucketID uint, title string) domain.Item {
	t.Helper()
	item := domain.NewItem(bucketID, title, time.Now())
	mustTx(t, s, func(tx *Tx) error { return tx.CreateItem(&item) })
	return item
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		url     string
		dialect Dialect
		dsn     string
		wantErr bool
	}{
		{url: "sqlite://", dialect: DialectSQLite, dsn: "file::memory:?_pragma=foreign_keys(1)"},
		{url: "sqlite:///data/buckets.db", dialect: DialectSQLite, dsn: "data/buckets.db?_pragma=foreign_keys(1)"},
		{url: "sqlite:////var/lib/buckets.db", dialect: DialectSQLite, dsn: "/var/lib/buckets.db?_pragma=foreign_keys(1)"},
		{url: "sqlite:///x.db?_pragma=busy_timeout(5000)", dialect: DialectSQLite, dsn: "x.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"},
		{url: "postgres://app:pw@db/buckets?sslmode=disable", dialect: DialectPostgres, dsn: "postgres://app:pw@db/buckets?sslmode=disable"},
		{url: "postgresql://db/buckets", dialect: DialectPostgres, dsn: "postgresql://db/buckets"},
		{url: "sqlite:///", wantErr: true},
		{url: "mysql://db/buckets", wantErr: true},
		{url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			dialect, dsn, err := ParseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if dialect != tt.dialect || dsn != tt.dsn {
				t.Errorf("ParseURL() = (%s, %s), want (%s, %s)", dialect, dsn, tt.dialect, tt.dsn)
			}
		})
	}
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(Options{URL: "sqlite://"}, logger.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if s.Dialect() != DialectSQLite {
		t.Errorf("Dialect() = %s", s.Dialect())
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestBucketLookups(t *testing.T) {
	s := openTestStore(t)
	inbox := domain.NewBucket(domain.InboxTitle, "Random things")
	inbox.CanDeactivate = false
	mustTx(t, s, func(tx *Tx) error { return tx.CreateBucket(&inbox) })
	shopping := createBucket(t, s, "Shopping")

	mustTx(t, s, func(tx *Tx) error {
		got, err := tx.FindBucket(inbox.ID)
		if err != nil {
			return err
		}
		if got.Title != domain.InboxTitle || got.CanDeactivate || got.DeactivatedTime != nil {
			t.Errorf("FindBucket() = %+v", got)
		}

		byTitle, err := tx.FindBucketByTitle("Shopping")
		if err != nil {
			return err
		}
		if byTitle.ID != shopping.ID || !byTitle.CanDeactivate {
			t.Errorf("FindBucketByTitle() = %+v", byTitle)
		}

		refs, err := tx.ListBuckets()
		if err != nil {
			return err
		}
		if len(refs) != 2 || refs[0].Title != domain.InboxTitle || refs[1].ID != shopping.ID {
			t.Errorf("ListBuckets() = %+v", refs)
		}
		return nil
	})
}

func TestBucketNotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.Tx(context.Background(), func(tx *Tx) error {
		_, err := tx.FindBucket(9)
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindBucket(9) error = %v, want ErrNotFound", err)
	}

	err = s.Tx(context.Background(), func(tx *Tx) error {
		_, err := tx.FindBucketByTitle(domain.InboxTitle)
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindBucketByTitle() error = %v, want ErrNotFound", err)
	}
}

func TestIsTitleUnique(t *testing.T) {
	s := openTestStore(t)
	shopping := createBucket(t, s, "Shopping")
	createBucket(t, s, "Stuff to buy")

	tests := []struct {
		name      string
		candidate string
		excluding uint
		want      bool
	}{
		{name: "new title", candidate: "Music", want: true},
		{name: "existing title", candidate: "Shopping", want: false},
		{name: "case-sensitive", candidate: "shopping", want: true},
		{name: "own title excluded", candidate: "Shopping", excluding: shopping.ID, want: true},
		{name: "other title not excluded", candidate: "Stuff to buy", excluding: shopping.ID, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustTx(t, s, func(tx *Tx) error {
				got, err := tx.IsTitleUnique(tt.candidate, tt.excluding)
				if err != nil {
					return err
				}
				if got != tt.want {
					t.Errorf("IsTitleUnique(%q, %d) = %v, want %v", tt.candidate, tt.excluding, got, tt.want)
				}
				return nil
			})
		})
	}
}

func TestUniqueTitleConstraint(t *testing.T) {
	s := openTestStore(t)
	createBucket(t, s, "Shopping")

	dup := domain.NewBucket("Shopping", "again")
	err := s.Tx(context.Background(), func(tx *Tx) error { return tx.CreateBucket(&dup) })
	if err == nil {
		t.Fatal("inserting a duplicate title should violate the unique index")
	}
}

func TestUpdateBucket(t *testing.T) {
	s := openTestStore(t)
	b := createBucket(t, s, "Shopping")

	b.Title = "Stuff to buy"
	b.Description = "I like shopping"
	mustTx(t, s, func(tx *Tx) error { return tx.UpdateBucket(&b) })

	mustTx(t, s, func(tx *Tx) error {
		got, err := tx.FindBucket(b.ID)
		if err != nil {
			return err
		}
		if got.Title != "Stuff to buy" || got.Description != "I like shopping" || !got.CanDeactivate {
			t.Errorf("after update: %+v", got)
		}
		return nil
	})
}

func TestItemRequiresExistingBucket(t *testing.T) {
	s := openTestStore(t)

	orphan := domain.NewItem(42, "Orphan", time.Now())
	err := s.Tx(context.Background(), func(tx *Tx) error { return tx.CreateItem(&orphan) })
	if err == nil {
		t.Fatal("an item referencing a missing bucket must be rejected")
	}
}

func TestIncompleteItems(t *testing.T) {
	s := openTestStore(t)
	b := createBucket(t, s, "Shopping")
	other := createBucket(t, s, "Other")

	tomatoes := createItem(t, s, b.ID, "Tomatoes")
	createItem(t, s, b.ID, "Carrots")
	createItem(t, s, other.ID, "Elsewhere")
	createItem(t, s, b.ID, "Zucchini")

	tomatoes.Complete(time.Now())
	mustTx(t, s, func(tx *Tx) error { return tx.UpdateItem(&tomatoes) })

	mustTx(t, s, func(tx *Tx) error {
		items, err := tx.IncompleteItems(b.ID)
		if err != nil {
			return err
		}
		if len(items) != 2 || items[0].Title != "Carrots" || items[1].Title != "Zucchini" {
			t.Errorf("IncompleteItems() = %+v", items)
		}
		return nil
	})
}

func TestUpdateItemKeepsCreatedTime(t *testing.T) {
	s := openTestStore(t)
	b := createBucket(t, s, "Shopping")

	created := time.Date(2020, 7, 28, 8, 4, 0, 0, time.UTC)
	item := domain.NewItem(b.ID, "Tomatoes", created)
	mustTx(t, s, func(tx *Tx) error { return tx.CreateItem(&item) })

	due := time.Date(2020, 1, 30, 0, 0, 0, 0, time.UTC)
	item.Title = "Zucchini"
	item.Description = domain.NormalizeDescription("Vegetable")
	item.DueDate = &due
	item.Flagged = true
	item.CreatedTime = time.Now()
	mustTx(t, s, func(tx *Tx) error { return tx.UpdateItem(&item) })

	mustTx(t, s, func(tx *Tx) error {
		got, err := tx.FindItem(item.ID)
		if err != nil {
			return err
		}
		if got.Title != "Zucchini" || got.DescriptionText() != "Vegetable" || !got.Flagged {
			t.Errorf("after update: %+v", got)
		}
		if domain.FormatDate(got.DueDate) != "2020-01-30" {
			t.Errorf("DueDate = %v", got.DueDate)
		}
		if !got.CreatedTime.Equal(created) {
			t.Errorf("CreatedTime = %v, want %v", got.CreatedTime, created)
		}
		if got.CompletedTime != nil {
			t.Errorf("CompletedTime = %v, want nil", got.CompletedTime)
		}
		return nil
	})
}

func TestUpdateItemClearsOptionalFields(t *testing.T) {
	s := openTestStore(t)
	b := createBucket(t, s, "Shopping")

	due := time.Date(2020, 1, 30, 0, 0, 0, 0, time.UTC)
	item := domain.NewItem(b.ID, "Tomatoes", time.Now())
	item.DueDate = &due
	item.Description = domain.NormalizeDescription("red")
	item.Flagged = true
	mustTx(t, s, func(tx *Tx) error { return tx.CreateItem(&item) })

	item.DueDate = nil
	item.Description = nil
	item.Flagged = false
	mustTx(t, s, func(tx *Tx) error { return tx.UpdateItem(&item) })

	mustTx(t, s, func(tx *Tx) error {
		got, err := tx.FindItem(item.ID)
		if err != nil {
			return err
		}
		if got.DueDate != nil || got.Description != nil || got.Flagged {
			t.Errorf("optional fields not cleared: %+v", got)
		}
		return nil
	})
}

func TestDeleteItem(t *testing.T) {
	s := openTestStore(t)
	b := createBucket(t, s, "Shopping")
	tomatoes := createItem(t, s, b.ID, "Tomatoes")
	carrots := createItem(t, s, b.ID, "Carrots")

	mustTx(t, s, func(tx *Tx) error { return tx.DeleteItem(tomatoes.ID) })

	err := s.Tx(context.Background(), func(tx *Tx) error {
		_, err := tx.FindItem(tomatoes.ID)
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindItem(deleted) error = %v, want ErrNotFound", err)
	}

	mustTx(t, s, func(tx *Tx) error {
		got, err := tx.FindItem(carrots.ID)
		if err != nil {
			return err
		}
		if got.Title != "Carrots" {
			t.Errorf("sibling changed: %+v", got)
		}
		return nil
	})

	err = s.Tx(context.Background(), func(tx *Tx) error { return tx.DeleteItem(tomatoes.ID) })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteItem(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestTxRollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	boom := errors.New("boom")

	err := s.Tx(context.Background(), func(tx *Tx) error {
		b := domain.NewBucket("Shopping", "List of groceries")
		if err := tx.CreateBucket(&b); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Tx() error = %v, want boom", err)
	}

	mustTx(t, s, func(tx *Tx) error {
		refs, err := tx.ListBuckets()
		if err != nil {
			return err
		}
		if len(refs) != 0 {
			t.Errorf("rolled back bucket persisted: %+v", refs)
		}
		return nil
	})
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	b := createBucket(t, s, "Shopping")
	createItem(t, s, b.ID, "Tomatoes")

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	mustTx(t, s, func(tx *Tx) error {
		refs, err := tx.ListBuckets()
		if err != nil {
			return err
		}
		if len(refs) != 0 {
			t.Errorf("buckets survived Reset(): %+v", refs)
		}
		return nil
	})
}
