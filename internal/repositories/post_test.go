package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestPostRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPostRepository(db)
		post := models.NewPostRecord("My Video", "entertainment", []string{"youtube", "tiktok"}, "published")
		post.SetViralScore(72)
		post.SetHashtags([]string{"#viral"})

		if err := repo.Create(post); err != nil {
			t.Fatalf("failed to create post: %v", err)
		}

		if post.ID() == "" {
			t.Error("post ID should be set after creation")
		}
		if post.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", post.Sequence())
		}
	})

	t.Run("Create Invalid", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPostRepository(db)
		post := models.NewPostRecord("", "", nil, "published")

		if err := repo.Create(post); err == nil {
			t.Error("expected validation error for empty title")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPostRepository(db)
		post := models.NewPostRecord("My Video", "entertainment", []string{"youtube"}, "scheduled")
		post.SetScheduleTime("2026-09-01T10:00:00")
		post.SetDescription("desc")
		post.SetHashtags([]string{"#a", "#b"})

		if err := repo.Create(post); err != nil {
			t.Fatalf("failed to create post: %v", err)
		}

		got, err := repo.Get(post.ID())
		if err != nil {
			t.Fatalf("failed to get post: %v", err)
		}
		if got.Title() != "My Video" {
			t.Errorf("expected title 'My Video', got %s", got.Title())
		}
		if len(got.Platforms()) != 1 || got.Platforms()[0] != "youtube" {
			t.Errorf("expected platforms [youtube], got %v", got.Platforms())
		}
		if len(got.Hashtags()) != 2 {
			t.Errorf("expected 2 hashtags, got %v", got.Hashtags())
		}
		if got.ScheduleTime() != "2026-09-01T10:00:00" {
			t.Errorf("expected schedule time preserved, got %s", got.ScheduleTime())
		}
	})

	t.Run("Get Missing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPostRepository(db)
		if _, err := repo.Get("nope"); !errors.Is(err, shared.ErrPostNotFound) {
			t.Errorf("expected ErrPostNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPostRepository(db)
		post := models.NewPostRecord("My Video", "", []string{"youtube"}, "scheduled")
		if err := repo.Create(post); err != nil {
			t.Fatalf("failed to create post: %v", err)
		}

		post.SetStatus("published")
		post.SetViralScore(90)
		if err := repo.Update(post); err != nil {
			t.Fatalf("failed to update post: %v", err)
		}

		got, err := repo.Get(post.ID())
		if err != nil {
			t.Fatalf("failed to get post: %v", err)
		}
		if got.Status() != "published" {
			t.Errorf("expected status 'published', got %s", got.Status())
		}
		if got.ViralScore() != 90 {
			t.Errorf("expected viral score 90, got %d", got.ViralScore())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPostRepository(db)
		post := models.NewPostRecord("My Video", "", []string{"youtube"}, "published")
		if err := repo.Create(post); err != nil {
			t.Fatalf("failed to create post: %v", err)
		}

		if err := repo.Delete(post.ID()); err != nil {
			t.Fatalf("failed to delete post: %v", err)
		}

		if _, err := repo.Get(post.ID()); !errors.Is(err, shared.ErrPostNotFound) {
			t.Errorf("expected deleted post to be hidden, got %v", err)
		}

		if err := repo.Delete(post.ID()); !errors.Is(err, shared.ErrPostNotFound) {
			t.Errorf("expected double delete to fail, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPostRepository(db)
		for _, p := range []*models.PostRecord{
			models.NewPostRecord("First", "", []string{"youtube"}, "published"),
			models.NewPostRecord("Second", "", []string{"tiktok"}, "scheduled"),
			models.NewPostRecord("Third", "", []string{"youtube", "tiktok"}, "published"),
		} {
			if err := repo.Create(p); err != nil {
				t.Fatalf("failed to create post: %v", err)
			}
		}

		t.Run("All Newest First", func(t *testing.T) {
			posts, err := repo.List(nil)
			if err != nil {
				t.Fatalf("failed to list posts: %v", err)
			}
			if len(posts) != 3 {
				t.Fatalf("expected 3 posts, got %d", len(posts))
			}
			if posts[0].Title() != "Third" {
				t.Errorf("expected newest first, got %s", posts[0].Title())
			}
		})

		t.Run("Status Filter", func(t *testing.T) {
			posts, err := repo.List(map[string]any{"status": "scheduled"})
			if err != nil {
				t.Fatalf("failed to list posts: %v", err)
			}
			if len(posts) != 1 || posts[0].Title() != "Second" {
				t.Errorf("expected only the scheduled post, got %d posts", len(posts))
			}
		})

		t.Run("Platform Filter", func(t *testing.T) {
			posts, err := repo.List(map[string]any{"platform": "tiktok"})
			if err != nil {
				t.Fatalf("failed to list posts: %v", err)
			}
			if len(posts) != 2 {
				t.Errorf("expected 2 tiktok posts, got %d", len(posts))
			}
		})
	})
}
