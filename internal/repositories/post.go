package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// PostRepository implements models.Repository[*models.PostRecord] for the
// local submission history.
//
// Handles post record CRUD with soft delete support. Platform and hashtag
// lists are stored as JSON text columns.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository with the given database connection
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post record with generated ID and sequence
func (r *PostRepository) Create(post *models.PostRecord) error {
	sequence, err := NextSequence(r.db, "posts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	post.SetID(id)
	post.SetSequence(sequence)

	if err := post.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	platforms, err := json.Marshal(post.Platforms())
	if err != nil {
		return fmt.Errorf("failed to encode platforms: %w", err)
	}
	hashtags, err := json.Marshal(post.Hashtags())
	if err != nil {
		return fmt.Errorf("failed to encode hashtags: %w", err)
	}

	query := `
		INSERT INTO posts (id, sequence, title, category, platforms, description, hashtags, status, viral_score, schedule_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		post.Title(),
		post.Category(),
		string(platforms),
		post.Description(),
		string(hashtags),
		post.Status(),
		post.ViralScore(),
		post.ScheduleTime(),
		post.CreatedAt(),
		post.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// Get retrieves a post record by ID, excluding soft-deleted records
func (r *PostRepository) Get(id string) (*models.PostRecord, error) {
	query := selectColumns + ` WHERE id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing post record, typically to track status changes
func (r *PostRepository) Update(post *models.PostRecord) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	post.SetUpdatedAt(now)

	hashtags, err := json.Marshal(post.Hashtags())
	if err != nil {
		return fmt.Errorf("failed to encode hashtags: %w", err)
	}

	query := `
		UPDATE posts
		SET status = ?, viral_score = ?, description = ?, hashtags = ?, schedule_time = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		post.Status(),
		post.ViralScore(),
		post.Description(),
		string(hashtags),
		post.ScheduleTime(),
		now,
		post.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPostNotFound, post.ID())
	}

	return nil
}

// Delete soft-deletes a post record by ID
func (r *PostRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE posts
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPostNotFound, id)
	}

	return nil
}

// List retrieves post records matching the given criteria, newest first,
// excluding soft-deleted records. Supported criteria: "status", "platform".
func (r *PostRepository) List(criteria map[string]any) ([]*models.PostRecord, error) {
	query := selectColumns + ` WHERE deleted_at IS NULL`
	args := []any{}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if platform, ok := criteria["platform"].(string); ok && platform != "" {
		// Platforms are a JSON array; match the quoted element.
		query += " AND platforms LIKE ?"
		args = append(args, `%"`+platform+`"%`)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.PostRecord
	for rows.Next() {
		post, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return posts, nil
}

const selectColumns = `
	SELECT id, sequence, title, category, platforms, description, hashtags, status, viral_score, schedule_time, created_at, updated_at, deleted_at
	FROM posts`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostRepository) scanOne(row *sql.Row) (*models.PostRecord, error) {
	post, err := scan(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrPostNotFound
	}
	return post, err
}

func (r *PostRepository) scanRow(rows *sql.Rows) (*models.PostRecord, error) {
	return scan(rows)
}

func scan(row rowScanner) (*models.PostRecord, error) {
	var (
		id           string
		sequence     int
		title        string
		category     sql.NullString
		platformsRaw string
		description  sql.NullString
		hashtagsRaw  sql.NullString
		status       string
		viralScore   sql.NullInt64
		scheduleTime sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &title, &category, &platformsRaw, &description, &hashtagsRaw, &status, &viralScore, &scheduleTime, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}

	var platforms []string
	if err := json.Unmarshal([]byte(platformsRaw), &platforms); err != nil {
		return nil, fmt.Errorf("failed to decode platforms: %w", err)
	}

	var hashtags []string
	if hashtagsRaw.Valid && hashtagsRaw.String != "" {
		if err := json.Unmarshal([]byte(hashtagsRaw.String), &hashtags); err != nil {
			return nil, fmt.Errorf("failed to decode hashtags: %w", err)
		}
	}

	post := models.NewPostRecord(title, category.String, platforms, status)
	post.SetID(id)
	post.SetSequence(sequence)
	post.SetDescription(description.String)
	post.SetHashtags(hashtags)
	post.SetViralScore(int(viralScore.Int64))
	post.SetScheduleTime(scheduleTime.String)
	post.SetCreatedAt(createdAt)
	post.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		post.SetDeletedAt(&deletedAt.Time)
	}

	return post, nil
}
