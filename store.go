package titlefill

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Migrations holds the goose SQL migrations for the site database.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

const dateLayout = time.RFC3339

// Store wraps a SQLite database holding posts, categories and options.
type Store struct {
	db *sqlx.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL lets readers run alongside the settings writer; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// gooseLogger sends goose's progress lines to slog at debug level.
type gooseLogger struct{ l *slog.Logger }

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	g.l.Error(strings.TrimSpace(msg), "component", "goose")
	panic(msg)
}

// Migrate runs all pending migrations.
func (s *Store) Migrate() error {
	goose.SetLogger(gooseLogger{l: slog.Default()})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(Migrations)
	defer goose.SetBaseFS(nil)
	if err := goose.Up(s.db.DB, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetOptions returns the Options stored under key, or def if nothing is
// stored. Stored records are returned as-is; fields missing from the stored
// JSON decode to their zero value.
func (s *Store) GetOptions(ctx context.Context, key string, def Options) (Options, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, `SELECT option_value FROM options WHERE option_name = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	var opts Options
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return def, fmt.Errorf("decode option %s: %w", key, err)
	}
	return opts, nil
}

// SetOptions upserts the Options record under key.
func (s *Store) SetOptions(ctx context.Context, key string, opts Options) error {
	b, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO options (option_name, option_value) VALUES (?, ?)
		ON CONFLICT (option_name) DO UPDATE SET option_value = excluded.option_value`,
		key, string(b))
	return err
}

// DeleteOptions removes the record under key so the defaults apply again.
func (s *Store) DeleteOptions(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM options WHERE option_name = ?`, key)
	return err
}

type postRow struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	Type      string `db:"post_type"`
	Format    string `db:"format"`
	Content   string `db:"content"`
	Published bool   `db:"published"`
	Date      string `db:"date"`
}

func (r postRow) post() Post {
	date, _ := time.Parse(dateLayout, r.Date)
	return Post{
		ID:        r.ID,
		Title:     r.Title,
		Type:      r.Type,
		Format:    r.Format,
		Date:      date,
		Content:   r.Content,
		Published: r.Published,
	}
}

const postColumns = `id, title, post_type, format, content, published, date`

// ListPosts returns all published posts ordered by date descending.
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	return s.selectPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE published = 1 ORDER BY date DESC, id DESC`)
}

// ListAllPosts returns every post (published and drafts) ordered by date descending.
func (s *Store) ListAllPosts(ctx context.Context) ([]Post, error) {
	return s.selectPosts(ctx, `SELECT `+postColumns+` FROM posts ORDER BY date DESC, id DESC`)
}

func (s *Store) selectPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	var rows []postRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, r.post())
	}
	return posts, nil
}

// GetPost returns a single published post with its categories.
func (s *Store) GetPost(ctx context.Context, id int64) (Post, error) {
	return s.getPost(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ? AND published = 1`, id)
}

// GetPostAny returns a post regardless of published status (for admin).
func (s *Store) GetPostAny(ctx context.Context, id int64) (Post, error) {
	return s.getPost(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
}

func (s *Store) getPost(ctx context.Context, query string, id int64) (Post, error) {
	var r postRow
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		return Post{}, err
	}
	p := r.post()
	cats, err := s.PostCategories(ctx, id)
	if err != nil {
		return Post{}, err
	}
	p.Categories = cats
	return p, nil
}

// SavePost inserts p when p.ID is zero and updates it otherwise. It returns
// the post's id. Categories are replaced by p.Categories in order.
func (s *Store) SavePost(ctx context.Context, p Post) (int64, error) {
	if p.Type == "" {
		p.Type = "post"
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	date := p.Date.UTC().Format(dateLayout)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	id := p.ID
	if id == 0 {
		res, err := tx.ExecContext(ctx, `INSERT INTO posts (title, post_type, format, content, published, date) VALUES (?, ?, ?, ?, ?, ?)`,
			p.Title, p.Type, p.Format, p.Content, p.Published, date)
		if err != nil {
			return 0, err
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, err
		}
	} else {
		res, err := tx.ExecContext(ctx, `UPDATE posts SET title = ?, post_type = ?, format = ?, content = ?, published = ?, date = ? WHERE id = ?`,
			p.Title, p.Type, p.Format, p.Content, p.Published, date, id)
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return 0, ErrNotFound
		}
	}

	if err := setPostCategories(ctx, tx, id, p.Categories); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// DeletePost removes a post and its category assignments.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveCategory returns the category called name, creating it if needed.
func (s *Store) SaveCategory(ctx context.Context, name string) (Category, error) {
	return saveCategory(ctx, s.db, name)
}

func saveCategory(ctx context.Context, q sqlx.ExtContext, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if _, err := q.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name); err != nil {
		return Category{}, err
	}
	var c Category
	err := sqlx.GetContext(ctx, q, &c, `SELECT id AS "id", name AS "name" FROM categories WHERE name = ?`, name)
	return c, err
}

// DeleteCategory removes a category and unassigns it from every post.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM post_categories WHERE category_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

func setPostCategories(ctx context.Context, tx *sqlx.Tx, postID int64, cats []Category) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = ?`, postID); err != nil {
		return err
	}
	for i, c := range cats {
		if c.ID == 0 {
			if strings.TrimSpace(c.Name) == "" {
				continue
			}
			saved, err := saveCategory(ctx, tx, c.Name)
			if err != nil {
				return err
			}
			c = saved
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO post_categories (post_id, category_id, position) VALUES (?, ?, ?)`,
			postID, c.ID, i); err != nil {
			return err
		}
	}
	return nil
}

// PostCategories returns the categories of a post in assignment order.
func (s *Store) PostCategories(ctx context.Context, postID int64) ([]Category, error) {
	var cats []Category
	err := s.db.SelectContext(ctx, &cats, `
		SELECT c.id AS "id", c.name AS "name"
		FROM post_categories pc JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = ?
		ORDER BY pc.position, c.id`, postID)
	return cats, err
}

// LookupPost returns the render data of any post, published or not.
func (s *Store) LookupPost(ctx context.Context, id int64) (PostData, error) {
	var r postRow
	if err := s.db.GetContext(ctx, &r, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id); err != nil {
		return PostData{}, err
	}
	p := r.post()
	data := PostData{ID: p.ID, Type: p.Type, Format: p.Format, Date: p.Date}
	cats, err := s.PostCategories(ctx, id)
	if err != nil {
		return data, err
	}
	if len(cats) > 0 {
		data.Category = cats[0].Name
	}
	return data, nil
}
