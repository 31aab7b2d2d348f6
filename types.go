package titlefill

import "time"

// Post is the core content type stored in SQLite. Title may be empty; the
// title filter pipeline decides what readers see in its place.
type Post struct {
	ID         int64
	Title      string
	Type       string // registered post type, e.g. "post" or "page"
	Format     string // post format slug, empty for standard posts
	Date       time.Time
	Content    string
	Published  bool
	Categories []Category
}

// Category is a taxonomy term attached to posts. Order on a post matters:
// the first one is the post's primary category.
type Category struct {
	ID   int64
	Name string
}

// PostType describes a registered post type and its display labels.
type PostType struct {
	Name     string
	Singular string
	Plural   string
}
