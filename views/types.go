package views

// Meta carries per-page metadata into the page shell.
type Meta struct {
	Lang        string
	SiteName    string
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// PostItem is a post as listed on the home page. TitleHTML is already
// sanitized and safe to emit verbatim.
type PostItem struct {
	ID        int64
	Link      string
	TitleHTML string
	Date      string
	Category  string
}

// HomePage is the public post list.
type HomePage struct {
	Meta  Meta
	Posts []PostItem
}

// PostPage is a single public post.
type PostPage struct {
	Meta       Meta
	TitleHTML  string
	Date       string
	Categories []string
	Content    string
}

// AdminPost is a post row in the admin dashboard and form. Title is the raw
// stored title.
type AdminPost struct {
	ID         int64
	Title      string
	Type       string
	Format     string
	Date       string
	Categories string
	Content    string
	Published  bool
}

// Choice is one option of a select input.
type Choice struct {
	Value string
	Label string
}

// Dashboard is the admin landing page.
type Dashboard struct {
	Posts       []AdminPost
	Message     string
	CSRFToken   string
	SettingsURL string
	MenuLabel   string
}

// PostForm is the admin edit form for one post.
type PostForm struct {
	Post      AdminPost
	Types     []Choice
	Formats   []Choice
	CSRFToken string
}

// Code documents one title-format placeholder.
type Code struct {
	Token string
	Label string
}

// SettingsPage is the options form of the title filler.
type SettingsPage struct {
	Lang      string
	Heading   string
	Action    string
	OptionKey string
	CSRFToken string

	Updated        bool
	UpdatedMessage string

	TitleFormatLabel string
	TitleFormatName  string
	TitleFormatValue string
	CodesIntro       string
	Codes            []Code
	TagsLabel        string
	Tags             []string

	NotEmptyName    string
	NotEmptyChecked bool
	NotEmptyLabel   string

	SubmitLabel string
}
