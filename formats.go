package titlefill

// postFormats maps post format slugs to their untranslated display labels.
var postFormats = map[string]string{
	"aside":   "Aside",
	"gallery": "Gallery",
	"link":    "Link",
	"image":   "Image",
	"quote":   "Quote",
	"status":  "Status",
	"video":   "Video",
	"audio":   "Audio",
	"chat":    "Chat",
}

// IsPostFormat reports whether slug names a supported post format.
// "standard" is the absence of a format, not a format.
func IsPostFormat(slug string) bool {
	_, ok := postFormats[slug]
	return ok
}

// PostFormatString returns the translated display label of a post format,
// or "" if slug is not a supported format.
func PostFormatString(t *Translator, slug string) string {
	label, ok := postFormats[slug]
	if !ok {
		return ""
	}
	return t.T(label)
}

func defaultPostTypes() map[string]PostType {
	return map[string]PostType{
		"post": {Name: "post", Singular: "Post", Plural: "Posts"},
		"page": {Name: "page", Singular: "Page", Plural: "Pages"},
	}
}
