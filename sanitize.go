package titlefill

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// TitleTags lists the inline elements a title format may carry.
var TitleTags = []string{"em", "strong", "del", "ins", "sub", "sup", "img"}

var (
	titlePolicyOnce sync.Once
	titlePolicy     *bluemonday.Policy
)

// SanitizeTitleFormat strips every element and attribute outside the title
// allowlist. Text inside stripped elements is kept.
func SanitizeTitleFormat(raw string) string {
	return titleSanitizer().Sanitize(raw)
}

func titleSanitizer() *bluemonday.Policy {
	titlePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("em", "strong", "del", "ins", "sub", "sup")
		policy.AllowAttrs("src", "alt").OnElements("img")

		policy.RequireParseableURLs(true)
		policy.AllowRelativeURLs(true)
		policy.AllowURLSchemes("http", "https")

		// script and style bodies are dropped by default; a title keeps them as text.
		policy.AllowElementsContent("script", "style")

		titlePolicy = policy
	})
	return titlePolicy
}
