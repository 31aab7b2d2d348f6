package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Home renders the public post list.
func Home(p HomePage) templ.Component {
	return Layout(p.Meta, component(func(h *htmlWriter) {
		h.raw("<section class=\"posts\">")
		for _, post := range p.Posts {
			h.raw("<article")
			h.attr("id", "post-"+strconv.FormatInt(post.ID, 10))
			h.raw("><h2><a")
			h.attr("href", post.Link)
			h.raw(">")
			h.raw(post.TitleHTML)
			h.raw("</a></h2><time>")
			h.text(post.Date)
			h.raw("</time>")
			if post.Category != "" {
				h.raw(" <span class=\"category\">")
				h.text(post.Category)
				h.raw("</span>")
			}
			h.raw("</article>")
		}
		h.raw("</section>")
	}))
}

// Post renders a single public post. Content is shown as plain paragraphs.
func Post(p PostPage) templ.Component {
	return Layout(p.Meta, component(func(h *htmlWriter) {
		h.raw("<article><h1>")
		h.raw(p.TitleHTML)
		h.raw("</h1><time>")
		h.text(p.Date)
		h.raw("</time>")
		if len(p.Categories) > 0 {
			h.raw("<p class=\"categories\">")
			h.text(strings.Join(p.Categories, ", "))
			h.raw("</p>")
		}
		for _, para := range strings.Split(p.Content, "\n\n") {
			if strings.TrimSpace(para) == "" {
				continue
			}
			h.raw("<p>")
			h.text(para)
			h.raw("</p>")
		}
		h.raw("</article>")
	}))
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Not Found</title></head><body><h1>404</h1><p>Page not found.</p><a href=\"/\">Home</a></body></html>")
	})
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Server Error</title></head><body><h1>500</h1><p>Something went wrong.</p><a href=\"/\">Home</a></body></html>")
	})
}
