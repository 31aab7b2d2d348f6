package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so component bodies can write
// without checking after every fragment.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// Layout wraps body in the page shell.
func Layout(meta Meta, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		lang := meta.Lang
		if lang == "" {
			lang = "en"
		}
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		if meta.Title != "" {
			h.text(meta.Title + " | ")
		}
		h.text(meta.SiteName)
		h.raw("</title>")
		if meta.Description != "" {
			h.raw("<meta name=\"description\"")
			h.attr("content", meta.Description)
			h.raw(">")
		}
		if meta.URL != "" {
			h.raw("<link rel=\"canonical\"")
			h.attr("href", meta.URL)
			h.raw("><meta property=\"og:url\"")
			h.attr("content", meta.URL)
			h.raw(">")
		}
		if meta.OGType != "" {
			h.raw("<meta property=\"og:type\"")
			h.attr("content", meta.OGType)
			h.raw(">")
		}
		if meta.JSONLD != "" {
			h.raw("<script type=\"application/ld+json\">")
			h.raw(meta.JSONLD)
			h.raw("</script>")
		}
		h.raw("<link rel=\"alternate\" type=\"application/rss+xml\" href=\"/feed.xml\"></head><body><header><a href=\"/\">")
		h.text(meta.SiteName)
		h.raw("</a></header><main>")
		h.component(body)
		h.raw("</main></body></html>")
	})
}
