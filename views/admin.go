package views

import (
	"strconv"

	"github.com/a-h/templ"
)

func adminShell(title string, body func(h *htmlWriter)) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
		h.text(title)
		h.raw("</title><script src=\"/public/htmx.min.js\"></script></head><body class=\"admin\">")
		body(h)
		h.raw("</body></html>")
	})
}

// AdminLogin renders the password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return adminShell("Admin", func(h *htmlWriter) {
		h.raw("<form method=\"post\" action=\"/admin/login/\"><input type=\"hidden\" name=\"_csrf\"")
		h.attr("value", csrfToken)
		h.raw(">")
		if showError {
			h.raw("<p class=\"error\">Invalid password.</p>")
		}
		h.raw("<input type=\"password\" name=\"password\" autofocus><button type=\"submit\">Log in</button></form>")
	})
}

// AdminDashboard lists every post with its raw stored title.
func AdminDashboard(d Dashboard) templ.Component {
	return adminShell("Dashboard", func(h *htmlWriter) {
		h.raw("<nav><a href=\"/admin/post/new/\">New post</a> <a")
		h.attr("href", d.SettingsURL)
		h.raw(">")
		h.text(d.MenuLabel)
		h.raw("</a> <form method=\"post\" action=\"/admin/logout/\" style=\"display:inline\"><input type=\"hidden\" name=\"_csrf\"")
		h.attr("value", d.CSRFToken)
		h.raw("><button type=\"submit\">Log out</button></form></nav>")
		if d.Message != "" {
			h.raw("<p class=\"message\">")
			h.text(d.Message)
			h.raw("</p>")
		}
		h.raw("<table><thead><tr><th>ID</th><th>Title</th><th>Type</th><th>Format</th><th>Date</th><th>Status</th></tr></thead><tbody>")
		for _, p := range d.Posts {
			id := strconv.FormatInt(p.ID, 10)
			h.raw("<tr><td>")
			h.text(id)
			h.raw("</td><td><a")
			h.attr("href", "/admin/post/"+id+"/")
			h.raw(">")
			h.text(p.Title)
			h.raw("</a></td><td>")
			h.text(p.Type)
			h.raw("</td><td>")
			h.text(p.Format)
			h.raw("</td><td>")
			h.text(p.Date)
			h.raw("</td><td>")
			if p.Published {
				h.raw("published")
			} else {
				h.raw("draft")
			}
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table>")
	})
}

// AdminPostForm renders the edit form of one post.
func AdminPostForm(f PostForm) templ.Component {
	return adminShell("Edit post", func(h *htmlWriter) {
		h.raw("<form method=\"post\" action=\"/admin/save/\"><input type=\"hidden\" name=\"_csrf\"")
		h.attr("value", f.CSRFToken)
		h.raw("><input type=\"hidden\" name=\"id\"")
		h.attr("value", strconv.FormatInt(f.Post.ID, 10))
		h.raw("><label>Title <input type=\"text\" name=\"title\"")
		h.attr("value", f.Post.Title)
		h.raw("></label><label>Type ")
		selectInput(h, "type", f.Post.Type, f.Types)
		h.raw("</label><label>Format ")
		selectInput(h, "format", f.Post.Format, f.Formats)
		h.raw("</label><label>Date <input type=\"date\" name=\"date\"")
		h.attr("value", f.Post.Date)
		h.raw("></label><label>Categories <input type=\"text\" name=\"categories\"")
		h.attr("value", f.Post.Categories)
		h.raw("></label><label>Content <textarea name=\"content\">")
		h.text(f.Post.Content)
		h.raw("</textarea></label><label><input type=\"checkbox\" name=\"published\"")
		if f.Post.Published {
			h.raw(" checked=\"checked\"")
		}
		h.raw("> Published</label><button type=\"submit\">Save</button></form>")
	})
}

func selectInput(h *htmlWriter, name, selected string, choices []Choice) {
	h.raw("<select")
	h.attr("name", name)
	h.raw(">")
	for _, c := range choices {
		h.raw("<option")
		h.attr("value", c.Value)
		if c.Value == selected {
			h.raw(" selected")
		}
		h.raw(">")
		h.text(c.Label)
		h.raw("</option>")
	}
	h.raw("</select>")
}
