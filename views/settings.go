package views

import "github.com/a-h/templ"

// Settings renders the title filler options page: one section with the
// title format input, its help text, and the not-empty-titles checkbox.
func Settings(p SettingsPage) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", p.Lang)
		h.raw("><head><meta charset=\"utf-8\"><title>")
		h.text(p.Heading)
		h.raw("</title></head><body><div class=\"wrap\"><h2>")
		h.text(p.Heading)
		h.raw("</h2>")
		if p.Updated {
			h.raw("<div id=\"setting-error-settings_updated\" class=\"updated settings-error\"><p><strong>")
			h.text(p.UpdatedMessage)
			h.raw("</strong></p></div>")
		}
		h.raw("<form method=\"post\"")
		h.attr("action", p.Action)
		h.raw("><input type=\"hidden\" name=\"_csrf\"")
		h.attr("value", p.CSRFToken)
		h.raw("><input type=\"hidden\" name=\"option_page\"")
		h.attr("value", p.OptionKey)
		h.raw("><table class=\"form-table\"><tr><th scope=\"row\">")
		h.text(p.TitleFormatLabel)
		h.raw("</th><td>")
		titleFormatField(h, p)
		h.raw("</td></tr><tr><th scope=\"row\"></th><td>")
		notEmptyTitlesField(h, p)
		h.raw("</td></tr></table><p class=\"submit\"><input type=\"submit\" name=\"submit\" id=\"submit\" class=\"button-primary\"")
		h.attr("value", p.SubmitLabel)
		h.raw("></p></form></div></body></html>")
	})
}

func titleFormatField(h *htmlWriter, p SettingsPage) {
	h.raw("<label for=\"title-format\"><input style=\"width: 400px;\" type=\"text\" id=\"title-format\"")
	h.attr("name", p.TitleFormatName)
	h.attr("value", p.TitleFormatValue)
	h.raw("></label><p>")
	h.text(p.CodesIntro)
	for _, c := range p.Codes {
		h.raw("<br><code>")
		h.text(c.Token)
		h.raw("</code> ")
		h.text(c.Label)
	}
	h.raw("</p><p>")
	h.text(p.TagsLabel)
	for _, t := range p.Tags {
		h.raw(" <code>")
		h.text(t)
		h.raw("</code>")
	}
	h.raw("</p>")
}

func notEmptyTitlesField(h *htmlWriter, p SettingsPage) {
	h.raw("<label for=\"not-empty-titles\"><input type=\"checkbox\" id=\"not-empty-titles\"")
	h.attr("name", p.NotEmptyName)
	if p.NotEmptyChecked {
		h.raw(" checked=\"checked\"")
	}
	h.raw("> ")
	h.text(p.NotEmptyLabel)
	h.raw("</label>")
}
