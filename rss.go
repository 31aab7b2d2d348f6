package titlefill

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title    string `xml:"title"`
	Link     string `xml:"link"`
	PubDate  string `xml:"pubDate"`
	GUID     string `xml:"guid"`
	Category string `xml:"category,omitempty"`
}

// renderRSS writes the feed. Item titles go through the title pipeline as
// explicit-id renders and are flattened to text.
func (a *App) renderRSS(c echo.Context, posts []Post) error {
	ctx := c.Request().Context()
	base := a.Config.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := BuildURL(base, "blog", formatID(p.ID))
		item := rssItem{
			Title:   a.PlainTitle(ctx, p.Title, TitleRequest{PostID: p.ID}),
			Link:    postURL,
			PubDate: p.Date.Format(time.RFC1123Z),
			GUID:    postURL,
		}
		if data, err := a.Store.LookupPost(ctx, p.ID); err == nil {
			item.Category = data.Category
		}
		items = append(items, item)
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Language:    a.i18n.Lang(),
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
