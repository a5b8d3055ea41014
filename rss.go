package mealpress

import (
	"encoding/xml"
	"net/http"
	"sort"
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
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderRSS emits one feed over both content kinds, newest first.
func (a *App) renderRSS(c echo.Context, records []ContentRecord) error {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	base := a.Config.URL
	items := make([]rssItem, 0, len(records))
	for _, rec := range records {
		pubDate := ""
		if t, err := time.Parse(time.RFC3339, rec.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		recordURL := BuildURL(base, string(rec.Kind), rec.Slug)
		items = append(items, rssItem{
			Title:       rec.Title,
			Link:        recordURL,
			Description: rec.Description,
			PubDate:     pubDate,
			GUID:        recordURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
