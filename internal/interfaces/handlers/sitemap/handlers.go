package sitemap

import (
	"encoding/xml"
	"strings"
	"time"

	"vibemarket-backend/internal/application/ranking"
	vibesvc "vibemarket-backend/internal/application/vibes"
	"vibemarket-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type Handlers struct {
	Service *vibesvc.Service
	BaseURL string
}

// GET /sitemap.xml: static pages plus every approved vibe.
func (h *Handlers) Sitemap(c *fiber.Ctx) error {
	base := strings.TrimRight(h.BaseURL, "/")
	set := urlSet{XMLNS: sitemapNS, URLs: []url{
		{Loc: base + "/", ChangeFreq: "daily", Priority: 1.0},
		{Loc: base + "/submit", ChangeFreq: "monthly", Priority: 0.8},
	}}

	vibes, err := h.Service.Feed(c.UserContext(), ranking.Filter{})
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("sitemap read failed")
	}
	for _, v := range vibes {
		set.URLs = append(set.URLs, url{
			Loc:        base + "/vibe/" + v.ID.String(),
			LastMod:    v.UpdatedAt.UTC().Format(time.DateOnly),
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(append([]byte(xml.Header), out...))
}
