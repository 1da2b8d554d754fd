package notifications

import (
	"fmt"
	"html"
	"time"
)

const (
	themePrimary = "#1F5E63"
	themeBgBody  = "#F5F5F0"
	themeText    = "#1A1A1A"
)

// Layout wraps content in the shared vibemarket email frame.
func Layout(contentHTML string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>VibeMarket</title>
  <style>
    body { margin: 0; padding: 24px; background-color: %s; color: %s; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
    .card { max-width: 560px; margin: 0 auto; background: #FFFFFF; border-radius: 12px; padding: 32px; }
    .button { display: inline-block; padding: 12px 24px; border-radius: 8px; background: %s; color: #FFFFFF !important; text-decoration: none; font-weight: 700; }
    .footer { max-width: 560px; margin: 16px auto 0; font-size: 12px; color: #71717A; text-align: center; }
  </style>
</head>
<body>
  <div class="card">%s</div>
  <div class="footer">&copy; %d VibeMarket</div>
</body>
</html>`, themeBgBody, themeText, themePrimary, contentHTML, time.Now().Year())
}

// EscapeHTML escapes HTML specials for safe interpolation.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

func approvedContent(creatorName, title, vibeURL string) string {
	return fmt.Sprintf(`
    <h1>Your vibe is live!</h1>
    <p>Hi %s,</p>
    <p><strong>%s</strong> passed review and now appears in the public feed.</p>
    <p><a href="%s" class="button">View your vibe</a></p>
`, EscapeHTML(creatorName), EscapeHTML(title), EscapeHTML(vibeURL))
}

func rejectedContent(creatorName, title string) string {
	return fmt.Sprintf(`
    <h1>Update on your submission</h1>
    <p>Hi %s,</p>
    <p>After review, <strong>%s</strong> was not approved for the feed. You are welcome to submit it again with a clearer description and a working live URL.</p>
`, EscapeHTML(creatorName), EscapeHTML(title))
}
