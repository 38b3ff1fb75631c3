package render

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/fragmede/hnpanel/internal/api"
)

const (
	hnBaseURL  = "https://news.ycombinator.com"
	excerptLen = 160
)

var entryTmpl = template.Must(template.New("entry").Parse(`
<tr class="athing" id="{{.ID}}">
  <td align="right" valign="top" class="title"><span class="rank">{{.Rank}}.</span></td>
  <td valign="top" class="votelinks"><center><a id="up_{{.ID}}" class="clicky" href="{{.Base}}/vote?id={{.ID}}&amp;how=up&amp;goto=news"><div class="votearrow" title="upvote"></div></a></center></td>
  <td class="title">
    <span class="titleline">
      <a href="{{.Link}}" rel="noreferrer"{{with .Excerpt}} title="{{.}}"{{end}}>{{.Title}}</a>
      {{- with .Site}}
      <span class="sitebit comhead"> (<a href="{{$.Base}}/from?site={{.}}"><span class="sitestr">{{.}}</span></a>)</span>
      {{- end}}
    </span>
  </td>
</tr>
<tr>
  <td colspan="2"></td>
  <td class="subtext">
    <span class="subline">
      <span class="score" id="score_{{.ID}}">{{.Score}} points</span>
      by <a href="{{.Base}}/user?id={{.Author}}" class="hnuser">{{.Author}}</a>
      <span class="age"{{with .Posted}} title="{{.}}"{{end}}> | <a href="{{.Base}}/item?id={{.ID}}">{{.Comments}}&nbsp;comments</a></span>
    </span>
  </td>
</tr>
<tr class="spacer" style="height:5px"></tr>
`))

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en" op="news">
<head>
  <meta charset="utf-8">
  <meta name="referrer" content="origin">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <link rel="stylesheet" type="text/css" href="{{.Style}}">
  <title>Hacker News</title>
</head>
<body>
  <center>
    <table id="hnmain" border="0" cellpadding="0" cellspacing="0" width="85%" bgcolor="#f6f6ef">
      <tbody>
        <tr>
          <td bgcolor="#ff6600">
            <table border="0" cellpadding="0" cellspacing="0" width="100%" style="padding:2px">
              <tbody>
                <tr>
                  <td style="width:18px;padding-right:4px"><a href="{{.Base}}"><img src="{{.Base}}/y18.svg" width="18" height="18" style="border:1px white solid; display:block"></a></td>
                  <td style="line-height:12pt; height:10px;"><span class="pagetop"><b class="hnname"><a href="{{.Base}}/news">Hacker News</a></b></span></td>
                </tr>
              </tbody>
            </table>
          </td>
        </tr>
        <tr id="pagespace" title="" style="height:10px"></tr>
        <tr>
          <td>
            <table border="0" cellpadding="0" cellspacing="0">
              <tbody>
{{.Entries}}
              </tbody>
            </table>
          </td>
        </tr>
      </tbody>
    </table>
  </center>
</body>
</html>
`))

var noticeTmpl = template.Must(template.New("notice").Parse(`
<tr class="notice"><td class="title"><span class="{{.Class}}">{{.Message}}</span></td></tr>
`))

type entry struct {
	Base     string
	ID       int
	Rank     int
	Link     string
	Title    string
	Excerpt  string
	Site     string
	Score    int
	Author   string
	Posted   string
	Comments int
}

// RenderEntry renders one story as the three table rows HN uses per item.
// All story fields are escaped. Stories without a URL link to their
// discussion page and have no site block.
func RenderEntry(story api.Story, rank int) string {
	e := entry{
		Base:     hnBaseURL,
		ID:       story.ID,
		Rank:     rank,
		Link:     story.URL,
		Title:    story.Title,
		Site:     Hostname(story.URL),
		Score:    story.Score,
		Author:   story.Author,
		Comments: story.CommentCount,
	}
	if e.Link == "" {
		e.Link = ItemURL(story.ID)
		e.Excerpt = Excerpt(story.Text, excerptLen)
	}
	if story.Time > 0 {
		e.Posted = time.Unix(story.Time, 0).UTC().Format("2006-01-02T15:04:05")
	}
	return execute(entryTmpl, e)
}

// RenderEntries renders stories in order, ranked from 1.
func RenderEntries(stories []api.Story) []string {
	entries := make([]string, len(stories))
	for i, s := range stories {
		entries[i] = RenderEntry(s, i+1)
	}
	return entries
}

// RenderPage concatenates entries verbatim, in order, into the page shell.
// styleSrc is the resolved stylesheet URI.
func RenderPage(entries []string, styleSrc string) string {
	return execute(pageTmpl, struct {
		Base    string
		Style   string
		Entries template.HTML
	}{
		Base:    hnBaseURL,
		Style:   styleSrc,
		Entries: template.HTML(strings.Join(entries, "")),
	})
}

// RenderNotice renders a page with a single message row in place of the
// story list. isError selects the error styling.
func RenderNotice(message, styleSrc string, isError bool) string {
	class := "notice"
	if isError {
		class = "error"
	}
	row := execute(noticeTmpl, struct{ Class, Message string }{class, message})
	return RenderPage([]string{row}, styleSrc)
}

// Hostname returns the host of rawURL without a leading "www.", or "" if
// rawURL has none.
func Hostname(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// ItemURL is the HN discussion page for an item.
func ItemURL(id int) string {
	return fmt.Sprintf("%s/item?id=%d", hnBaseURL, id)
}

func execute(t *template.Template, data interface{}) string {
	var sb strings.Builder
	// Templates are fixed and strings.Builder never fails a write.
	_ = t.Execute(&sb, data)
	return sb.String()
}
