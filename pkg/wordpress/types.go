package wordpress

import "time"

// Post is the flattened remote post as this system consumes it. The
// remote API nests rendered fields; see wpPost.
type Post struct {
	ID       int64
	Title    string
	Content  string
	Excerpt  string
	Status   string
	Date     time.Time
	Modified time.Time
	Link     string
}

// User is the remote account behind the service credentials.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// wpPost is the wire shape of /wp-json/wp/v2/posts entries.
type wpPost struct {
	ID       int64      `json:"id"`
	Date     string     `json:"date"`
	Modified string     `json:"modified"`
	Status   string     `json:"status"`
	Link     string     `json:"link"`
	Title    wpRendered `json:"title"`
	Content  wpRendered `json:"content"`
	Excerpt  wpRendered `json:"excerpt"`
}

type wpRendered struct {
	Rendered string `json:"rendered"`
}

// wpPostPayload is the write shape for create and update calls. Status
// is omitted when empty, which the remote treats as "leave unchanged"
// on update.
type wpPostPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status,omitempty"`
}

// WordPress emits site-local timestamps without a zone offset.
const wpTimeLayout = "2006-01-02T15:04:05"

func parseWPTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, _ := time.Parse(wpTimeLayout, s)
	return t
}

func (p wpPost) flatten() Post {
	return Post{
		ID:       p.ID,
		Title:    p.Title.Rendered,
		Content:  p.Content.Rendered,
		Excerpt:  p.Excerpt.Rendered,
		Status:   p.Status,
		Date:     parseWPTime(p.Date),
		Modified: parseWPTime(p.Modified),
		Link:     p.Link,
	}
}
