package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/aretw0/dashstate/pkg/analytics"
	"github.com/aretw0/dashstate/pkg/notes"
	"github.com/aretw0/dashstate/pkg/remote"
	"github.com/aretw0/dashstate/pkg/session"
	"github.com/aretw0/dashstate/pkg/todos"
)

func mark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func renderSession(w io.Writer, st session.State) {
	switch {
	case !st.Authenticated:
		fmt.Fprintln(w, "Not signed in")
	case st.User == nil:
		fmt.Fprintln(w, "Signed in (unknown user)")
	default:
		fmt.Fprintf(w, "%s <%s> (%s)\n", st.User.Name, st.User.Email, st.User.Username)
	}
}

func renderBoard(w io.Writer, g notes.Groups) {
	for _, p := range notes.Priorities() {
		bucket := g.Bucket(p)
		fmt.Fprintf(w, "%s (%d)\n", strings.ToUpper(p.String()), len(bucket))
		if len(bucket) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}
		for _, n := range bucket {
			fmt.Fprintf(w, "  - %s  [%s]\n", n.Text, n.ID)
		}
	}
}

func renderNotes(w io.Writer, list []notes.Note) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No notes")
		return
	}
	for _, n := range list {
		fmt.Fprintf(w, "%s  %-9s  %s  %s\n", n.ID, n.Priority, n.CreatedAt.UTC().Format(time.RFC3339), n.Text)
	}
}

// renderTodos marks locally overridden todos with an asterisk.
func renderTodos(w io.Writer, items []todos.Item) {
	done := 0
	for _, it := range items {
		if it.Value {
			done++
		}
		suffix := ""
		if it.Overridden {
			suffix = " *"
		}
		fmt.Fprintf(w, "%s %3d  %s%s\n", mark(it.Value), it.Record.ID, it.Record.Title, suffix)
	}
	fmt.Fprintf(w, "%d/%d completed\n", done, len(items))
}

func renderUsers(w io.Writer, users []remote.User) {
	for _, u := range users {
		fmt.Fprintf(w, "%3d  %-16s %s\n", u.ID, u.Username, u.Name)
	}
}

func renderAnalytics(w io.Writer, s analytics.Summary) {
	fmt.Fprintf(w, "Total users: %d\n", s.TotalUsers)
	extreme := func(label string, u *analytics.UserStats, count func(analytics.UserStats) string) {
		if u == nil {
			fmt.Fprintf(w, "%-18s -\n", label)
			return
		}
		fmt.Fprintf(w, "%-18s %s (%s)\n", label, u.Username, count(*u))
	}
	posts := func(u analytics.UserStats) string { return fmt.Sprintf("%d posts", u.Posts) }
	completed := func(u analytics.UserStats) string { return fmt.Sprintf("%d todos", u.CompletedTodos) }

	extreme("Most posts:", s.MostPosts, posts)
	extreme("Fewest posts:", s.FewestPosts, posts)
	extreme("Most completed:", s.MostCompleted, completed)
	extreme("Fewest completed:", s.FewestCompleted, completed)
}

func renderWeather(w io.Writer, wx remote.Weather) {
	place := wx.Name
	if wx.Sys.Country != "" {
		place += ", " + wx.Sys.Country
	}
	fmt.Fprintln(w, place)
	fmt.Fprintf(w, "%d°C (feels like %d°C)", int(math.Round(wx.Main.Temp)), int(math.Round(wx.Main.FeelsLike)))
	if s := wx.Summary(); s != "" {
		fmt.Fprintf(w, ", %s", s)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Humidity: %d%%  Wind: %d km/h\n", wx.Main.Humidity, wx.WindKMH())
}
