package chat

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/pollchat/internal/rooms"
	cmp "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// AdminPath is where the rooms overview is served.
const AdminPath = "/admin/rooms"

// AdminRooms renders an HTML overview of every live room.
func (h *Handler) AdminRooms(c echo.Context) error {
	page := RoomsPage(h.store.Stats(), time.Now())

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return page.Render(c.Response())
}

// RoomsPage is the full admin document. The table reloads itself every few
// seconds through htmx.
func RoomsPage(stats []rooms.RoomStats, now time.Time) cmp.Node {
	return components.HTML5(components.HTML5Props{
		Title:    "Rooms",
		Language: "en",
		Head: []cmp.Node{
			g.Script(g.Src("https://unpkg.com/htmx.org@2.0.4")),
		},
		Body: []cmp.Node{
			g.H1(cmp.Text("Rooms")),
			RoomsTable(stats, now),
		},
	})
}

// RoomsTable lists the rooms with their member, message and typing counts.
func RoomsTable(stats []rooms.RoomStats, now time.Time) cmp.Node {
	return g.Div(
		g.ID("rooms"),
		hx.Get(AdminPath),
		hx.Trigger("every 5s"),
		hx.Select("#rooms"),
		hx.Swap("outerHTML"),
		g.P(cmp.Textf("%d active rooms at %s", len(stats), now.Format(time.TimeOnly))),
		cmp.If(len(stats) > 0,
			g.Table(
				g.THead(g.Tr(
					g.Th(cmp.Text("Code")),
					g.Th(cmp.Text("Members")),
					g.Th(cmp.Text("Live")),
					g.Th(cmp.Text("Messages")),
					g.Th(cmp.Text("Typing")),
					g.Th(cmp.Text("Idle")),
				)),
				g.TBody(cmp.Map(stats, func(s rooms.RoomStats) cmp.Node {
					return roomRow(s, now)
				})),
			),
		),
	)
}

func roomRow(s rooms.RoomStats, now time.Time) cmp.Node {
	return g.Tr(
		g.Td(g.Code(cmp.Text(s.Code))),
		g.Td(cmp.Textf("%d", s.Members)),
		g.Td(cmp.Textf("%d", s.Live)),
		g.Td(cmp.Textf("%d", s.Messages)),
		g.Td(cmp.Textf("%d", s.Typing)),
		g.Td(cmp.Text(now.Sub(s.UpdatedAt).Truncate(time.Second).String())),
	)
}
