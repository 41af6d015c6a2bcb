package chat

import (
	"github.com/nfrund/pollchat/internal/rooms"
)

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type createResponse struct {
	OK   bool   `json:"ok"`
	Room string `json:"room"`
}

type joinResponse struct {
	OK    bool     `json:"ok"`
	Users []string `json:"users"`
}

type pollResponse struct {
	OK       bool          `json:"ok"`
	Messages []messageJSON `json:"messages"`
	Users    []string      `json:"users"`
	Typing   []string      `json:"typing"`
	TS       int64         `json:"ts"`
}

type checkResponse struct {
	Exists bool `json:"exists"`
	Users  int  `json:"users"`
}

// messageJSON is the wire form of a message. Time is the wall clock time of
// the server in HH:MM:SS, for display only; TS is the cursor.
type messageJSON struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	User string `json:"user,omitempty"`
	Msg  string `json:"msg"`
	TS   int64  `json:"ts"`
	Time string `json:"time"`
}

func toMessageJSON(m rooms.Message) messageJSON {
	return messageJSON{
		ID:   m.ID,
		Type: string(m.Kind),
		User: m.Author,
		Msg:  m.Text,
		TS:   m.Stamp,
		Time: m.SentAt.Local().Format("15:04:05"),
	}
}

func toMessagesJSON(msgs []rooms.Message) []messageJSON {
	out := make([]messageJSON, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageJSON(m))
	}
	return out
}

// orEmpty keeps empty lists from being encoded as null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
