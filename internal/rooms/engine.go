package rooms

import (
	"github.com/nfrund/pollchat/internal/domain"
)

// JoinResult is returned by a successful Join.
type JoinResult struct {
	// Users holds the display names of every member, live or not, in join order.
	Users []string
}

// PollResult is the incremental view handed to a polling client.
type PollResult struct {
	Messages []Message
	Users    []string
	Typing   []string
	// ServerTS is the cursor the client passes back as since on its next poll.
	ServerTS int64
}

// CheckResult reports whether a room exists and how many members it has.
type CheckResult struct {
	Exists    bool
	UserCount int
}

// Create ensures a room exists and returns its code. An empty code asks for a
// generated one; generated codes that name a live room are retried. An
// explicit code is get-or-create and never fails.
func (s *Store) Create(code string) (string, error) {
	var out outbox
	defer s.flush(&out)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now, &out)

	if code == "" {
		for attempt := 1; ; attempt++ {
			candidate := s.newCode()
			if _, taken := s.get(candidate); !taken {
				code = candidate
				break
			}
			s.logger.Warn("Generated room code collides with a live room", "room", candidate, "attempt", attempt)
			if attempt == maxCodeAttempts {
				return "", errCodeSpaceExhausted
			}
		}
	}

	if _, created := s.getOrCreate(code, now); created {
		s.logger.Info("Room created", "room", code)
		out.add(EventRoomCreated, RoomEvent{Room: code, At: now})
	}
	return code, nil
}

// Join adds or replaces a member. It fails with domain.ErrRoomNotFound when
// the room does not exist and domain.ErrRoomFull when it is at capacity, in
// which case the room is left untouched.
func (s *Store) Join(code, userID, name string) (JoinResult, error) {
	var out outbox
	defer s.flush(&out)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now, &out)

	r, ok := s.get(code)
	if !ok {
		return JoinResult{}, domain.ErrRoomNotFound
	}
	if r.roster.Len() >= s.limits.MaxUsers {
		return JoinResult{}, domain.ErrRoomFull
	}

	name = cleanName(name)
	r.roster.Upsert(userID, name, now)
	r.appendMessage(KindSystem, "", name+" joined", now, s.limits.MaxMessages)
	r.touch(now)

	s.logger.Debug("Member joined", "room", code, "user_id", userID, "members", r.roster.Len())
	out.add(EventMemberJoined, RoomEvent{Room: code, UserID: userID, Name: name, At: now})

	return JoinResult{Users: r.roster.Names()}, nil
}

// Leave removes a member. Unknown rooms and users are ignored.
func (s *Store) Leave(code, userID string) {
	var out outbox
	defer s.flush(&out)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now, &out)

	r, ok := s.get(code)
	if !ok {
		return
	}
	m, ok := r.roster.Remove(userID)
	if !ok {
		return
	}
	r.appendMessage(KindSystem, "", m.Name+" left", now, s.limits.MaxMessages)
	r.touch(now)

	s.logger.Debug("Member left", "room", code, "user_id", userID)
	out.add(EventMemberLeft, RoomEvent{Room: code, UserID: userID, Name: m.Name, At: now})
}

// Send appends a chat message. Text is normalized, trimmed and capped; a send
// that ends up empty succeeds without appending anything. The sender does not
// have to be a member, but only members get their heartbeat refreshed.
func (s *Store) Send(code, userID, userName, text string) error {
	var out outbox
	defer s.flush(&out)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now, &out)

	r, ok := s.get(code)
	if !ok {
		return domain.ErrRoomNotFound
	}

	r.roster.Touch(userID, now)

	text = cleanText(text, s.limits.MaxMessageLen)
	if text == "" {
		return nil
	}

	author := cleanName(userName)
	r.appendMessage(KindChat, author, text, now, s.limits.MaxMessages)
	r.touch(now)

	out.add(EventMessageSent, RoomEvent{Room: code, UserID: userID, Name: author, At: now})
	return nil
}

// MarkTyping records that userID is typing. Unknown rooms are ignored.
func (s *Store) MarkTyping(code, userID, name string) {
	var out outbox
	defer s.flush(&out)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now, &out)

	r, ok := s.get(code)
	if !ok {
		return
	}
	r.typing.Mark(userID, cleanName(name), now)
	r.roster.Touch(userID, now)
}

// Poll returns everything the caller has not seen since the given cursor,
// the live members and who else is typing.
func (s *Store) Poll(code, userID string, since int64) (PollResult, error) {
	var out outbox
	defer s.flush(&out)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now, &out)

	r, ok := s.get(code)
	if !ok {
		return PollResult{}, domain.ErrRoomNotFound
	}

	r.roster.Touch(userID, now)

	res := PollResult{
		Messages: r.messagesSince(since),
		Users:    r.roster.LiveNames(now, s.limits.PresenceTimeout),
		Typing:   r.typing.Visible(userID, now, s.limits.TypingVisible),
	}
	r.typing.Purge(now, s.limits.TypingStale)
	res.ServerTS = r.serve(now)
	return res, nil
}

// Check reports whether a room exists. It never creates one.
func (s *Store) Check(code string) CheckResult {
	var out outbox
	defer s.flush(&out)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(s.clock.Now(), &out)

	r, ok := s.get(code)
	if !ok {
		return CheckResult{}
	}
	return CheckResult{Exists: true, UserCount: r.roster.Len()}
}
