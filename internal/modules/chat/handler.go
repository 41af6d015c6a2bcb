package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/pollchat/internal/domain"
	"github.com/nfrund/pollchat/internal/middleware"
	"github.com/nfrund/pollchat/internal/rooms"
)

// Handler exposes the room engine over a single polling endpoint. The action
// query parameter selects the operation.
type Handler struct {
	store     *rooms.Store
	validator echo.Validator
	binder    *echo.DefaultBinder
}

// NewHandler creates a new chat handler with its dependencies.
func NewHandler(store *rooms.Store) *Handler {
	return &Handler{
		store:     store,
		validator: NewValidator(),
		binder:    &echo.DefaultBinder{},
	}
}

// Dispatch routes a request to its action. An action used with the wrong
// method is treated as unknown. Client errors are answered here as
// {"ok":false,"error":...}; anything else goes to the server error handler.
func (h *Handler) Dispatch(c echo.Context) error {
	err := h.route(c)

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return c.JSON(he.Code, errorResponse{Error: fmt.Sprint(he.Message)})
	}
	return err
}

func (h *Handler) route(c echo.Context) error {
	method := c.Request().Method
	switch action := c.QueryParam("action"); {
	case action == "create" && method == http.MethodPost:
		return h.create(c)
	case action == "join" && method == http.MethodPost:
		return h.join(c)
	case action == "leave" && method == http.MethodPost:
		return h.leave(c)
	case action == "send" && method == http.MethodPost:
		return h.send(c)
	case action == "typing" && method == http.MethodPost:
		return h.typing(c)
	case action == "poll" && method == http.MethodGet:
		return h.poll(c)
	case action == "check" && method == http.MethodGet:
		return h.check(c)
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown action"})
}

// create handles POST ?action=create[&room=CODE].
func (h *Handler) create(c echo.Context) error {
	var req CreateRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	code, err := h.store.Create(req.Room)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return c.JSON(http.StatusOK, createResponse{OK: true, Room: code})
}

// join handles POST ?action=join&room=CODE&uid=ID&user=NAME.
func (h *Handler) join(c echo.Context) error {
	var req JoinRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	res, err := h.store.Join(req.Room, req.UID, req.User)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, joinResponse{OK: true, Users: orEmpty(res.Users)})
}

// leave handles POST ?action=leave&room=CODE&uid=ID. It always succeeds.
func (h *Handler) leave(c echo.Context) error {
	var req MemberRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	h.store.Leave(req.Room, req.UID)
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// send handles POST ?action=send&room=CODE&uid=ID&user=NAME with a JSON body
// {"msg": "..."}.
func (h *Handler) send(c echo.Context) error {
	var req SendRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	var body SendBody
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		// An unknown room is reported before a bad body.
		if !h.store.Check(req.Room).Exists {
			return engineError(domain.ErrRoomNotFound)
		}
		middleware.FromContext(c.Request().Context()).Debug("Rejected send body", "room", req.Room, "error", err)
		return engineError(domain.ErrInvalidBody).SetInternal(err)
	}

	if err := h.store.Send(req.Room, req.UID, req.User, body.Msg); err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// typing handles POST ?action=typing&room=CODE&uid=ID&user=NAME. It always succeeds.
func (h *Handler) typing(c echo.Context) error {
	var req MemberRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	h.store.MarkTyping(req.Room, req.UID, req.User)
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// poll handles GET ?action=poll&room=CODE&uid=ID&since=TS.
func (h *Handler) poll(c echo.Context) error {
	var req PollRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	since, err := strconv.ParseInt(req.Since, 10, 64)
	if err != nil {
		since = 0
	}

	res, err := h.store.Poll(req.Room, req.UID, since)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, pollResponse{
		OK:       true,
		Messages: toMessagesJSON(res.Messages),
		Users:    orEmpty(res.Users),
		Typing:   orEmpty(res.Typing),
		TS:       res.ServerTS,
	})
}

// check handles GET ?action=check&room=CODE.
func (h *Handler) check(c echo.Context) error {
	var req CheckRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	res := h.store.Check(req.Room)
	return c.JSON(http.StatusOK, checkResponse{Exists: res.Exists, Users: res.UserCount})
}

// bind reads the query parameters into req and validates them.
func (h *Handler) bind(c echo.Context, req any) error {
	if err := h.binder.BindQueryParams(c, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request").SetInternal(err)
	}
	if err := h.validator.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err)).SetInternal(err)
	}
	return nil
}

// engineError maps a room engine error to its HTTP status.
func engineError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Room not found")
	case errors.Is(err, domain.ErrRoomFull):
		return echo.NewHTTPError(http.StatusForbidden, "Room full")
	case errors.Is(err, domain.ErrInvalidBody):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}
