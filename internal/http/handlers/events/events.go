package events

import (
	"net/http"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/http/handlers/auth"
	"taskflow/internal/http/handlers/response"
	remindersender "taskflow/internal/implementations/reminder_sender"

	"github.com/r3labs/sse/v2"
)

// Handler subscribes the authenticated user to their reminder event
// stream. Bearer tokens may also be passed as a "token" query parameter
// since EventSource cannot set request headers.
type Handler struct {
	log               logging.Logger
	sseServer         *sse.Server
	sessionRepository user.SessionRepository
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	sessionRepository user.SessionRepository,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	return &Handler{log: log, sseServer: sseServer, sessionRepository: sessionRepository}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		rawToken := r.URL.Query().Get("token")
		if rawToken == "" || len(rawToken) > auth.AUTH_TOKEN_MAX_LEN {
			response.RenderUnauthorized(rw)
			return
		}
		token = user.SessionToken(rawToken)
	}

	u, err := h.sessionRepository.GetUserByToken(r.Context(), token)
	if err != nil {
		response.RenderUnauthorized(rw)
		return
	}

	streamID := remindersender.StreamID(u.ID)
	go func() {
		// Received browser disconnection
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from reminder events.",
			logging.Entry("userID", u.ID),
		)
		h.sseServer.RemoveStream(streamID)
	}()

	h.sseServer.CreateStream(streamID)
	h.log.Info(
		r.Context(),
		"Subscribed to reminder events.",
		logging.Entry("userID", u.ID),
	)

	query := r.URL.Query()
	query.Set("stream", streamID)
	r.URL.RawQuery = query.Encode()
	h.sseServer.ServeHTTP(rw, r)
}
