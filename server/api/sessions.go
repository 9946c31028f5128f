package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/internal/planerr"
	"github.com/dekarrin/shrdlite/internal/worldfixture"
	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/middle"
	"github.com/dekarrin/shrdlite/server/result"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// HTTPCreateSession returns a HandlerFunc for POST /api/v1/sessions: it
// loads the named world fixture, starts a fresh Pipeline over it, and
// returns a session ID plus a bearer token scoped to that session.
func (api API) HTTPCreateSession() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateSession)
}

func (api API) epCreateSession(req *http.Request) result.Result {
	var body CreateSessionRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest("malformed request body", err.Error())
	}
	if body.World == "" {
		return result.BadRequest("'world' is required", "missing world name")
	}

	path := filepath.Join(api.WorldDir, body.World+".sww")
	world, err := worldfixture.Load(path)
	if err != nil {
		return result.BadRequest("could not load world '"+body.World+"'", err.Error())
	}

	sesh := dao.Session{
		Created: time.Now(),
		World:   world,
		Amb:     blocks.NewSession(),
	}

	created, err := api.Store.Sessions().Create(req.Context(), sesh)
	if err != nil {
		return result.InternalServerError("create session: %s", err.Error())
	}

	tok, err := api.generateSessionJWT(created.ID)
	if err != nil {
		return result.InternalServerError("generate session token: %s", err.Error())
	}

	resp := CreateSessionResponse{ID: created.ID.String(), Token: tok}
	return result.Created(resp, "created session %s against world '%s'", created.ID, body.World)
}

// HTTPGetSession returns a HandlerFunc for GET /api/v1/sessions/{id}: the
// live world-state summary of an authenticated session.
func (api API) HTTPGetSession() http.HandlerFunc {
	return middle.RequireSessionAuth(api.Secret)(httpEndpoint(api.UnauthDelay, api.epGetSession)).ServeHTTP
}

func (api API) epGetSession(req *http.Request) result.Result {
	id, sesh, errRes := api.loadAuthedSession(req)
	if errRes != nil {
		return *errRes
	}

	history, err := api.Store.Commands().GetAllBySession(req.Context(), id)
	if err != nil {
		return result.InternalServerError("load session transcript: %s", err.Error())
	}

	return result.OK(sessionModel(id, sesh, history), "client fetched session %s", id)
}

// HTTPDeleteSession returns a HandlerFunc for DELETE /api/v1/sessions/{id}.
func (api API) HTTPDeleteSession() http.HandlerFunc {
	return middle.RequireSessionAuth(api.Secret)(httpEndpoint(api.UnauthDelay, api.epDeleteSession)).ServeHTTP
}

func (api API) epDeleteSession(req *http.Request) result.Result {
	id, err := requireIDParam(req)
	if err != nil {
		return result.BadRequest("invalid session ID", err.Error())
	}
	if !api.sessionIDMatchesToken(req, id) {
		return result.Forbidden("token does not grant access to session %s", id)
	}

	if _, err := api.Store.Sessions().Delete(req.Context(), id); err != nil {
		if err == dao.ErrNotFound {
			return result.NotFound()
		}
		return result.InternalServerError("delete session: %s", err.Error())
	}

	return result.NoContent("ended session %s", id)
}

// HTTPPostUtterance returns a HandlerFunc for POST
// /api/v1/sessions/{id}/utterances: it runs the full resolve -> ambiguity
// -> compile -> search -> narrate pipeline (or resumes whichever of the
// Ambiguity Manager's pending slots is set) on free text, and persists the
// resulting world/session state.
func (api API) HTTPPostUtterance() http.HandlerFunc {
	return middle.RequireSessionAuth(api.Secret)(httpEndpoint(api.UnauthDelay, api.epPostUtterance)).ServeHTTP
}

func (api API) epPostUtterance(req *http.Request) result.Result {
	id, sesh, errRes := api.loadAuthedSession(req)
	if errRes != nil {
		return *errRes
	}

	var body UtteranceRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest("malformed request body", err.Error())
	}

	pipe := &blocks.Pipeline{World: sesh.World, Session: sesh.Amb, Budget: api.SearchBudget}
	lines, planErr := handleUtterance(pipe, body.Text)

	cmd := dao.Command{SessionID: id, Utterance: body.Text, Response: lines}
	resp := UtteranceResponse{Lines: lines, Pending: pipe.Session.Pending()}
	if planErr != nil {
		resp.Error = planerr.UserMessage(planErr)
		cmd.ErrMsg = resp.Error
	}

	if _, err := api.Store.Commands().Create(req.Context(), cmd); err != nil {
		return result.InternalServerError("record command: %s", err.Error())
	}

	sesh.World = pipe.World
	sesh.Amb = pipe.Session
	if _, err := api.Store.Sessions().Update(req.Context(), id, sesh); err != nil {
		return result.InternalServerError("persist session state: %s", err.Error())
	}

	return result.OK(resp, "session %s ran utterance %q", id, body.Text)
}

// handleUtterance mirrors the engine's handleLine: it consults whichever of
// the Ambiguity Manager's pending slots is set before treating the text as
// a fresh utterance.
func handleUtterance(pipe *blocks.Pipeline, text string) ([]string, error) {
	sess := pipe.Session

	if len(sess.PendingParses) > 0 {
		lines, ok, err := pipe.HandleParseReply(text)
		if ok {
			return lines, err
		}
	}

	if sess.PendingResolution != nil {
		if obj, ok := blocks.ParseReferentReply(text); ok {
			return pipe.HandleReferentReply(obj)
		}
		sess.Clear()
	}

	parses, err := blocks.ParseUtterance(text)
	if err != nil {
		return nil, err
	}
	return pipe.HandleParses(parses)
}

func (api API) loadAuthedSession(req *http.Request) (uuid.UUID, dao.Session, *result.Result) {
	id, err := requireIDParam(req)
	if err != nil {
		r := result.BadRequest("invalid session ID", err.Error())
		return id, dao.Session{}, &r
	}
	if !api.sessionIDMatchesToken(req, id) {
		r := result.Forbidden("token does not grant access to session %s", id)
		return id, dao.Session{}, &r
	}

	sesh, err := api.Store.Sessions().GetByID(req.Context(), id)
	if err != nil {
		if err == dao.ErrNotFound {
			r := result.NotFound()
			return id, dao.Session{}, &r
		}
		r := result.InternalServerError("load session: %s", err.Error())
		return id, dao.Session{}, &r
	}

	return id, sesh, nil
}

func (api API) sessionIDMatchesToken(req *http.Request, id uuid.UUID) bool {
	boundID, _ := req.Context().Value(middle.SessionIDKey).(uuid.UUID)
	return boundID == id
}

func (api API) generateSessionJWT(sessionID uuid.UUID) (string, error) {
	claims := &jwt.MapClaims{
		"iss": "shrdlite",
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": sessionID.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(api.Secret)
}

func sessionModel(id uuid.UUID, sesh dao.Session, history []dao.Command) SessionModel {
	stacks := make([][]string, len(sesh.World.Stacks))
	for i, col := range sesh.World.Stacks {
		stacks[i] = append([]string(nil), col...)
	}

	transcript := make([]CommandModel, len(history))
	for i, c := range history {
		transcript[i] = CommandModel{Utterance: c.Utterance, Lines: c.Response, Error: c.ErrMsg}
	}

	return SessionModel{
		ID:         id.String(),
		Arm:        sesh.World.Arm,
		Holding:    sesh.World.Holding,
		Stacks:     stacks,
		Pending:    sesh.Amb.Pending(),
		Transcript: transcript,
	}
}
