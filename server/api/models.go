package api

// CreateSessionRequest names which world fixture a new session should start
// from: the base filename (no extension) of a .sww file under the server's
// configured world directory.
type CreateSessionRequest struct {
	World string `json:"world"`
}

// CreateSessionResponse is returned from a successful POST
// /api/v1/sessions: the new session's ID and a bearer token scoped to it.
type CreateSessionResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// UtteranceRequest is the body of POST /api/v1/sessions/{id}/utterances. It
// carries raw text; the server resolves it against its own parser (or, if
// the deployment's pending state calls for a clarifying reply, treats it as
// one of the Ambiguity Manager's reply shapes instead of a fresh utterance).
type UtteranceRequest struct {
	Text string `json:"text"`
}

// UtteranceResponse reports the outcome of one utterance: either Lines
// holds the narrated plan (or an echoed clarification prompt), or Error
// holds the user-facing message from planerr.
type UtteranceResponse struct {
	Lines   []string `json:"lines,omitempty"`
	Pending bool     `json:"pending"`
	Error   string   `json:"error,omitempty"`
}

// CommandModel is one entry of a session's transcript: the utterance and
// what the planner said back.
type CommandModel struct {
	Utterance string   `json:"utterance"`
	Lines     []string `json:"lines,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// SessionModel summarizes the live world state of a session, plus the
// transcript of every utterance run against it so far.
type SessionModel struct {
	ID         string         `json:"id"`
	Arm        int            `json:"arm"`
	Holding    string         `json:"holding,omitempty"`
	Stacks     [][]string     `json:"stacks"`
	Pending    bool           `json:"pending"`
	Transcript []CommandModel `json:"transcript,omitempty"`
}
