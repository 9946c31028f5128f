// Package planerr holds the error taxonomy for the planning pipeline: every
// failure it raises carries a human-readable message suitable for showing
// directly to the person who typed the command.
package planerr

import "fmt"

// planError is an error raised anywhere in the pipeline (resolution, goal
// compilation, search, ambiguity handling) that has a message meant for the
// end user.
type planError struct {
	msg string
}

func (e *planError) Error() string {
	return e.msg
}

// UserMessage shows the message that should be surfaced to whoever issued
// the command.
func (e *planError) UserMessage() string {
	return e.msg
}

// New returns a new planError with the given user-facing message.
func New(msg string) error {
	return &planError{msg: msg}
}

// Newf returns a new planError whose message is built with fmt.Sprintf.
func Newf(format string, a ...interface{}) error {
	return &planError{msg: fmt.Sprintf(format, a...)}
}

// UserMessage gets the message to show to the user for the given error. If
// it is a planError, the user-facing message is returned; otherwise
// err.Error() is returned.
func UserMessage(err error) string {
	if pe, ok := err.(*planError); ok {
		return pe.UserMessage()
	}
	return err.Error()
}

// Fixed-wording error messages shared across the pipeline. Each component
// builds its own message text around the specifics of the offending
// label/relation elsewhere, but these strings appear verbatim.
const (
	MsgParseFailure       = "Sorry I cannot understand this, please try again."
	MsgCannotDoThat       = "I cannot do that."
	MsgNoTimeToFigureOut  = "I cannot figure this out in the time I have."
	MsgAlreadyTrue        = "That is already true!"
	MsgOnlyInsideBoxes    = "Objects can only be inside of boxes."
	MsgBallsCannotSupport = "Balls cannot support other objects."
	MsgOneObjectFitsInBox = "A box can only fit one object."
	MsgCanOnlyHoldOne     = "You can only hold one object at a time."
	MsgNotOneOfTheOptions = "That was not one of the options I asked for."
)
