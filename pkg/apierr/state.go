package apierr

// State is the last-error slot of a client. It is overwritten by every call
// and carries no call identity, so it must be read right after the call it
// describes. State is not safe for concurrent use.
type State struct {
	code Code
	msg  string
}

// Reset sets the state back to None.
func (s *State) Reset() {
	s.code = None
	s.msg = ""
}

// Set records code and msg, replacing whatever was there.
func (s *State) Set(code Code, msg string) {
	s.code = code
	s.msg = msg
}

// SetErr records e. A nil e resets the state.
func (s *State) SetErr(e *Error) {
	if e == nil {
		s.Reset()
		return
	}
	s.Set(e.Code, e.Message)
}

// Code returns the recorded code.
func (s *State) Code() Code { return s.code }

// Message returns the recorded message.
func (s *State) Message() string { return s.msg }

// Err returns the recorded outcome as an *Error, or nil when the code is None.
func (s *State) Err() error {
	if s.code == None {
		return nil
	}
	return &Error{Code: s.code, Message: s.msg}
}
