package attendance

import "fmt"

const (
	msgMissingFields = "Missing user_code, room_code, or role."
	msgInvalidRole   = "Invalid role."
	msgRoomNotFound  = "Room not found."
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a scan failure that is reported to the caller. Message is the
// caller-facing text; for store failures it already embeds the driver error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

func storeError(prefix string, err error) *Error {
	return &Error{Kind: KindStore, Message: prefix + err.Error(), Err: err}
}
