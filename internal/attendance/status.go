package attendance

import "fmt"

// Status is the attendance state recorded by a scan.
type Status string

const (
	Login  Status = "login"
	Logout Status = "logout"
)

func ParseStatus(s string) (status Status, err error) {
	switch Status(s) {
	case Login, Logout:
		status = Status(s)
	default:
		err = fmt.Errorf("invalid attendance status %q", s)
	}
	return
}

// Toggle returns the status a scan records when the previous one was s.
func (s Status) Toggle() Status {
	if s == Login {
		return Logout
	}
	return Login
}

func (s Status) String() string {
	return string(s)
}

func (s Status) MarshalText() ([]byte, error) {
	if _, err := ParseStatus(string(s)); err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (s *Status) UnmarshalText(text []byte) (err error) {
	*s, err = ParseStatus(string(text))
	return
}
