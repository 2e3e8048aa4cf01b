package attendance

import (
	"encoding/json"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "login", want: Login},
		{in: "logout", want: Logout},
		{in: "LOGIN", wantErr: true},
		{in: "", wantErr: true},
		{in: "checkin", wantErr: true},
	} {
		got, err := ParseStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseStatus(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestStatusToggle(t *testing.T) {
	if Login.Toggle() != Logout {
		t.Fatalf("login should toggle to logout")
	}
	if Logout.Toggle() != Login {
		t.Fatalf("logout should toggle to login")
	}
}

func TestStatusJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		S Status `json:"s"`
	}{Logout})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"s":"logout"}` {
		t.Fatalf("unexpected encoding %s", b)
	}

	if _, err := json.Marshal(Status("maybe")); err == nil {
		t.Fatalf("expected marshal of unknown status to fail")
	}

	var s Status
	if err := json.Unmarshal([]byte(`"login"`), &s); err != nil || s != Login {
		t.Fatalf("unmarshal login: %q, %v", s, err)
	}
	if err := json.Unmarshal([]byte(`"away"`), &s); err == nil {
		t.Fatalf("expected unmarshal of unknown status to fail")
	}
}
