package monitor

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestStatus_String(t *testing.T) {
	cases := map[Status]string{
		Idle:        "idle",
		Pending:     "pending",
		Downloading: "downloading",
		Uploading:   "uploading",
		Status(9):   "Status(9)",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("uploading")
	if err != nil || s != Uploading {
		t.Errorf("ParseStatus(uploading) = %v, %v", s, err)
	}
	if _, err := ParseStatus("finished"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestStatus_JSON(t *testing.T) {
	b, err := json.Marshal(StreamerView{URL: "u", Platform: "p", Status: Downloading})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"url":"u","platform":"p","status":"downloading","task_id":""}`; string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}

	var req streamerRequest
	if err := json.Unmarshal([]byte(`{"url":"u","status":"pending"}`), &req); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if req.Status == nil || *req.Status != Pending {
		t.Errorf("decoded status %v", req.Status)
	}

	if err := json.Unmarshal([]byte(`{"url":"u","status":"sleeping"}`), &req); err == nil {
		t.Error("expected error for unknown status")
	}
}
