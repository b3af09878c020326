package monitor

import "fmt"

// Status is the lifecycle position of a monitored URL.
type Status int

const (
	// Idle: not known to be live. The monitor moves it to Downloading once
	// the platform reports the stream live.
	Idle Status = iota
	// Pending is reserved for the download pipeline; the monitor never enters it.
	Pending
	// Downloading: the stream is being pulled by the pipeline.
	Downloading
	// Uploading: the recording is being pushed downstream by the pipeline.
	Uploading
)

var statusNames = [...]string{
	Idle:        "idle",
	Pending:     "pending",
	Downloading: "downloading",
	Uploading:   "uploading",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return Idle, fmt.Errorf("unknown status %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
