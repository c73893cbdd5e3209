package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj to a deterministic text format:
//
//	parent H     (zero, one or two, in order)
//	timestamp T
//	file H name  (zero or more, sorted by name)
//
//	message
//
// The Hash annotation is not serialized.
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", string(p))
	}
	fmt.Fprintf(&buf, "timestamp %d\n", c.Timestamp)
	for _, name := range c.TrackedNames() {
		fmt.Fprintf(&buf, "file %s %s\n", string(c.Tracked[name]), name)
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its serialized form.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: missing header/message separator")
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &CommitObj{Message: message, Tracked: make(map[string]Hash)}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: malformed header line %q", line)
		}
		switch key {
		case "parent":
			c.Parents = append(c.Parents, Hash(val))
		case "timestamp":
			ts, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: bad timestamp %q: %w", val, err)
			}
			c.Timestamp = ts
		case "file":
			h, name, ok := strings.Cut(val, " ")
			if !ok || name == "" {
				return nil, fmt.Errorf("unmarshal commit: malformed file line %q", line)
			}
			c.Tracked[name] = Hash(h)
		default:
			return nil, fmt.Errorf("unmarshal commit: unknown header key %q", key)
		}
	}
	if len(c.Parents) > 2 {
		return nil, fmt.Errorf("unmarshal commit: %d parents, want at most 2", len(c.Parents))
	}
	return c, nil
}
