// Package attachment tracks the lifecycle of a record's image: absent,
// already persisted remotely, or newly chosen and not yet uploaded.
package attachment

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind discriminates the three attachment states.
type Kind int

const (
	// KindNone means the record has no image.
	KindNone Kind = iota
	// KindExisting means the image is already persisted remotely and is
	// held as an opaque reference (typically a share URL).
	KindExisting
	// KindPending means a new local image was chosen and is held as a
	// self-contained data-URI payload, not yet uploaded.
	KindPending
)

// State is the attachment of a single record. A record has exactly one
// State at a time; choosing a new local file replaces whatever was there.
// The zero value is None.
type State struct {
	kind      Kind
	remoteRef string
	inline    string
}

// None returns the empty attachment state.
func None() State { return State{} }

// Existing wraps a remote reference already persisted by the sheet store.
// An empty reference collapses to None.
func Existing(remoteRef string) State {
	if remoteRef == "" {
		return State{}
	}
	return State{kind: KindExisting, remoteRef: remoteRef}
}

// Pending wraps a freshly chosen inline payload (data-URI form).
// An empty payload collapses to None.
func Pending(inline string) State {
	if inline == "" {
		return State{}
	}
	return State{kind: KindPending, inline: inline}
}

// FromWire rebuilds a State from the two wire fields. A pending payload
// wins over an existing reference; both empty means None.
func FromWire(inline, remoteRef string) State {
	if inline != "" {
		return Pending(inline)
	}
	return Existing(remoteRef)
}

func (s State) Kind() Kind   { return s.kind }
func (s State) IsNone() bool { return s.kind == KindNone }

// SetPending replaces any prior state with a pending payload. The old
// remote reference is dropped entirely; it must not survive alongside
// the new payload.
func (s *State) SetPending(inline string) {
	*s = Pending(inline)
}

// WireForm splits the state into the request fields: the inline payload
// for Pending, the stored reference (never re-encoded) for Existing, and
// both empty for None.
func (s State) WireForm() (inline, remoteRef string) {
	switch s.kind {
	case KindPending:
		return s.inline, ""
	case KindExisting:
		return "", s.remoteRef
	default:
		return "", ""
	}
}

var (
	drivePathID  = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	driveQueryID = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// DisplayURL resolves the state to something directly renderable.
//
// Pending payloads are already self-contained. Existing references go
// through a small rule set: thumbnail links pass through unchanged, the
// file identifier is extracted from "/d/<id>" view paths or "?id=<id>"
// query forms. Anything unrecognized yields "" — display is best-effort
// and a malformed reference must never block editing.
func (s State) DisplayURL() string {
	switch s.kind {
	case KindPending:
		return s.inline
	case KindExisting:
		return resolveShareURL(s.remoteRef)
	default:
		return ""
	}
}

func resolveShareURL(url string) string {
	if strings.Contains(url, "drive.google.com/thumbnail") {
		return url
	}
	if m := drivePathID.FindStringSubmatch(url); m != nil {
		return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w800", m[1])
	}
	if m := driveQueryID.FindStringSubmatch(url); m != nil {
		return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w800", m[1])
	}
	return ""
}
