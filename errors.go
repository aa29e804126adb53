package vmb

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrFrameTooLarge is returned by a Codec configured with WithMaxFrameSize
// when a header describes a frame larger than that configured ceiling.
// Unlike ErrIncomplete, appending more bytes will never resolve this —
// the frame the header describes is simply too big to accept.
var ErrFrameTooLarge = errors.New("vmb: frame exceeds configured maximum size")

// ErrIncomplete is returned by Decode when the buffer does not yet hold a
// complete frame. It is an alias of iox.ErrMore, the same control-flow
// sentinel code.hybscloud.com/framer uses for "caller must supply more
// bytes and retry" — this lets a reactor built around iox-style
// non-blocking transports treat an incomplete VMB frame exactly like any
// other would-block/need-more condition from the transport below it.
var ErrIncomplete = iox.ErrMore

// BuilderErrorKind distinguishes the three disjoint ways a Builder
// precondition can be violated.
type BuilderErrorKind byte

const (
	// ErrKindRoute signals route(OtherRoute) was requested without
	// id=IGNORE or bus=BusMessage.
	ErrKindRoute BuilderErrorKind = iota
	// ErrKindPayload signals a payload failed its length constraint.
	ErrKindPayload
	// ErrKindSlot signals interrupt(slot) was called with slot > 63.
	ErrKindSlot
)

func (k BuilderErrorKind) String() string {
	switch k {
	case ErrKindRoute:
		return "route"
	case ErrKindPayload:
		return "payload"
	case ErrKindSlot:
		return "slot"
	default:
		return "unknown"
	}
}

// BuilderError reports a violated Builder precondition. Use errors.Is
// against ErrRoute, ErrPayload, or ErrSlot to test the kind.
type BuilderError struct {
	Kind BuilderErrorKind
	// Detail explains which precondition failed.
	Detail string
}

func (e *BuilderError) Error() string {
	return fmt.Sprintf("vmb: %s: %s", e.Kind, e.Detail)
}

// Is implements errors.Is support so callers can write
// errors.Is(err, vmb.ErrRoute) etc. without reaching into BuilderError.
func (e *BuilderError) Is(target error) bool {
	switch target {
	case ErrRoute:
		return e.Kind == ErrKindRoute
	case ErrPayload:
		return e.Kind == ErrKindPayload
	case ErrSlot:
		return e.Kind == ErrKindSlot
	}
	return false
}

// Sentinel kinds for use with errors.Is against a returned *BuilderError.
var (
	// ErrRoute is the kind for an invalid route(OtherRoute) request.
	ErrRoute = errors.New("vmb: route error")
	// ErrPayload is the kind for a payload that fails its length rule.
	ErrPayload = errors.New("vmb: payload error")
	// ErrSlot is the kind for an interrupt slot greater than 63.
	ErrSlot = errors.New("vmb: slot error")
)

func routeError(detail string) error {
	return &BuilderError{Kind: ErrKindRoute, Detail: detail}
}

func payloadError(detail string) error {
	return &BuilderError{Kind: ErrKindPayload, Detail: detail}
}

func slotError(detail string) error {
	return &BuilderError{Kind: ErrKindSlot, Detail: detail}
}
