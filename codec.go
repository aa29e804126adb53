// Decoding is peek-then-consume: the header is inspected via buf.Bytes(),
// which does not advance buf, and the frame is only removed from buf
// (via buf.Next) once every byte it needs has been shown to already be
// present. A caller that sees ErrIncomplete is guaranteed buf is
// byte-for-byte as it was on entry, and may append more bytes and retry.
package vmb

import (
	"bytes"
	"encoding/binary"
)

// Encode appends the wire encoding of msg to buf, in order: the 4-byte
// header, the 4-byte timestamp if present, the 8-byte address if
// present, then the payload if present. Encode never fails for a Message
// that satisfies the protocol invariants (see Message.Validate); it does
// not validate msg itself, matching spec: "Encoding is infallible given a
// Message that satisfies the invariants."
func Encode(buf *bytes.Buffer, msg *Message) error {
	header := msg.Header.Bytes()
	buf.Write(header[:])

	if msg.Header.Type.Time {
		var ts [4]byte
		binary.BigEndian.PutUint32(ts[:], *msg.Timestamp)
		buf.Write(ts[:])
	}

	if msg.Header.Type.Address {
		var addr [8]byte
		binary.BigEndian.PutUint64(addr[:], *msg.Address)
		buf.Write(addr[:])
	}

	if msg.Header.Type.Payload {
		buf.Write(msg.Payload)
	}

	return nil
}

// Decode removes exactly one complete frame from the front of buf and
// returns it, or returns (nil, ErrIncomplete) and leaves buf untouched if
// buf does not yet hold a whole frame. It never returns any other error:
// every 4-byte header is a valid header (Id's catch-all absorbs unknown
// bytes, Size is unconditionally legal, Unused is preserved verbatim), so
// decoding is total over any byte stream. Semantic validation (e.g.
// rejecting Interrupt with Slot>63) is a higher layer's concern — see
// Message.Validate.
func Decode(buf *bytes.Buffer) (*Message, error) {
	return decode(buf, MaxMessageSize)
}

func decode(buf *bytes.Buffer, maxFrameSize int) (*Message, error) {
	data := buf.Bytes()
	if len(data) < MinMessageSize {
		return nil, ErrIncomplete
	}

	var headerBytes [4]byte
	copy(headerBytes[:], data[:4])
	header := HeaderFromBytes(headerBytes)

	trailing := 0
	if header.Type.Time {
		trailing += 4
	}
	if header.Type.Address {
		trailing += 8
	}
	if header.Type.Payload {
		trailing += OctaSize * (int(header.Size) + 1)
	}

	total := MinMessageSize + trailing
	if total > maxFrameSize {
		return nil, ErrFrameTooLarge
	}
	if len(data) < total {
		return nil, ErrIncomplete
	}

	buf.Next(4)

	msg := &Message{Header: header}

	if header.Type.Time {
		ts := binary.BigEndian.Uint32(buf.Next(4))
		msg.Timestamp = &ts
	}

	if header.Type.Address {
		addr := binary.BigEndian.Uint64(buf.Next(8))
		msg.Address = &addr
	}

	if header.Type.Payload {
		payloadLen := OctaSize * (int(header.Size) + 1)
		payload := make([]byte, payloadLen)
		copy(payload, buf.Next(payloadLen))
		msg.Payload = payload
	}

	return msg, nil
}

// Codec binds a set of Options to Encode/Decode, giving a lower frame-size
// ceiling and/or advisory logging without touching the package-level
// zero-configuration functions.
type Codec struct {
	opts Options
}

// NewCodec builds a Codec. With no options it behaves exactly like the
// package-level Encode/Decode.
func NewCodec(opts ...Option) *Codec {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Codec{opts: o}
}

// Encode appends the wire encoding of msg to buf. See the package-level
// Encode for the wire contract.
func (c *Codec) Encode(buf *bytes.Buffer, msg *Message) error {
	return Encode(buf, msg)
}

// Decode removes and returns one complete frame from buf, honoring the
// Codec's configured MaxFrameSize. See the package-level Decode for the
// buffer contract.
func (c *Codec) Decode(buf *bytes.Buffer) (*Message, error) {
	msg, err := decode(buf, c.opts.MaxFrameSize)
	switch err {
	case ErrIncomplete:
		c.opts.Logger.Printf("vmb: decode incomplete: have %d bytes", buf.Len())
	case ErrFrameTooLarge:
		c.opts.Logger.Printf("vmb: decode rejected: frame exceeds max %d bytes", c.opts.MaxFrameSize)
	}
	return msg, err
}
