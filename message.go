package vmb

import (
	"bytes"
	"fmt"
)

// MaxMessageSize is the largest a VMB frame can be: 4-byte header + 4-byte
// timestamp + 8-byte address + 256 octas of payload.
const MaxMessageSize = 4 + 4 + 8 + OctaSize*256

// MinMessageSize is the smallest a VMB frame can be: just the header.
const MinMessageSize = 4

// MaxPayloadSize is the largest a payload can be, in bytes.
const MaxPayloadSize = OctaSize * 256

// Header is the mandatory 4-byte prefix of every message.
type Header struct {
	// Type holds the eight TYPE-byte flag bits.
	Type Type
	// Size is the payload length in octas minus one; meaningful only
	// when Type.Payload is set, otherwise 0.
	Size byte
	// Slot names the addressed device, 0..255 (0..63 for Interrupt).
	Slot byte
	// Id is the message kind.
	Id Id
}

// HeaderFromBytes decodes the 4-byte wire header.
func HeaderFromBytes(b [4]byte) Header {
	return Header{
		Type: TypeFromByte(b[0]),
		Size: b[1],
		Slot: b[2],
		Id:   IdFromByte(b[3]),
	}
}

// Bytes encodes the header back into its 4 wire bytes.
func (h Header) Bytes() [4]byte {
	return [4]byte{h.Type.Byte(), h.Size, h.Slot, h.Id.Byte()}
}

// Message is a complete VMB frame: a mandatory header, an optional
// timestamp and address (together with the header, the "extended
// header"), and an optional payload. It is a value type: once returned by
// a Builder's Finalize or by Decode it is never mutated again.
type Message struct {
	Header Header

	// Timestamp is present iff Header.Type.Time is set.
	Timestamp *uint32

	// Address is present iff Header.Type.Address is set.
	Address *uint64

	// Payload is present iff Header.Type.Payload is set. Its length is
	// always 8*(Header.Size+1) bytes when present.
	Payload []byte
}

// Equal reports whether two Messages are structurally identical,
// including payload bytes.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Header != other.Header {
		return false
	}
	if !equalUint32Ptr(m.Timestamp, other.Timestamp) {
		return false
	}
	if !equalUint64Ptr(m.Address, other.Address) {
		return false
	}
	return bytes.Equal(m.Payload, other.Payload)
}

func equalUint32Ptr(a, b *uint32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalUint64Ptr(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Validate checks that m satisfies the seven cross-field invariants of
// the VMB protocol (timestamp/address/payload presence matches the TYPE
// flags, payload length is a positive multiple of 8 up to 2048 bytes or
// absent with size 0, OtherRoute is only used by bus messages or IGNORE,
// and INTERRUPT slots are <= 63). Every Message produced by the New*
// factories satisfies all of them. Decode and the fluent Builder setters
// guarantee the presence and size invariants but do not check the
// OtherRoute and INTERRUPT-slot rules: Decode accepts any header, and
// Bus, Id and Slot can be set after Route without re-checking. Validate
// exists for such Messages, for Messages built by hand, and for ones
// crossing a trust boundary.
func (m *Message) Validate() error {
	t := m.Header.Type

	if (m.Timestamp != nil) != t.Time {
		return fmt.Errorf("vmb: timestamp presence %v does not match type.time %v", m.Timestamp != nil, t.Time)
	}
	if (m.Address != nil) != t.Address {
		return fmt.Errorf("vmb: address presence %v does not match type.address %v", m.Address != nil, t.Address)
	}
	if (m.Payload != nil) != t.Payload {
		return fmt.Errorf("vmb: payload presence %v does not match type.payload %v", m.Payload != nil, t.Payload)
	}

	if t.Payload {
		if len(m.Payload) == 0 || len(m.Payload)%OctaSize != 0 || len(m.Payload) > MaxPayloadSize {
			return fmt.Errorf("vmb: payload length %d is not a positive multiple of 8 up to %d", len(m.Payload), MaxPayloadSize)
		}
		if int(m.Header.Size)+1 != len(m.Payload)/OctaSize {
			return fmt.Errorf("vmb: header size %d does not match payload length %d", m.Header.Size, len(m.Payload))
		}
	} else if m.Header.Size != 0 {
		return fmt.Errorf("vmb: header size %d must be 0 when no payload is present", m.Header.Size)
	}

	if t.Route == OtherRoute {
		if m.Header.Id.Byte() != Ignore.Byte() && t.Bus != BusMessage {
			return fmt.Errorf("vmb: OtherRoute requires id=IGNORE or bus=BusMessage, got id=%v bus=%v", m.Header.Id, t.Bus)
		}
	}

	if m.Header.Id.Byte() == Interrupt.Byte() && m.Header.Slot > 63 {
		return fmt.Errorf("vmb: interrupt slot %d exceeds 63", m.Header.Slot)
	}

	return nil
}
