// Package vmb implements the core of the Virtual Motherboard (VMB) wire
// protocol: a typed message model, a validating builder, and a streaming
// codec. It has no opinion on transport, routing, or device behavior —
// see the package doc in codec.go for the buffer contract consumers must
// honor.
package vmb

import "fmt"

// Byte is what MMIX calls a u8.
type Byte = uint8

// Wyde is what MMIX calls a u16.
type Wyde = uint16

// Tetra is what MMIX calls a u32.
type Tetra = uint32

// Octa is what MMIX calls a u64.
type Octa = uint64

// OctaSize is the size in bytes of one Octa (one payload "word").
const OctaSize = 8

// Bus is the bus bit of the TYPE byte.
type Bus bool

const (
	// DeviceMessage is a message from device to device, merely forwarded
	// by the bus.
	DeviceMessage Bus = false
	// BusMessage is a message for/from the bus (motherboard) itself. The
	// ID byte determines its meaning.
	BusMessage Bus = true
)

// BusFromBit converts the bus bit (bit 7 of TYPE) to a Bus.
func BusFromBit(bit bool) Bus {
	return Bus(bit)
}

// Bit returns the wire bit for the Bus.
func (b Bus) Bit() bool {
	return bool(b)
}

func (b Bus) String() string {
	if b {
		return "BusMessage"
	}
	return "DeviceMessage"
}

// Route is the route bit of the TYPE byte.
type Route bool

const (
	// OtherRoute means the receiver is determined by the address field,
	// or not at all (valid only for bus messages or IGNORE).
	OtherRoute Route = false
	// SlotRoute means the receiver is the device named by SLOT.
	SlotRoute Route = true
)

// RouteFromBit converts the route bit (bit 4 of TYPE) to a Route.
func RouteFromBit(bit bool) Route {
	return Route(bit)
}

// Bit returns the wire bit for the Route.
func (r Route) Bit() bool {
	return bool(r)
}

func (r Route) String() string {
	if r {
		return "SlotRoute"
	}
	return "OtherRoute"
}

// Id is the ID byte of the header. It is a closed set of 21 named
// protocol messages plus a catch-all for any other byte value; every
// byte in [0,255] maps to exactly one Id and back.
type Id struct {
	name  string
	value byte
	known bool
}

// Named IDs, per the VMB wire protocol. A registered device that wants to
// receive a Register's memory range claim announces address, limit, and
// an interrupt mask (bits 0..63) in the Register payload, followed by a
// NUL-terminated device name left-justified in the remaining payload.
var (
	// Ignore can always be safely discarded by the receiver. The sender
	// may use the route bit plus SLOT, or the address bit plus address,
	// to pick a receiver; if neither is set the bus merely unlocks (if
	// locked) and otherwise drops the message.
	Ignore = Id{name: "Ignore", value: 0x00, known: true}
	// Read asks the receiver to answer with size+1 octas of payload read
	// from the given address, using Readreply (or Noreply on error).
	Read = Id{name: "Read", value: 0x01, known: true}
	// Write asks the receiver to store size+1 octas of payload at the
	// given address. There is no reply.
	Write = Id{name: "Write", value: 0x02, known: true}
	// Readreply answers a Read with the requested octas of payload.
	Readreply = Id{name: "Readreply", value: 0x03, known: true}
	// Noreply tells the sender of a Read/Readbyte/Readwyde/Readtetra
	// that the request could not be answered.
	Noreply = Id{name: "Noreply", value: 0x04, known: true}
	// Readbyte asks for 1 byte, left-justified in the reply octa.
	Readbyte = Id{name: "Readbyte", value: 0x05, known: true}
	// Readwyde asks for 2 bytes, left-justified in the reply octa.
	Readwyde = Id{name: "Readwyde", value: 0x06, known: true}
	// Readtetra asks for 4 bytes, left-justified in the reply octa.
	Readtetra = Id{name: "Readtetra", value: 0x07, known: true}
	// Writebyte stores 1 byte, left-justified in the payload octa.
	Writebyte = Id{name: "Writebyte", value: 0x08, known: true}
	// Writewyde stores 2 bytes, left-justified in the payload octa.
	Writewyde = Id{name: "Writewyde", value: 0x09, known: true}
	// Writetetra stores 4 bytes, left-justified in the payload octa.
	Writetetra = Id{name: "Writetetra", value: 0x0A, known: true}
	// Bytereply answers a Readbyte.
	Bytereply = Id{name: "Bytereply", value: 0x0B, known: true}
	// Wydereply answers a Readwyde.
	Wydereply = Id{name: "Wydereply", value: 0x0C, known: true}
	// Tetrareply answers a Readtetra.
	Tetrareply = Id{name: "Tetrareply", value: 0x0D, known: true}
	// Terminate is a polite request to end a device simulator. The
	// motherboard sends it to every connected device before it exits.
	Terminate = Id{name: "Terminate", value: 0xF9, known: true}
	// Register claims a memory range and interrupt mask for the sending
	// device. Payload: address(8) + limit(8) + interrupt mask(8) +
	// NUL-terminated name, padded to a multiple of 8 bytes.
	Register = Id{name: "Register", value: 0xFA, known: true}
	// Unregister releases a previously registered memory range.
	Unregister = Id{name: "Unregister", value: 0xFB, known: true}
	// Interrupt raises interrupt number SLOT (0..63).
	Interrupt = Id{name: "Interrupt", value: 0xFC, known: true}
	// Reset is the hardware reset signal; devices must handle it even if
	// their software is stuck.
	Reset = Id{name: "Reset", value: 0xFD, known: true}
	// Poweroff is the end-of-life signal; only sent after a Poweron.
	Poweroff = Id{name: "Poweroff", value: 0xFE, known: true}
	// Poweron is the beginning-of-life signal a device waits for before
	// it starts working.
	Poweron = Id{name: "Poweron", value: 0xFF, known: true}
)

var namedIds = [...]Id{
	Ignore, Read, Write, Readreply, Noreply, Readbyte, Readwyde, Readtetra,
	Writebyte, Writewyde, Writetetra, Bytereply, Wydereply, Tetrareply,
	Terminate, Register, Unregister, Interrupt, Reset, Poweroff, Poweron,
}

// Other returns the catch-all Id for a raw byte not among the 21 named
// values. Calling Other on a named byte returns that named Id, matching
// the original source's From<u8> semantics (every byte maps to exactly
// one Id, named or not).
func Other(raw byte) Id {
	return IdFromByte(raw)
}

// IdFromByte converts a raw ID byte into its tagged Id, named if one of
// the 21 predefined codes, otherwise Other(raw).
func IdFromByte(raw byte) Id {
	for _, id := range namedIds {
		if id.value == raw {
			return id
		}
	}
	return Id{name: "", value: raw, known: false}
}

// Byte returns the wire byte for the Id.
func (i Id) Byte() byte {
	return i.value
}

// IsOther reports whether this Id is not one of the 21 named codes.
func (i Id) IsOther() bool {
	return !i.known
}

func (i Id) String() string {
	if i.known {
		return i.name
	}
	return fmt.Sprintf("Other(0x%02X)", i.value)
}

// Type is the decoded form of the TYPE header byte: eight named bit
// fields, MSB (bus) to LSB (unused).
type Type struct {
	// Bus is bit 7.
	Bus Bus
	// Time is bit 6: 1 means a 4-byte timestamp follows the header.
	Time bool
	// Address is bit 5: 1 means an 8-byte address follows. If Route is
	// OtherRoute, the receiver is determined from Address instead of
	// SLOT.
	Address bool
	// Route is bit 4.
	Route Route
	// Payload is bit 3: 1 means a payload follows the extended header.
	Payload bool
	// Request is bit 2: 1 means the sender expects a reply.
	Request bool
	// Lock is bit 1: 1 means the bus enters exclusive-access mode until
	// an unlocked message passes through.
	Lock bool
	// Unused is bit 0, reserved. Preserved verbatim across a decode/
	// encode round trip; written 0 by the builder.
	Unused bool
}

// TypeFromByte decodes the TYPE header byte into its eight bit fields.
func TypeFromByte(b byte) Type {
	return Type{
		Bus:     BusFromBit(b&(1<<7) != 0),
		Time:    b&(1<<6) != 0,
		Address: b&(1<<5) != 0,
		Route:   RouteFromBit(b&(1<<4) != 0),
		Payload: b&(1<<3) != 0,
		Request: b&(1<<2) != 0,
		Lock:    b&(1<<1) != 0,
		Unused:  b&1 != 0,
	}
}

// Byte re-encodes the Type into the wire TYPE byte. Round-tripping
// TypeFromByte(b).Byte() always returns b, including the Unused bit.
func (t Type) Byte() byte {
	var b byte
	if t.Bus.Bit() {
		b |= 1 << 7
	}
	if t.Time {
		b |= 1 << 6
	}
	if t.Address {
		b |= 1 << 5
	}
	if t.Route.Bit() {
		b |= 1 << 4
	}
	if t.Payload {
		b |= 1 << 3
	}
	if t.Request {
		b |= 1 << 2
	}
	if t.Lock {
		b |= 1 << 1
	}
	if t.Unused {
		b |= 1
	}
	return b
}
