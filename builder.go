package vmb

// Builder constructs a Message one field at a time. Each fluent setter
// mutates and returns the same *Builder so calls chain; Route and Payload
// can fail and return an error alongside the *Builder, matching the point
// in the original protocol design where the violated precondition is
// first detected. Finalize hands back the assembled Message.
//
// The 21 New* factories below cover every predefined message kind and are
// the preferred way to build a Message — reach for a bare Builder only
// when assembling something the factories don't cover.
type Builder struct {
	msg Message
}

// NewBuilder starts a Builder with every field at its zero value: bus
// DeviceMessage, route SlotRoute, id Other(0) (which is also Ignore —
// they share byte 0), everything else false/zero.
func NewBuilder() *Builder {
	return &Builder{
		msg: Message{
			Header: Header{
				Type: Type{
					Bus:   DeviceMessage,
					Route: SlotRoute,
				},
				Id: Other(0),
			},
		},
	}
}

// Bus sets the bus bit.
func (b *Builder) Bus(bus Bus) *Builder {
	b.msg.Header.Type.Bus = bus
	return b
}

// Timestamp sets the time bit and the timestamp value.
func (b *Builder) Timestamp(ts uint32) *Builder {
	b.msg.Header.Type.Time = true
	b.msg.Timestamp = &ts
	return b
}

// Address sets the address bit and the address value.
func (b *Builder) Address(addr uint64) *Builder {
	b.msg.Header.Type.Address = true
	b.msg.Address = &addr
	return b
}

// Route sets the route bit. Setting OtherRoute is rejected with an
// ErrRoute-kind *BuilderError unless id is IGNORE (byte 0) or bus is
// already BusMessage.
func (b *Builder) Route(route Route) (*Builder, error) {
	if route == OtherRoute {
		if b.msg.Header.Id.Byte() != Ignore.Byte() && b.msg.Header.Type.Bus != BusMessage {
			return b, routeError("route(OtherRoute) requires id=IGNORE or bus=BusMessage")
		}
	}
	b.msg.Header.Type.Route = route
	return b, nil
}

// Payload sets the payload bit, the payload bytes, and the derived size
// byte. It fails with an ErrPayload-kind *BuilderError if payload is
// empty, not a multiple of 8 bytes, or longer than MaxPayloadSize.
func (b *Builder) Payload(payload []byte) (*Builder, error) {
	if len(payload) == 0 || len(payload)%OctaSize != 0 || len(payload) > MaxPayloadSize {
		return b, payloadError("payload length must be a positive multiple of 8 up to 2048 bytes")
	}
	b.msg.Header.Type.Payload = true
	b.msg.Header.Size = byte(len(payload)/OctaSize - 1)
	b.msg.Payload = payload
	return b, nil
}

// Request sets the request bit.
func (b *Builder) Request(request bool) *Builder {
	b.msg.Header.Type.Request = request
	return b
}

// Lock sets the lock bit.
func (b *Builder) Lock(lock bool) *Builder {
	b.msg.Header.Type.Lock = lock
	return b
}

// Slot sets the SLOT byte.
func (b *Builder) Slot(slot byte) *Builder {
	b.msg.Header.Slot = slot
	return b
}

// Id sets the ID byte.
func (b *Builder) Id(id Id) *Builder {
	b.msg.Header.Id = id
	return b
}

// Finalize returns the assembled Message and resets the Builder to a
// fresh zero state, so a Builder can be reused across multiple messages
// instead of allocating a new one each time — the same buffer-reuse idea
// as bytes.Buffer.Reset.
func (b *Builder) Finalize() *Message {
	msg := b.msg
	b.Reset()
	return &msg
}

// Reset returns the Builder to the same zero state NewBuilder produces,
// so one long-lived Builder can be reused across many messages in a hot
// path (e.g. a device simulator emitting many WRITE messages) instead of
// allocating a fresh Builder each time.
func (b *Builder) Reset() {
	*b = *NewBuilder()
}

func writeWordHelper(timestamp *uint32, address uint64, payload []byte, lock bool, slot byte, id Id) *Message {
	b := NewBuilder().Bus(DeviceMessage).Address(address).Id(id).Slot(slot)
	if _, err := b.Route(SlotRoute); err != nil {
		panic("vmb: SlotRoute can never fail route validation")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	if lock {
		b.Lock(true)
	}
	msg := b.Finalize()
	msg.Header.Type.Payload = true
	msg.Header.Size = 0
	msg.Payload = payload
	return msg
}

func padTo8(payload []byte) []byte {
	out := make([]byte, OctaSize)
	copy(out, payload)
	return out
}

// NewIgnore constructs an IGNORE message. The receiver may always safely
// discard it; route/slot/address determine who (if anyone) acts on it.
func NewIgnore(timestamp *uint32, address *uint64, route Route, lock bool, slot byte) *Message {
	b := NewBuilder().Bus(DeviceMessage).Id(Ignore).Slot(slot)
	if _, err := b.Route(route); err != nil {
		panic("vmb: IGNORE always has id=0, route can never fail")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	if address != nil {
		b.Address(*address)
	}
	if lock {
		b.Lock(true)
	}
	return b.Finalize()
}

// NewRead constructs a READ message requesting size+1 octas from address.
func NewRead(timestamp *uint32, address uint64, lock bool, slot byte) *Message {
	b := NewBuilder().Bus(DeviceMessage).Address(address).Id(Read).Request(true).Slot(slot)
	if _, err := b.Route(SlotRoute); err != nil {
		panic("vmb: SlotRoute can never fail route validation")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	if lock {
		b.Lock(true)
	}
	return b.Finalize()
}

// NewWrite constructs a WRITE message storing payload at address. Payload
// must be a positive multiple of 8 bytes, up to MaxPayloadSize.
func NewWrite(timestamp *uint32, address uint64, lock bool, slot byte, payload []byte) (*Message, error) {
	b := NewBuilder().Bus(DeviceMessage).Address(address).Id(Write).Slot(slot)
	if _, err := b.Route(SlotRoute); err != nil {
		panic("vmb: SlotRoute can never fail route validation")
	}
	if _, err := b.Payload(payload); err != nil {
		return nil, err
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	if lock {
		b.Lock(true)
	}
	return b.Finalize(), nil
}

// NewReadreply constructs a READREPLY message answering a Read.
func NewReadreply(timestamp *uint32, address uint64, lock bool, slot byte, payload []byte) (*Message, error) {
	b := NewBuilder().Bus(DeviceMessage).Address(address).Id(Readreply).Slot(slot)
	if _, err := b.Route(SlotRoute); err != nil {
		panic("vmb: SlotRoute can never fail route validation")
	}
	if _, err := b.Payload(payload); err != nil {
		return nil, err
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	if lock {
		b.Lock(true)
	}
	return b.Finalize(), nil
}

// NewNoreply constructs a NOREPLY message, telling the sender of a Read
// variant that the request could not be answered.
func NewNoreply(timestamp *uint32, address uint64, lock bool, slot byte) *Message {
	b := NewBuilder().Bus(DeviceMessage).Address(address).Id(Noreply).Slot(slot)
	if _, err := b.Route(SlotRoute); err != nil {
		panic("vmb: SlotRoute can never fail route validation")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	if lock {
		b.Lock(true)
	}
	return b.Finalize()
}

func readWordHelper(timestamp *uint32, address uint64, lock bool, slot byte, id Id) *Message {
	b := NewBuilder().Bus(DeviceMessage).Address(address).Id(id).Request(true).Slot(slot)
	if _, err := b.Route(SlotRoute); err != nil {
		panic("vmb: SlotRoute can never fail route validation")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	if lock {
		b.Lock(true)
	}
	return b.Finalize()
}

// NewReadbyte constructs a READBYTE message: request for 1 byte.
func NewReadbyte(timestamp *uint32, address uint64, lock bool, slot byte) *Message {
	return readWordHelper(timestamp, address, lock, slot, Readbyte)
}

// NewReadwyde constructs a READWYDE message: request for 2 bytes.
func NewReadwyde(timestamp *uint32, address uint64, lock bool, slot byte) *Message {
	return readWordHelper(timestamp, address, lock, slot, Readwyde)
}

// NewReadtetra constructs a READTETRA message: request for 4 bytes.
func NewReadtetra(timestamp *uint32, address uint64, lock bool, slot byte) *Message {
	return readWordHelper(timestamp, address, lock, slot, Readtetra)
}

// NewWritebyte constructs a WRITEBYTE message. payload must be exactly 1
// byte; it is right-padded with zeros to a full octa on the wire.
func NewWritebyte(timestamp *uint32, address uint64, payload []byte, lock bool, slot byte) (*Message, error) {
	if len(payload) != 1 {
		return nil, payloadError("writebyte payload must be exactly 1 byte")
	}
	return writeWordHelper(timestamp, address, padTo8(payload), lock, slot, Writebyte), nil
}

// NewWritewyde constructs a WRITEWYDE message. payload must be exactly 2
// bytes; it is right-padded with zeros to a full octa on the wire.
func NewWritewyde(timestamp *uint32, address uint64, payload []byte, lock bool, slot byte) (*Message, error) {
	if len(payload) != 2 {
		return nil, payloadError("writewyde payload must be exactly 2 bytes")
	}
	return writeWordHelper(timestamp, address, padTo8(payload), lock, slot, Writewyde), nil
}

// NewWritetetra constructs a WRITETETRA message. payload must be exactly
// 4 bytes; it is right-padded with zeros to a full octa on the wire.
func NewWritetetra(timestamp *uint32, address uint64, payload []byte, lock bool, slot byte) (*Message, error) {
	if len(payload) != 4 {
		return nil, payloadError("writetetra payload must be exactly 4 bytes")
	}
	return writeWordHelper(timestamp, address, padTo8(payload), lock, slot, Writetetra), nil
}

// NewBytereply constructs a BYTEREPLY message answering a Readbyte.
// payload must be exactly 1 byte; it is right-padded to a full octa.
func NewBytereply(timestamp *uint32, address uint64, payload []byte, lock bool, slot byte) (*Message, error) {
	if len(payload) != 1 {
		return nil, payloadError("bytereply payload must be exactly 1 byte")
	}
	return writeWordHelper(timestamp, address, padTo8(payload), lock, slot, Bytereply), nil
}

// NewWydereply constructs a WYDEREPLY message answering a Readwyde.
// payload must be exactly 2 bytes; it is right-padded to a full octa.
func NewWydereply(timestamp *uint32, address uint64, payload []byte, lock bool, slot byte) (*Message, error) {
	if len(payload) != 2 {
		return nil, payloadError("wydereply payload must be exactly 2 bytes")
	}
	return writeWordHelper(timestamp, address, padTo8(payload), lock, slot, Wydereply), nil
}

// NewTetrareply constructs a TETRAREPLY message answering a Readtetra.
// payload must be exactly 4 bytes; it is right-padded to a full octa.
func NewTetrareply(timestamp *uint32, address uint64, payload []byte, lock bool, slot byte) (*Message, error) {
	if len(payload) != 4 {
		return nil, payloadError("tetrareply payload must be exactly 4 bytes")
	}
	return writeWordHelper(timestamp, address, padTo8(payload), lock, slot, Tetrareply), nil
}

// NewTerminate constructs a TERMINATE message: the motherboard's polite
// request for a device simulator to end.
func NewTerminate() *Message {
	b := NewBuilder().Bus(BusMessage).Id(Terminate)
	if _, err := b.Route(OtherRoute); err != nil {
		panic("vmb: bus=BusMessage always permits OtherRoute")
	}
	return b.Finalize()
}

// NewRegister constructs a REGISTER message claiming a memory range and
// interrupt mask for the sending device.
func NewRegister(timestamp *uint32, lock bool, slot byte, payload []byte) (*Message, error) {
	b := NewBuilder().Bus(BusMessage).Id(Register).Slot(slot)
	if _, err := b.Payload(payload); err != nil {
		return nil, err
	}
	if _, err := b.Route(OtherRoute); err != nil {
		panic("vmb: bus=BusMessage always permits OtherRoute")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	if lock {
		b.Lock(true)
	}
	return b.Finalize(), nil
}

// NewUnregister constructs an UNREGISTER message releasing a previously
// registered memory range.
func NewUnregister(timestamp *uint32, lock bool, slot byte) *Message {
	b := NewBuilder().Bus(BusMessage).Id(Unregister).Slot(slot)
	if _, err := b.Route(OtherRoute); err != nil {
		panic("vmb: bus=BusMessage always permits OtherRoute")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	if lock {
		b.Lock(true)
	}
	return b.Finalize()
}

// NewInterrupt constructs an INTERRUPT message raising interrupt number
// slot. slot must be <= 63.
func NewInterrupt(timestamp *uint32, slot byte) (*Message, error) {
	if slot > 63 {
		return nil, slotError("interrupt slot must be <= 63")
	}
	b := NewBuilder().Bus(BusMessage).Id(Interrupt).Slot(slot)
	if _, err := b.Route(OtherRoute); err != nil {
		panic("vmb: bus=BusMessage always permits OtherRoute")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	return b.Finalize(), nil
}

// NewReset constructs a RESET message: the hardware reset signal.
func NewReset(timestamp *uint32, slot byte) *Message {
	b := NewBuilder().Bus(BusMessage).Id(Reset).Slot(slot)
	if _, err := b.Route(OtherRoute); err != nil {
		panic("vmb: bus=BusMessage always permits OtherRoute")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	return b.Finalize()
}

// NewPoweroff constructs a POWEROFF message: the end-of-life signal.
func NewPoweroff(timestamp *uint32, slot byte) *Message {
	b := NewBuilder().Bus(BusMessage).Id(Poweroff).Slot(slot)
	if _, err := b.Route(OtherRoute); err != nil {
		panic("vmb: bus=BusMessage always permits OtherRoute")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	return b.Finalize()
}

// NewPoweron constructs a POWERON message: the beginning-of-life signal.
func NewPoweron(timestamp *uint32, slot byte) *Message {
	b := NewBuilder().Bus(BusMessage).Id(Poweron).Slot(slot)
	if _, err := b.Route(OtherRoute); err != nil {
		panic("vmb: bus=BusMessage always permits OtherRoute")
	}
	if timestamp != nil {
		b.Timestamp(*timestamp)
	}
	return b.Finalize()
}
