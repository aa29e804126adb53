package vmb_test

import (
	"bytes"
	"testing"

	"github.com/GoAethereal/vmb"
)

func u32(v uint32) *uint32 { return &v }
func u64(v uint64) *uint64 { return &v }

func TestMessageEqual(t *testing.T) {
	a := vmb.NewTerminate()
	b := vmb.NewTerminate()
	if !a.Equal(b) {
		t.Fatal("two TERMINATE messages should be equal")
	}

	c, err := vmb.NewWrite(nil, 10, false, 1, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatal(err)
	}
	d, err := vmb.NewWrite(nil, 10, false, 1, []byte{1, 2, 3, 4, 5, 6, 7, 9})
	if err != nil {
		t.Fatal(err)
	}
	if c.Equal(d) {
		t.Fatal("messages with different payload should not be equal")
	}

	var nilMsg *vmb.Message
	if !nilMsg.Equal(nil) {
		t.Fatal("two nil messages should be equal")
	}
	if nilMsg.Equal(a) {
		t.Fatal("nil and non-nil messages should not be equal")
	}
}

func TestMessageValidate(t *testing.T) {
	valid := vmb.NewTerminate()
	if err := valid.Validate(); err != nil {
		t.Fatalf("NewTerminate() should validate, got %v", err)
	}

	badTimestamp := *valid
	badTimestamp.Timestamp = u32(1)
	if err := badTimestamp.Validate(); err == nil {
		t.Fatal("timestamp set without type.time should fail Validate")
	}

	badInterrupt, err := vmb.NewInterrupt(nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	badInterrupt.Header.Slot = 64
	if err := badInterrupt.Validate(); err == nil {
		t.Fatal("interrupt slot 64 should fail Validate")
	}
}

// TestIgnoreScenario is scenario 1 from the streaming-codec properties:
// IGNORE with timestamp and address, slot-routed, locked, slot=10,
// ts=100, addr=50, encoding to 0x72 00 0A 00 00 00 00 64 00 00 00 00 00 00 00 32.
func TestIgnoreScenario(t *testing.T) {
	msg := vmb.NewIgnore(u32(100), u64(50), vmb.SlotRoute, true, 10)

	var buf bytes.Buffer
	if err := vmb.Encode(&buf, msg); err != nil {
		t.Fatal(err)
	}

	want := []byte{0x72, 0x00, 0x0A, 0x00, 0x00, 0x00, 0x00, 0x64, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x32}
	if got := buf.Bytes(); string(got) != string(want) {
		t.Fatalf("encoded = % X, want % X", got, want)
	}

	decoded, err := vmb.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(msg) {
		t.Fatalf("decoded message does not match original: %+v vs %+v", decoded, msg)
	}
	if buf.Len() != 0 {
		t.Fatalf("buffer should be empty after decode, has %d bytes left", buf.Len())
	}
}

// TestTerminateScenario is scenario 2: TERMINATE encodes to 80 00 00 F9.
func TestTerminateScenario(t *testing.T) {
	msg := vmb.NewTerminate()

	var buf bytes.Buffer
	if err := vmb.Encode(&buf, msg); err != nil {
		t.Fatal(err)
	}

	want := []byte{0x80, 0x00, 0x00, 0xF9}
	if got := buf.Bytes(); string(got) != string(want) {
		t.Fatalf("encoded = % X, want % X", got, want)
	}
}

// TestWritebyteScenario is scenario 3: WRITEBYTE with payload [0x41],
// slot=121, addr=10, lock=true, ts=120.
func TestWritebyteScenario(t *testing.T) {
	msg, err := vmb.NewWritebyte(u32(120), 10, []byte{0x41}, true, 121)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := vmb.Encode(&buf, msg); err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x7A, 0x00, 0x79, 0x08,
		0x00, 0x00, 0x00, 0x78,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A,
		0x41, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	if got := buf.Bytes(); string(got) != string(want) {
		t.Fatalf("encoded = % X, want % X", got, want)
	}
}
