package vmb_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/GoAethereal/vmb"
)

// TestPartialWriteDelivery is scenario 4 from §8: a 16-byte-payload WRITE
// split after byte 7 must report incomplete and leave the prefix intact;
// appending the remainder must then yield the whole Message.
func TestPartialWriteDelivery(t *testing.T) {
	msg, err := vmb.NewWrite(nil, 10, false, 1, make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}

	var full bytes.Buffer
	if err := vmb.Encode(&full, msg); err != nil {
		t.Fatal(err)
	}
	encoded := full.Bytes()

	var buf bytes.Buffer
	buf.Write(encoded[:7])

	if _, err := vmb.Decode(&buf); !errors.Is(err, vmb.ErrIncomplete) {
		t.Fatalf("Decode on 7 of %d bytes: got %v, want ErrIncomplete", len(encoded), err)
	}
	if buf.Len() != 7 {
		t.Fatalf("buffer should be untouched at 7 bytes, has %d", buf.Len())
	}

	buf.Write(encoded[7:])
	decoded, err := vmb.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode after appending remainder: %v", err)
	}
	if !decoded.Equal(msg) {
		t.Fatalf("decoded = %+v, want %+v", decoded, msg)
	}
	if buf.Len() != 0 {
		t.Fatalf("buffer should be empty after full decode, has %d", buf.Len())
	}
}

// TestStreamingConcatenation covers §8's streaming-concatenation
// property: two frames fed in as one buffer decode in order, then
// incomplete.
func TestStreamingConcatenation(t *testing.T) {
	m1 := vmb.NewTerminate()
	m2, err := vmb.NewWrite(nil, 1, false, 2, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := vmb.Encode(&buf, m1); err != nil {
		t.Fatal(err)
	}
	if err := vmb.Encode(&buf, m2); err != nil {
		t.Fatal(err)
	}

	got1, err := vmb.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !got1.Equal(m1) {
		t.Fatalf("first decoded = %+v, want %+v", got1, m1)
	}

	got2, err := vmb.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !got2.Equal(m2) {
		t.Fatalf("second decoded = %+v, want %+v", got2, m2)
	}

	if _, err := vmb.Decode(&buf); !errors.Is(err, vmb.ErrIncomplete) {
		t.Fatalf("decode on drained buffer: got %v, want ErrIncomplete", err)
	}
}

func TestDecodeEmptyBuffer(t *testing.T) {
	var buf bytes.Buffer
	if _, err := vmb.Decode(&buf); !errors.Is(err, vmb.ErrIncomplete) {
		t.Fatalf("Decode on empty buffer: got %v, want ErrIncomplete", err)
	}
}

func TestCodecMaxFrameSize(t *testing.T) {
	msg, err := vmb.NewWrite(nil, 0, false, 0, make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := vmb.Encode(&buf, msg); err != nil {
		t.Fatal(err)
	}

	c := vmb.NewCodec(vmb.WithMaxFrameSize(8))
	if _, err := c.Decode(&buf); !errors.Is(err, vmb.ErrFrameTooLarge) {
		t.Fatalf("Decode with MaxFrameSize=8 on a 28-byte frame: got %v, want ErrFrameTooLarge", err)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	c := vmb.NewCodec()
	msg := vmb.NewTerminate()

	var buf bytes.Buffer
	if err := c.Encode(&buf, msg); err != nil {
		t.Fatal(err)
	}
	decoded, err := c.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(msg) {
		t.Fatalf("decoded = %+v, want %+v", decoded, msg)
	}
}

func FuzzDecode(f *testing.F) {
	msg := vmb.NewTerminate()
	var seed bytes.Buffer
	vmb.Encode(&seed, msg)
	f.Add(seed.Bytes())
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00, 0x00})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		buf := bytes.NewBuffer(data)
		before := buf.Len()
		_, err := vmb.Decode(buf)
		if err != nil {
			if !errors.Is(err, vmb.ErrIncomplete) {
				t.Fatalf("Decode returned unexpected error: %v", err)
			}
			if buf.Len() != before {
				t.Fatalf("ErrIncomplete must not consume bytes: had %d, now %d", before, buf.Len())
			}
		}
	})
}
