// encoding_test.go
package encoding

import (
	"encoding/binary"
	"io"
	"testing"
)

// --- UnmarshalInt32LSBMSB Tests ---

// TestUnmarshalInt32LSBMSB_Positive tests a valid 32-bit integer decoding.
func TestUnmarshalInt32LSBMSB_Positive(t *testing.T) {
	var buf [8]byte
	value := int32(12345678)
	// Create 8 bytes where both representations encode the same value.
	binary.LittleEndian.PutUint32(buf[0:4], uint32(value))
	binary.BigEndian.PutUint32(buf[4:8], uint32(value))

	result, err := UnmarshalInt32LSBMSB(buf[:])
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result != value {
		t.Errorf("Expected %d, got %d", value, result)
	}
}

// TestUnmarshalInt32LSBMSB_Negative tests error conditions for UnmarshalInt32LSBMSB.
func TestUnmarshalInt32LSBMSB_Negative(t *testing.T) {
	// Test with insufficient data.
	data := []byte{0, 1, 2, 3, 4, 5, 6} // Only 7 bytes.
	_, err := UnmarshalInt32LSBMSB(data)
	if err != io.ErrUnexpectedEOF {
		t.Errorf("Expected error %v for insufficient data, got %v", io.ErrUnexpectedEOF, err)
	}

	// Test with mismatched little- and big-endian representations.
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(100))
	binary.BigEndian.PutUint32(buf[4:8], uint32(101))
	_, err = UnmarshalInt32LSBMSB(buf[:])
	if err == nil {
		t.Errorf("Expected error for mismatched values, got nil")
	}
}

// --- UnmarshalInt16LSBMSB Tests ---

// TestUnmarshalInt16LSBMSB_Positive tests a valid 16-bit integer decoding.
func TestUnmarshalInt16LSBMSB_Positive(t *testing.T) {
	var buf [4]byte
	value := int16(12345)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(value))
	binary.BigEndian.PutUint16(buf[2:4], uint16(value))

	result, err := UnmarshalInt16LSBMSB(buf[:])
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result != value {
		t.Errorf("Expected %d, got %d", value, result)
	}
}

// TestUnmarshalInt16LSBMSB_Negative tests error conditions for 16-bit decoding.
func TestUnmarshalInt16LSBMSB_Negative(t *testing.T) {
	// Test with insufficient data.
	data := []byte{0, 1, 2} // Only 3 bytes.
	_, err := UnmarshalInt16LSBMSB(data)
	if err != io.ErrUnexpectedEOF {
		t.Errorf("Expected error %v for insufficient data, got %v", io.ErrUnexpectedEOF, err)
	}

	// Test with mismatched little- and big-endian representations.
	var buf [4]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(300))
	binary.BigEndian.PutUint16(buf[2:4], uint16(301))
	_, err = UnmarshalInt16LSBMSB(buf[:])
	if err == nil {
		t.Errorf("Expected error for mismatched values, got nil")
	}
}
