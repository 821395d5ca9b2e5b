package netft

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeRDTRequest(t *testing.T) {
	tests := []struct {
		name        string
		command     uint16
		sampleCount uint16
		want        []byte
	}{
		{
			name:        "stream once",
			command:     cmdStreamOnce,
			sampleCount: 1,
			want:        []byte{0x12, 0x34, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01},
		},
		{
			name:        "bias",
			command:     cmdBias,
			sampleCount: 0,
			want:        []byte{0x12, 0x34, 0x00, 0x42, 0x00, 0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeRDTRequest(tt.command, tt.sampleCount)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("request datagram mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// buildRDTResponse assembles a valid 36-byte response around the given counts.
func buildRDTResponse(counts RawCounts) []byte {
	buf := make([]byte, rdtResponseSize)
	for i, c := range counts {
		binary.BigEndian.PutUint32(buf[rdtStatusSize+i*4:], uint32(c))
	}
	return buf
}

func TestDecodeRDTResponse(t *testing.T) {
	counts := RawCounts{1000000, 0, -500000, 0, 2000, -1}
	got, err := DecodeRDTResponse(buildRDTResponse(counts))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(counts, got); diff != "" {
		t.Errorf("decoded counts mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRDTResponseBadLength(t *testing.T) {
	for _, n := range []int{0, 12, 35, 37, 72} {
		if _, err := DecodeRDTResponse(make([]byte, n)); err == nil {
			t.Errorf("decode of %d-byte response succeeded, want error", n)
		}
	}
}

func TestEncodeCalibrationRequest(t *testing.T) {
	got := encodeCalibrationRequest()
	if len(got) != calRequestSize {
		t.Fatalf("request length = %d, want %d", len(got), calRequestSize)
	}
	if got[0] != 1 {
		t.Errorf("command byte = %d, want 1", got[0])
	}
	for i, b := range got[1:] {
		if b != 0 {
			t.Errorf("reserved byte %d = 0x%02x, want zero", i+1, b)
		}
	}
}

// buildCalibrationResponse assembles a 24-byte calibration record.
func buildCalibrationResponse(header uint16, forceUnit, torqueUnit uint8, cpf, cpt uint32, sf [6]uint16) []byte {
	buf := make([]byte, calResponseSize)
	binary.BigEndian.PutUint16(buf[0:2], header)
	buf[2] = forceUnit
	buf[3] = torqueUnit
	binary.BigEndian.PutUint32(buf[4:8], cpf)
	binary.BigEndian.PutUint32(buf[8:12], cpt)
	for i, v := range sf {
		binary.BigEndian.PutUint16(buf[12+i*2:], v)
	}
	return buf
}

func TestDecodeCalibrationResponse(t *testing.T) {
	sf := [6]uint16{10, 20, 30, 40, 50, 60}
	resp := buildCalibrationResponse(headerTag, 2, 3, 1000000, 1000, sf)

	got, err := decodeCalibrationResponse(resp)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	want := CalibrationInfo{
		Header:          headerTag,
		ForceUnitCode:   2,
		TorqueUnitCode:  3,
		CountsPerForce:  1000000,
		CountsPerTorque: 1000,
		ScaleFactors:    sf,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("calibration info mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCalibrationResponseBadHeader(t *testing.T) {
	resp := buildCalibrationResponse(0xbeef, 2, 3, 1000000, 1000, [6]uint16{})
	_, err := decodeCalibrationResponse(resp)
	if err == nil {
		t.Fatal("decode with bad header succeeded, want error")
	}
	if !strings.Contains(err.Error(), "0xbeef") {
		t.Errorf("error %q does not name the observed header value", err)
	}
}

func TestDecodeCalibrationResponseBadLength(t *testing.T) {
	for _, n := range []int{0, 10, 23, 25} {
		if _, err := decodeCalibrationResponse(make([]byte, n)); err == nil {
			t.Errorf("decode of %d-byte response succeeded, want error", n)
		}
	}
}
