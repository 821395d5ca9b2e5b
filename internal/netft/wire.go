package netft

import (
	"encoding/binary"
	"fmt"
)

// Net F/T wire format constants. Both protocols use fixed-size
// big-endian records prefixed with the same header tag.
const (
	headerTag = 0x1234

	cmdStreamOnce = 0x0002 // start streaming, transmit a single record
	cmdBias       = 0x0042 // software bias: current reading becomes zero

	rdtRequestSize  = 8
	rdtResponseSize = 36
	rdtStatusSize   = 12 // status header preceding the counts, not decoded here

	calRequestSize  = 20
	calResponseSize = 24
)

// encodeRDTRequest builds the fixed 8-byte RDT request datagram:
// u16 header, u16 command, u16 unused sample field, u16 sample count.
func encodeRDTRequest(command, sampleCount uint16) []byte {
	buf := make([]byte, rdtRequestSize)
	binary.BigEndian.PutUint16(buf[0:2], headerTag)
	binary.BigEndian.PutUint16(buf[2:4], command)
	binary.BigEndian.PutUint16(buf[6:8], sampleCount)
	return buf
}

// DecodeRDTResponse decodes a 36-byte RDT response datagram: a 12-byte
// status header followed by six big-endian int32 counts. Any other
// length is a protocol error; no partial decode is attempted.
func DecodeRDTResponse(data []byte) (RawCounts, error) {
	var raw RawCounts
	if len(data) != rdtResponseSize {
		return raw, fmt.Errorf("invalid RDT response length: got %d bytes, want %d", len(data), rdtResponseSize)
	}
	for i := range raw {
		off := rdtStatusSize + i*4
		raw[i] = int32(binary.BigEndian.Uint32(data[off : off+4]))
	}
	return raw, nil
}

// encodeCalibrationRequest builds the 20-byte calibration query: a
// single command byte (1 = read calibration info) and 19 zero bytes.
func encodeCalibrationRequest() []byte {
	buf := make([]byte, calRequestSize)
	buf[0] = 1
	return buf
}

// decodeCalibrationResponse decodes the 24-byte calibration record and
// validates the header tag, reporting the observed value on mismatch.
func decodeCalibrationResponse(data []byte) (CalibrationInfo, error) {
	var info CalibrationInfo
	if len(data) != calResponseSize {
		return info, fmt.Errorf("invalid calibration response length: got %d bytes, want %d", len(data), calResponseSize)
	}
	info.Header = binary.BigEndian.Uint16(data[0:2])
	if info.Header != headerTag {
		return info, fmt.Errorf("invalid calibration header: got 0x%04x, want 0x%04x", info.Header, uint16(headerTag))
	}
	info.ForceUnitCode = data[2]
	info.TorqueUnitCode = data[3]
	info.CountsPerForce = binary.BigEndian.Uint32(data[4:8])
	info.CountsPerTorque = binary.BigEndian.Uint32(data[8:12])
	for i := range info.ScaleFactors {
		off := 12 + i*2
		info.ScaleFactors[i] = binary.BigEndian.Uint16(data[off : off+2])
	}
	return info, nil
}
