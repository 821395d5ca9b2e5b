package netft

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// CalibrationInfo is the sensor-reported calibration record: unit codes
// for both axis groups, the count divisors, and one 16-bit scale factor
// per axis.
type CalibrationInfo struct {
	Header          uint16
	ForceUnitCode   uint8
	TorqueUnitCode  uint8
	CountsPerForce  uint32
	CountsPerTorque uint32
	ScaleFactors    [6]uint16
}

// ReadCalibrationInfo queries the sensor's calibration record. Each call
// dials a fresh TCP connection (never pooled), bounds the whole exchange
// with the configured timeout, and closes the connection on every exit
// path. The 24-byte response is accumulated with io.ReadFull, so an
// early peer close surfaces as a short-read error.
func (c *Client) ReadCalibrationInfo() (CalibrationInfo, error) {
	var info CalibrationInfo

	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.TCPPort))
	conn, err := net.DialTimeout("tcp", addr, c.cfg.Timeout)
	if err != nil {
		return info, fmt.Errorf("connect to calibration port: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.cfg.Timeout)); err != nil {
		return info, fmt.Errorf("set calibration deadline: %w", err)
	}
	if _, err := conn.Write(encodeCalibrationRequest()); err != nil {
		return info, fmt.Errorf("send calibration request: %w", err)
	}

	buf := make([]byte, calResponseSize)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return info, fmt.Errorf("receive calibration response: %w", err)
	}
	return decodeCalibrationResponse(buf)
}

// DerivedScaleFactors converts the calibration divisors into
// ScaleFactors usable by a Client, rejecting zero divisors.
func (info CalibrationInfo) DerivedScaleFactors() (ScaleFactors, error) {
	s := ScaleFactors{
		CountsPerForce:  float64(info.CountsPerForce),
		CountsPerTorque: float64(info.CountsPerTorque),
	}
	if err := s.Validate(); err != nil {
		return ScaleFactors{}, fmt.Errorf("calibration reports unusable divisors: %w", err)
	}
	return s, nil
}

// Summary renders the record with unit codes resolved to names.
func (info CalibrationInfo) Summary() string {
	return fmt.Sprintf("force unit %s, torque unit %s, %d counts/force, %d counts/torque, scale factors %v",
		ForceUnitName(info.ForceUnitCode), TorqueUnitName(info.TorqueUnitCode),
		info.CountsPerForce, info.CountsPerTorque, info.ScaleFactors)
}
