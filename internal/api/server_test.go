package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/netft/internal/ftstats"
	"github.com/banshee-data/netft/internal/ftstore"
	"github.com/banshee-data/netft/internal/netft"
)

// stubSensor implements SensorReader without a network.
type stubSensor struct {
	reading    netft.Reading
	info       netft.CalibrationInfo
	readErr    error
	calErr     error
	biasErr    error
	biasCalled int
}

func (s *stubSensor) ReadFT() (netft.Reading, error) {
	return s.reading, s.readErr
}

func (s *stubSensor) ReadCalibrationInfo() (netft.CalibrationInfo, error) {
	return s.info, s.calErr
}

func (s *stubSensor) Bias() error {
	s.biasCalled++
	return s.biasErr
}

func newTestServer(t *testing.T, sensor *stubSensor) (*Server, *ftstore.Store) {
	t.Helper()
	store, err := ftstore.Open(filepath.Join(t.TempDir(), "readings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewServer(sensor, store), store
}

func doRequest(server *Server, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	server.ServeMux().ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestShowLiveReading(t *testing.T) {
	sensor := &stubSensor{reading: netft.Reading{Fx: 1.5, Tz: -0.25}}
	server, _ := newTestServer(t, sensor)

	w := doRequest(server, http.MethodGet, "/api/reading")
	require.Equal(t, http.StatusOK, w.Code)

	var got netft.Reading
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, sensor.reading, got)
}

func TestShowLiveReadingSensorFailure(t *testing.T) {
	sensor := &stubSensor{readErr: errors.New("receive RDT response: timeout")}
	server, _ := newTestServer(t, sensor)

	w := doRequest(server, http.MethodGet, "/api/reading")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestShowLatestReading(t *testing.T) {
	server, store := newTestServer(t, &stubSensor{})

	// Empty store
	w := doRequest(server, http.MethodGet, "/api/reading/latest")
	assert.Equal(t, http.StatusNotFound, w.Code)

	session, err := store.CreateSession("")
	require.NoError(t, err)
	require.NoError(t, store.RecordReading(session, time.Now(),
		netft.RawCounts{100, 0, 0, 0, 0, 0}, netft.Reading{Fx: 0.1}))

	w = doRequest(server, http.MethodGet, "/api/reading/latest")
	require.Equal(t, http.StatusOK, w.Code)

	var got ftstore.TimedReading
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0.1, got.Reading.Fx)
}

func TestShowCalibration(t *testing.T) {
	sensor := &stubSensor{info: netft.CalibrationInfo{
		ForceUnitCode:   2,
		TorqueUnitCode:  3,
		CountsPerForce:  1000000,
		CountsPerTorque: 1000,
	}}
	server, _ := newTestServer(t, sensor)

	w := doRequest(server, http.MethodGet, "/api/calibration")
	require.Equal(t, http.StatusOK, w.Code)

	var got calibrationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Newton", got.ForceUnit)
	assert.Equal(t, "Newton-meter", got.TorqueUnit)
	assert.Equal(t, uint32(1000000), got.CountsPerForce)
}

func TestShowSessionStats(t *testing.T) {
	server, store := newTestServer(t, &stubSensor{})

	session, err := store.CreateSession("")
	require.NoError(t, err)
	base := time.Now()
	require.NoError(t, store.RecordReading(session, base, netft.RawCounts{}, netft.Reading{Fx: 1}))
	require.NoError(t, store.RecordReading(session, base.Add(time.Millisecond), netft.RawCounts{}, netft.Reading{Fx: 3}))

	w := doRequest(server, http.MethodGet, "/api/stats?session="+session)
	require.Equal(t, http.StatusOK, w.Code)

	var got []ftstats.AxisSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 6)
	assert.Equal(t, 2.0, got[0].Mean)

	// Missing session parameter is rejected.
	w = doRequest(server, http.MethodGet, "/api/stats")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendBias(t *testing.T) {
	sensor := &stubSensor{}
	server, _ := newTestServer(t, sensor)

	w := doRequest(server, http.MethodPost, "/api/bias")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, sensor.biasCalled)

	// GET is not allowed.
	w = doRequest(server, http.MethodGet, "/api/bias")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	// A transport failure is reported, not swallowed.
	sensor.biasErr = errors.New("send bias command: network is unreachable")
	w = doRequest(server, http.MethodPost, "/api/bias")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
