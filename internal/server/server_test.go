package server

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GriffinCanCode/hostbridge/internal/channel"
	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProfile = `
device:
  torch_units: ["0"]
  brightness: 100
  permissions:
    write_settings: true
apps:
  - package: com.android.calculator2
    label: Calculator
  - package: com.android.dialer
    label: Phone
  - package: com.android.providers.media
    label: Media
    launchable: false
`

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "device.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testProfile), 0o644))

	cfg := config.Default()
	cfg.Host.Profile = path
	if mutate != nil {
		mutate(cfg)
	}

	srv, err := NewServer(cfg, nil)
	require.NoError(t, err)
	return srv
}

func serve(t *testing.T, srv *Server, lines ...string) []channel.Response {
	t.Helper()
	var out strings.Builder
	require.NoError(t, srv.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out))

	var responses []channel.Response
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		resp, err := channel.DecodeResponse(scanner.Bytes())
		require.NoError(t, err)
		responses = append(responses, resp)
	}
	return responses
}

func TestServeSession(t *testing.T) {
	srv := newTestServer(t, nil)

	responses := serve(t, srv,
		`{"id":"1","channel":"com.example.hanja_magic/apps","method":"getInstalledAppNames"}`,
		`{"id":"2","method":"launchApp","arguments":{"packageName":"com.android.dialer","extraData":"010 1234 5678"}}`,
		`{"id":"3","method":"setSilentMode"}`,
		`{"id":"4","method":"enableDarkMode"}`,
		`{"id":"5","method":"bogus"}`,
		`{"id":"6","channel":"other/channel","method":"getOutApp"}`,
		`not json`,
	)
	require.Len(t, responses, 7)

	assert.Equal(t, types.StatusSuccess, responses[0].Status)
	assert.Equal(t, []interface{}{"Calculator", "Phone"}, responses[0].Result)

	assert.Equal(t, true, responses[1].Result)
	assert.Equal(t, []host.Intent{{Action: host.ActionDial, Data: "tel:01012345678"}}, srv.Device().Started())

	assert.Equal(t, types.StatusError, responses[2].Status)
	require.NotNil(t, responses[2].Error)
	assert.Equal(t, "PERMISSION_DENIED", responses[2].Error.Code)
	assert.Equal(t, []host.Permission{host.PermissionNotificationPolicy}, srv.Device().GrantRequests())

	assert.Equal(t, "Brightness set to 50", responses[3].Result)

	assert.Equal(t, types.StatusNotImplemented, responses[4].Status)

	require.NotNil(t, responses[5].Error)
	assert.Equal(t, channel.CodeChannelMismatch, responses[5].Error.Code)
	assert.Equal(t, 0, srv.Device().Finished())

	require.NotNil(t, responses[6].Error)
	assert.Equal(t, channel.CodeMalformedRequest, responses[6].Error.Code)
}

func TestGetOutAppStopsServing(t *testing.T) {
	srv := newTestServer(t, nil)

	responses := serve(t, srv,
		`{"id":"1","method":"getOutApp"}`,
		`{"id":"2","method":"getInstalledAppNames"}`,
	)

	require.Len(t, responses, 1)
	assert.Equal(t, "App closed", responses[0].Result)
	assert.Equal(t, 1, srv.Device().Finished())
}

func TestCloseWritesMetrics(t *testing.T) {
	textfile := filepath.Join(t.TempDir(), "bridge.prom")
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Metrics.Textfile = textfile
	})

	serve(t, srv, `{"method":"turnOnFlashlight"}`)
	require.NoError(t, srv.Close())

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `hostbridge_dispatch_total{operation="turnOnFlashlight",status="success"} 1`)
}

func TestSysfsBackend(t *testing.T) {
	leds := t.TempDir()
	backlight := t.TempDir()
	for _, dir := range []string{filepath.Join(leds, "white:torch"), filepath.Join(backlight, "panel")} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte("0\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "max_brightness"), []byte("1000\n"), 0o644))
	}

	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Host.Backend = config.BackendSysfs
		cfg.Host.LEDRoot = leds
		cfg.Host.BacklightRoot = backlight
	})

	responses := serve(t, srv,
		`{"method":"turnOnFlashlight"}`,
		`{"method":"enableLightMode"}`,
	)
	require.Len(t, responses, 2)
	assert.Equal(t, "Flashlight turned on", responses[0].Result)
	assert.Equal(t, "Brightness set to 50", responses[1].Result)

	torch, err := os.ReadFile(filepath.Join(leds, "white:torch", "brightness"))
	require.NoError(t, err)
	assert.Equal(t, "1000", string(torch))

	level, err := os.ReadFile(filepath.Join(backlight, "panel", "brightness"))
	require.NoError(t, err)
	assert.Equal(t, "196", string(level))
}

func TestNewServerErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Host.Profile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewServer(cfg, nil)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Channel.Name = " "
	_, err = NewServer(cfg, nil)
	assert.Error(t, err)
}
