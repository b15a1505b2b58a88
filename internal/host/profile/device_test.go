package profile

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/GriffinCanCode/hostbridge/internal/providers/icon"
	"github.com/GriffinCanCode/hostbridge/internal/providers/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func openSample(t *testing.T) (*Device, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "device.yaml"), sampleYAML)
	d, err := Open(filepath.Join(dir, "device.yaml"), nil)
	require.NoError(t, err)
	return d, dir
}

func TestNewDefaults(t *testing.T) {
	d, err := New(&Profile{}, "", nil)
	require.NoError(t, err)

	ctx := context.Background()
	mode, err := d.RingerMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, host.RingerNormal, mode)

	level, err := d.Brightness(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultBrightness, level)

	units, err := d.TorchUnits(ctx)
	require.NoError(t, err)
	assert.Empty(t, units)

	assert.NoError(t, d.Capabilities().Validate())
}

func TestNewRejectsBadState(t *testing.T) {
	_, err := New(&Profile{Device: DeviceSpec{RingerMode: "loud"}}, "", nil)
	assert.Error(t, err)

	level := 300
	_, err = New(&Profile{Device: DeviceSpec{Brightness: &level}}, "", nil)
	assert.Error(t, err)
}

func TestInventory(t *testing.T) {
	d, _ := openSample(t)
	ctx := context.Background()

	apps, err := d.Applications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "Calculator", apps[0].Label)

	intent, ok := d.LaunchIntent(ctx, "com.android.calculator2")
	require.True(t, ok)
	assert.Equal(t, host.Intent{Action: host.ActionMain, Package: "com.android.calculator2"}, *intent)

	_, ok = d.LaunchIntent(ctx, "com.android.providers.media")
	assert.False(t, ok)

	_, ok = d.LaunchIntent(ctx, "com.unknown")
	assert.False(t, ok)
}

func TestIconSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "device.yaml"), `
apps:
  - package: com.example.declared
    icon: art/declared.png
  - package: com.example.tile
    drawable: {width: 4, height: 2, color: "#00ff0080"}
  - package: com.example.indexed
  - package: com.example.vector
  - package: com.example.bare
`)
	writeFile(t, filepath.Join(dir, "art", "declared.png"), string(pngBytes(t, 3, 3)))
	writeFile(t, filepath.Join(dir, "icons", "com.example.indexed.png"), string(pngBytes(t, 5, 7)))
	writeFile(t, filepath.Join(dir, "icons", "nested", "com.example.vector.svg"),
		`<svg xmlns="http://www.w3.org/2000/svg" width="8" height="8"></svg>`)

	d, err := Open(filepath.Join(dir, "device.yaml"), nil)
	require.NoError(t, err)
	ctx := context.Background()

	res, err := d.Icon(ctx, "com.example.declared")
	require.NoError(t, err)
	img, ok := res.(image.Image)
	require.True(t, ok)
	assert.Equal(t, 3, img.Bounds().Dx())

	res, err = d.Icon(ctx, "com.example.tile")
	require.NoError(t, err)
	drawable, ok := res.(host.Drawable)
	require.True(t, ok)
	assert.Equal(t, 4, drawable.IntrinsicWidth())
	assert.Equal(t, 2, drawable.IntrinsicHeight())

	res, err = d.Icon(ctx, "com.example.indexed")
	require.NoError(t, err)
	img, ok = res.(image.Image)
	require.True(t, ok)
	assert.Equal(t, 7, img.Bounds().Dy())

	res, err = d.Icon(ctx, "com.example.vector")
	require.NoError(t, err)
	raw, ok := res.(RawIcon)
	require.True(t, ok)
	assert.Contains(t, raw.MIME, "svg")
	_, err = icon.Encode(res)
	assert.Error(t, err)

	_, err = d.Icon(ctx, "com.example.bare")
	assert.Error(t, err)

	_, err = d.Icon(ctx, "com.unknown")
	assert.Error(t, err)
}

func TestColorDrawable(t *testing.T) {
	encoded, err := icon.Encode(ColorDrawable{Width: 2, Height: 2, Color: "#3b82f6"})
	require.NoError(t, err)

	data, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	r, g, b, a := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0x3b3b), r)
	assert.Equal(t, uint32(0x8282), g)
	assert.Equal(t, uint32(0xf6f6), b)
	assert.Equal(t, uint32(0xffff), a)

	_, err = icon.Encode(ColorDrawable{Width: 2, Height: 2, Color: "blue"})
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	c, err := parseHexColor("#11223344")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, c)

	_, err = parseHexColor("#12345")
	assert.Error(t, err)
	_, err = parseHexColor("#gggggg")
	assert.Error(t, err)
}

func TestFindByNameThroughInventory(t *testing.T) {
	d, _ := openSample(t)
	provider := inventory.NewProvider(d, nil)

	rec, err := provider.FindByName(context.Background(), "tile")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "com.example.tile", rec.Package)
	assert.True(t, rec.HasIcon())

	rec, err = provider.FindByName(context.Background(), "media")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestLaunchRecording(t *testing.T) {
	d, _ := openSample(t)
	ctx := context.Background()

	intent := host.Intent{Action: host.ActionDial, Data: "tel:123"}
	require.NoError(t, d.Start(ctx, intent))
	assert.Equal(t, []host.Intent{intent}, d.Started())

	d.launchFails = true
	assert.Error(t, d.Start(ctx, intent))
	assert.Len(t, d.Started(), 1)
}

func TestTorch(t *testing.T) {
	d, _ := openSample(t)
	ctx := context.Background()

	require.NoError(t, d.SetTorchMode(ctx, "1", true))
	assert.True(t, d.TorchState("1"))
	assert.False(t, d.TorchState("0"))

	err := d.SetTorchMode(ctx, "9", true)
	assert.ErrorIs(t, err, host.ErrUnavailable)

	d.torchRejects = true
	assert.Error(t, d.SetTorchMode(ctx, "0", true))
}

func TestRingerNeedsPolicyForSilent(t *testing.T) {
	d, _ := openSample(t)
	ctx := context.Background()

	require.NoError(t, d.SetRingerMode(ctx, host.RingerSilent))

	d.Grant(host.PermissionNotificationPolicy, false)
	assert.Error(t, d.SetRingerMode(ctx, host.RingerSilent))

	require.NoError(t, d.SetRingerMode(ctx, host.RingerNormal))
	mode, err := d.RingerMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, host.RingerNormal, mode)
}

func TestBrightness(t *testing.T) {
	d, _ := openSample(t)
	ctx := context.Background()

	level, err := d.Brightness(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200, level)

	require.NoError(t, d.SetBrightness(ctx, 10))
	level, err = d.Brightness(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, level)

	assert.Error(t, d.SetBrightness(ctx, 256))

	d.brightnessFault = true
	_, err = d.Brightness(ctx)
	assert.ErrorIs(t, err, host.ErrUnavailable)
	assert.ErrorIs(t, d.SetBrightness(ctx, 1), host.ErrUnavailable)
}

func TestPermissionsAndFinish(t *testing.T) {
	d, _ := openSample(t)
	ctx := context.Background()

	assert.True(t, d.HasPermission(ctx, host.PermissionNotificationPolicy))
	assert.False(t, d.HasPermission(ctx, host.PermissionWriteSettings))

	d.RequestGrant(ctx, host.PermissionWriteSettings)
	assert.Equal(t, []host.Permission{host.PermissionWriteSettings}, d.GrantRequests())
	assert.False(t, d.HasPermission(ctx, host.PermissionWriteSettings))

	d.Grant(host.PermissionWriteSettings, true)
	assert.True(t, d.HasPermission(ctx, host.PermissionWriteSettings))

	calls := 0
	d.OnFinish(func() { calls++ })
	d.FinishAll(ctx)
	assert.Equal(t, 1, d.Finished())
	assert.Equal(t, 1, calls)
}
