package launcher

import (
	"context"
	"errors"
	"testing"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/GriffinCanCode/hostbridge/internal/host/hosttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const samsungDialer = "com.samsung.android.dialer"

func strPtr(s string) *string { return &s }

func newDispatcher(dev *hosttest.Device) *Dispatcher {
	routes := DefaultRoutes([]string{samsungDialer}, []string{"com.android.chrome"})
	return NewDispatcher(dev, dev, routes, nil)
}

func newDevice() *hosttest.Device {
	dev := hosttest.NewDevice()
	dev.Apps = []hosttest.App{
		{Package: "com.android.calculator2", Label: "Calculator", Launchable: true},
		{Package: "com.android.providers.media", Label: "Media", Launchable: false},
	}
	return dev
}

func TestDialStripsWhitespace(t *testing.T) {
	dev := newDevice()
	d := newDispatcher(dev)

	ok := d.Launch(context.Background(), Request{Identifier: samsungDialer, Payload: strPtr("010 1234\t5678")})
	require.True(t, ok)
	require.Len(t, dev.Started, 1)
	assert.Equal(t, host.Intent{Action: host.ActionDial, Data: "tel:01012345678"}, dev.Started[0])
}

func TestDialWithoutPayload(t *testing.T) {
	dev := newDevice()
	d := newDispatcher(dev)
	ctx := context.Background()

	assert.False(t, d.Launch(ctx, Request{Identifier: samsungDialer}))
	assert.False(t, d.Launch(ctx, Request{Identifier: samsungDialer, Payload: strPtr("")}))
	assert.False(t, d.Launch(ctx, Request{Identifier: samsungDialer, Payload: strPtr("   ")}))
	assert.Empty(t, dev.Started)
}

func TestBrowsePassesURLThrough(t *testing.T) {
	dev := newDevice()
	d := newDispatcher(dev)
	ctx := context.Background()

	require.True(t, d.Launch(ctx, Request{Identifier: "com.android.chrome", Payload: strPtr("not a url")}))
	assert.Equal(t, host.Intent{Action: host.ActionView, Data: "not a url"}, dev.Started[0])

	assert.False(t, d.Launch(ctx, Request{Identifier: "com.android.chrome"}))
	assert.Len(t, dev.Started, 1)
}

func TestGenericLaunch(t *testing.T) {
	dev := newDevice()
	d := newDispatcher(dev)
	ctx := context.Background()

	assert.True(t, d.Launch(ctx, Request{Identifier: "com.android.calculator2", Payload: strPtr("ignored")}))
	assert.False(t, d.Launch(ctx, Request{Identifier: "com.android.providers.media"}))
	assert.False(t, d.Launch(ctx, Request{Identifier: "com.unknown"}))

	require.Len(t, dev.Started, 1)
	assert.Equal(t, "com.android.calculator2", dev.Started[0].Package)
	assert.Equal(t, host.ActionMain, dev.Started[0].Action)
}

func TestHostStartErrorNotSurfaced(t *testing.T) {
	dev := newDevice()
	launcher := new(hosttest.MockLauncher)
	launcher.On("Start", mock.Anything, mock.MatchedBy(func(i host.Intent) bool {
		return i.Action == host.ActionView
	})).Return(errors.New("no activity found to handle intent")).Once()

	d := NewDispatcher(dev, launcher, DefaultRoutes(nil, []string{"com.android.chrome"}), nil)
	assert.True(t, d.Launch(context.Background(), Request{Identifier: "com.android.chrome", Payload: strPtr("https://example.com")}))
	launcher.AssertExpectations(t)
}

func TestRoutesTakePriorityOverEntryPoint(t *testing.T) {
	dev := newDevice()
	dev.Apps = append(dev.Apps, hosttest.App{Package: samsungDialer, Label: "Phone", Launchable: true})
	d := newDispatcher(dev)

	assert.False(t, d.Launch(context.Background(), Request{Identifier: samsungDialer}))
	assert.Empty(t, dev.Started)
}
