// Package bridge routes named channel requests to host capabilities.
//
// Operation names are resolved once into the closed Operation enum; the
// router then validates arguments against the operation's tool descriptor
// and calls exactly one component. Every request yields exactly one
// types.Result, and component failures are converted to failures carrying
// the operation's wire code.
//
// Example Usage:
//
//	router, err := bridge.NewRouter(bridge.Components{
//	    Inventory: inventory.NewProvider(h.Inventory, logger),
//	    Launcher:  launcher.NewDispatcher(h.Inventory, h.Launcher, routes, logger),
//	    Device:    device.NewProvider(h, logger),
//	}, bridge.Options{BrightnessStep: 50}, logger, metrics)
//
//	result := router.Dispatch(ctx, "launchApp", map[string]interface{}{
//	    "packageName": "com.samsung.android.dialer",
//	    "extraData":   "010 1234 5678",
//	})
package bridge
