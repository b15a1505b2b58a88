// Package host defines the capabilities the bridge needs from the device.
//
// Each host service (package manager, audio, camera torch, settings
// storage, permission manager, activity stack) is an injected interface,
// so the bridge runs against the profile simulator, the Linux sysfs
// adapters, or test fakes without change.
//
// Permission checks are split in two: HasPermission is a pure predicate,
// and RequestGrant starts the host's grant flow without waiting for it.
package host
