package bridge

import "github.com/GriffinCanCode/hostbridge/internal/shared/types"

// Operation is a channel operation known to the bridge
type Operation int

const (
	OpUnknown Operation = iota
	OpGetInstalledApps
	OpGetInstalledAppNames
	OpGetSingleAppInfoByName
	OpLaunchApp
	OpTurnOnFlashlight
	OpTurnOffFlashlight
	OpSetVibrationMode
	OpSetSoundMode
	OpSetSilentMode
	OpEnableDarkMode
	OpEnableLightMode
	OpAdjustBrightness
	OpGetOutApp
	opCount
)

// operationInfo holds the wire name and failure codes of an operation
type operationInfo struct {
	name  string
	codes map[types.ErrorKind]string
}

var (
	torchCodes      = map[types.ErrorKind]string{types.KindDeviceUnavailable: "FLASHLIGHT_ERROR"}
	ringerCodes     = map[types.ErrorKind]string{types.KindDeviceUnavailable: "RINGER_ERROR"}
	brightnessCodes = map[types.ErrorKind]string{
		types.KindDeviceUnavailable: "BRIGHTNESS_ERROR",
		types.KindInvalidArgument:   "INVALID_DELTA",
	}
)

var operations = [opCount]operationInfo{
	OpUnknown:              {name: ""},
	OpGetInstalledApps:     {name: "getInstalledApps"},
	OpGetInstalledAppNames: {name: "getInstalledAppNames"},
	OpGetSingleAppInfoByName: {name: "getSingleAppInfoByName", codes: map[types.ErrorKind]string{
		types.KindInvalidArgument: "INVALID_NAME",
	}},
	OpLaunchApp: {name: "launchApp", codes: map[types.ErrorKind]string{
		types.KindInvalidArgument: "INVALID_PACKAGE",
	}},
	OpTurnOnFlashlight:  {name: "turnOnFlashlight", codes: torchCodes},
	OpTurnOffFlashlight: {name: "turnOffFlashlight", codes: torchCodes},
	OpSetVibrationMode:  {name: "setVibrationMode", codes: ringerCodes},
	OpSetSoundMode:      {name: "setSoundMode", codes: ringerCodes},
	OpSetSilentMode:     {name: "setSilentMode", codes: ringerCodes},
	OpEnableDarkMode:    {name: "enableDarkMode", codes: brightnessCodes},
	OpEnableLightMode:   {name: "enableLightMode", codes: brightnessCodes},
	OpAdjustBrightness:  {name: "adjustBrightness", codes: brightnessCodes},
	OpGetOutApp:         {name: "getOutApp"},
}

// defaultCodes apply when an operation has no code of its own for a kind
var defaultCodes = map[types.ErrorKind]string{
	types.KindInvalidArgument:    "INVALID_ARGUMENT",
	types.KindNotFound:           "NOT_FOUND",
	types.KindPermissionRequired: "PERMISSION_DENIED",
	types.KindDeviceUnavailable:  "HOST_ERROR",
	types.KindEncoding:           "ENCODING_ERROR",
	types.KindUnimplemented:      "UNIMPLEMENTED",
}

var operationsByName = func() map[string]Operation {
	m := make(map[string]Operation, opCount)
	for op := OpUnknown + 1; op < opCount; op++ {
		m[operations[op].name] = op
	}
	return m
}()

// ParseOperation resolves a wire name; unknown names yield OpUnknown
func ParseOperation(name string) Operation {
	if op, ok := operationsByName[name]; ok {
		return op
	}
	return OpUnknown
}

// Operations lists every known operation
func Operations() []Operation {
	ops := make([]Operation, 0, opCount-1)
	for op := OpUnknown + 1; op < opCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// String returns the wire name
func (o Operation) String() string {
	if o <= OpUnknown || o >= opCount {
		return "unknown"
	}
	return operations[o].name
}

// Known reports whether o is a real operation
func (o Operation) Known() bool {
	return o > OpUnknown && o < opCount
}

// FailureCode returns the wire code for a failure of kind
func (o Operation) FailureCode(kind types.ErrorKind) string {
	if o.Known() {
		if code, ok := operations[o].codes[kind]; ok {
			return code
		}
	}
	if code, ok := defaultCodes[kind]; ok {
		return code
	}
	return "HOST_ERROR"
}
