// Package profile implements a simulated host device from a profile file.
//
// A profile (YAML or TOML) declares the installed applications and the
// initial device state. Further applications can be dropped into
// apps/**/*.{yaml,yml,toml} next to the profile, one manifest per file, and
// icons into icons/<package>.<ext>. State lives in memory only; launched
// intents, permission prompts and teardowns are recorded for inspection.
//
// Example profile:
//
//	device:
//	  torch_units: ["0"]
//	  ringer_mode: normal
//	  brightness: 128
//	  permissions:
//	    notification_policy: false
//	    write_settings: true
//	apps:
//	  - package: com.android.calculator2
//	    label: Calculator
//	    icon: icons/calculator.png
//	  - package: com.example.tile
//	    label: Tile
//	    drawable: {width: 48, height: 32, color: "#3b82f6"}
package profile
