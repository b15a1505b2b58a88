// Package sysfs drives a Linux device's torch and display backlight through
// the LED and backlight classes under /sys/class.
package sysfs
