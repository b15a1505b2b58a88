package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Attribute files shared by the LED and backlight classes
const (
	attrBrightness    = "brightness"
	attrMaxBrightness = "max_brightness"
)

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

func writeInt(path string, v int) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(strconv.Itoa(v)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// devices lists class entries under root matching pattern, sorted
func devices(root, pattern string) ([]string, error) {
	names, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(names)
	out := names[:0]
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(root, name, attrBrightness)); err == nil {
			out = append(out, name)
		}
	}
	return out, nil
}

// writable reports whether the current process may write path
func writable(path string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
