package fileid

import "path/filepath"

// Join combines a directory and a name into a single cleaned path.
func Join(dir, name string) string {
	return filepath.Join(dir, name)
}

// Abs returns the absolute, cleaned form of p, with every `.` and `..`
// segment eliminated. If the working directory is unavailable the cleaned
// input is returned.
func Abs(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// Rel expresses target relative to base. Both are expected to be absolute.
// When no relative path exists (different volumes) target is returned as is.
func Rel(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}

// Resolve combines dir and name, makes the result absolute and expresses it
// relative to base.
func Resolve(dir, name, base string) string {
	return Rel(base, Abs(Join(dir, name)))
}
