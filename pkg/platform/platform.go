// Package platform holds the fixed mapping from internal platform keys to
// the human-readable labels used on download pages. Only keys present in a
// table are ever rendered; unknown keys in a data document are skipped.
package platform

// Info describes how a platform key is presented to users.
type Info struct {
	// Name is the display platform name, e.g. "macOS (Apple Silicon)".
	Name string
	// Format labels the artifact packaging, e.g. "DMG" or "ZIP Archive".
	Format string
}

// Table is an ordered platform-key lookup table.
type Table struct {
	keys    []string
	entries map[string]Info
}

// NewTable builds an empty table. Keys keep the order of their first Set.
func NewTable() Table {
	return Table{entries: make(map[string]Info)}
}

// Set inserts or replaces a platform entry.
func (t *Table) Set(key string, info Info) {
	if t.entries == nil {
		t.entries = make(map[string]Info)
	}
	if _, exists := t.entries[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = info
}

// Lookup returns the display info for key and whether the key is known.
func (t Table) Lookup(key string) (Info, bool) {
	info, ok := t.entries[key]
	return info, ok
}

// Keys returns the known platform keys in table order.
func (t Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Len reports the number of entries.
func (t Table) Len() int {
	return len(t.entries)
}

// Default returns the built-in table covering the platforms the project
// ships artifacts for.
func Default() Table {
	t := NewTable()
	t.Set("macos_arm64", Info{Name: "macOS (Apple Silicon)", Format: "DMG"})
	t.Set("macos_x64", Info{Name: "macOS (Intel)", Format: "DMG"})
	t.Set("windows_msi", Info{Name: "Windows", Format: "MSI Installer"})
	t.Set("windows_zip", Info{Name: "Windows", Format: "ZIP Archive"})
	t.Set("linux_deb", Info{Name: "Linux", Format: "DEB Package"})
	t.Set("linux_rpm", Info{Name: "Linux", Format: "RPM Package"})
	t.Set("linux_appimage", Info{Name: "Linux", Format: "AppImage"})
	t.Set("linux_tar", Info{Name: "Linux", Format: "TAR.GZ"})
	return t
}
