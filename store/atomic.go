package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// writeAtomic marshals v as indented JSON and writes it to path using the
// temp-file-then-rename protocol spec.md §4.1 requires: the write lands
// on path+".tmp" first, fsync'd, then renamed over path. Rename is
// atomic on a POSIX filesystem, so a concurrent reader observes either
// the old file or the new one in full, never a torn write.
func writeAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ioErrorf("marshal "+path, err)
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return ioErrorf("create "+tmp, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return ioErrorf("write "+tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return ioErrorf("sync "+tmp, err)
	}
	if err := f.Close(); err != nil {
		return ioErrorf("close "+tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return ioErrorf("rename "+tmp, err)
	}
	return nil
}

// readOrDefault unmarshals path into v, or leaves v untouched (its zero
// value) when path does not exist yet — the "missing file means empty
// collection / default config" rule spec.md §4.1 specifies for
// load_active/load_dlq/load_config.
func readOrDefault(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return ioErrorf("read "+path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ioErrorf("unmarshal "+path, err)
	}
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return ioErrorf("mkdir "+filepath.Clean(path), err)
	}
	return nil
}
