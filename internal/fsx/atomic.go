package fsx

import (
    "io/fs"
    "os"
    "path/filepath"
    "runtime"
    "time"
)

// AtomicWrite writes content to a temp file and renames it into place.
func AtomicWrite(path string, content []byte, mode fs.FileMode) error {
    dir := filepath.Dir(path)
    base := filepath.Base(path)
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return err
    }
    tmp := filepath.Join(dir, "."+base+".tmp")
    if err := os.WriteFile(tmp, content, mode); err != nil {
        return err
    }
    f, _ := os.Open(tmp)
    if f != nil { _ = f.Sync(); _ = f.Close() }
    if err := os.Rename(tmp, path); err != nil {
        // On Windows, rename fails if destination exists or is locked. Try limited retries.
        if runtime.GOOS == "windows" {
            var last error = err
            for i := 0; i < 5; i++ {
                if _, statErr := os.Stat(path); statErr == nil {
                    _ = os.Remove(path)
                }
                if rerr := os.Rename(tmp, path); rerr == nil {
                    return nil
                } else {
                    last = rerr
                }
                time.Sleep(50 * time.Millisecond)
            }
            _ = os.Remove(tmp)
            return last
        }
        _ = os.Remove(tmp)
        return err
    }
    return nil
}
