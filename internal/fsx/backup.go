package fsx

import (
    "fmt"
    "os"
    "path/filepath"
    "time"
)

// BackupDir is a run-scoped snapshot directory. Files are copied into it
// before they are modified; the directory is kept after the run so the
// operator can roll back by hand.
type BackupDir struct {
    Path string
}

// NewBackupDir creates root/.chyol-backup-<stamp>. An existing directory is
// never reused: on collision a numeric suffix is appended.
func NewBackupDir(root string) (*BackupDir, error) {
    stamp := time.Now().Format("20060102-150405")
    path := filepath.Join(root, ".chyol-backup-"+stamp)
    for i := 2; ; i++ {
        err := os.Mkdir(path, 0o755)
        if err == nil {
            return &BackupDir{Path: path}, nil
        }
        if !os.IsExist(err) {
            return nil, fmt.Errorf("create backup dir: %w", err)
        }
        path = filepath.Join(root, fmt.Sprintf(".chyol-backup-%s-%d", stamp, i))
    }
}

// Save copies root/rel into the backup directory, preserving the relative
// path. It must be called before the file is modified.
func (b *BackupDir) Save(root, rel string) error {
    src := filepath.Join(root, rel)
    data, err := os.ReadFile(src)
    if err != nil {
        return fmt.Errorf("backup %s: %w", rel, err)
    }
    info, err := os.Stat(src)
    if err != nil {
        return fmt.Errorf("backup %s: %w", rel, err)
    }
    dst := filepath.Join(b.Path, rel)
    if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
        return err
    }
    return os.WriteFile(dst, data, info.Mode().Perm())
}
