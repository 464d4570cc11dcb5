package localstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// KV almacenamiento persistente clave→string sobre SQLite, análogo al
// localStorage del navegador: Get/Set/Remove síncronos, valores JSON opacos.
type KV struct {
	db *sql.DB
}

// OpenKV abre (o crea) la base local. Si dir está vacío se usa
// XDG_DATA_HOME/task-manager (o ~/.local/share/task-manager).
func OpenKV(dir string) (*KV, error) {
	if dir == "" {
		var err error
		dir, err = defaultDataDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, "taskmanager.db"))
	if err != nil {
		return nil, fmt.Errorf("abrir KV local: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("inicializar KV local: %w", err)
	}
	return &KV{db: db}, nil
}

func defaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "task-manager"), nil
}

// Get devuelve el valor de la clave, o "" si no existe.
func (kv *KV) Get(key string) (string, error) {
	var value string
	err := kv.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, nil
}

// Set reemplaza el valor de la clave al completo (last-write-wins).
func (kv *KV) Set(key, value string) error {
	_, err := kv.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// Remove elimina la clave si existe.
func (kv *KV) Remove(key string) error {
	if _, err := kv.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv remove %s: %w", key, err)
	}
	return nil
}

// Close cierra la base subyacente.
func (kv *KV) Close() error {
	return kv.db.Close()
}
