package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	_ "github.com/go-sql-driver/mysql"
)

// MariaPrefabRepo реализует PrefabRepo для базы данных MariaDB/MySQL.
// Использует таблицу prefabs; область хранится сжатым блобом.
type MariaPrefabRepo struct {
	db         *sql.DB
	compressor *Compressor
}

// NewMariaPrefabRepo создает новый репозиторий заготовок для MariaDB.
// Автоматически создает таблицу, если она не существует.
//
// Параметры:
//
//	dsn - строка подключения к базе данных (user:pass@tcp(host:port)/dbname)
func NewMariaPrefabRepo(dsn string) (*MariaPrefabRepo, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MariaDB: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось проверить соединение с MariaDB: %w", err)
	}

	compressor, err := NewCompressor()
	if err != nil {
		db.Close()
		return nil, err
	}

	repo := &MariaPrefabRepo{db: db, compressor: compressor}
	if err := repo.createTable(); err != nil {
		db.Close()
		compressor.Close()
		return nil, fmt.Errorf("не удалось создать таблицу: %w", err)
	}

	return repo, nil
}

// createTable создает таблицу prefabs, если она не существует.
func (r *MariaPrefabRepo) createTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS prefabs (
			name       VARCHAR(64)  PRIMARY KEY,
			size_x     INT          NOT NULL,
			size_y     INT          NOT NULL,
			size_z     INT          NOT NULL,
			data       MEDIUMBLOB   NOT NULL,
			updated_at TIMESTAMP    DEFAULT CURRENT_TIMESTAMP
			           ON UPDATE    CURRENT_TIMESTAMP,
			INDEX idx_updated_at (updated_at)
		) ENGINE=InnoDB
	`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("ошибка создания таблицы prefabs: %w", err)
	}
	return nil
}

// Save сохраняет заготовку.
// Использует INSERT ... ON DUPLICATE KEY UPDATE для перезаписи существующих.
func (r *MariaPrefabRepo) Save(ctx context.Context, name string, area *blockarea.BlockArea) error {
	if err := validatePrefabName(name); err != nil {
		return err
	}

	blob, err := r.compressor.EncodePrefab(area)
	if err != nil {
		return fmt.Errorf("ошибка сериализации заготовки %q: %w", name, err)
	}

	size := area.Size()
	query := `
		INSERT INTO prefabs (name, size_x, size_y, size_z, data)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			size_x = VALUES(size_x),
			size_y = VALUES(size_y),
			size_z = VALUES(size_z),
			data = VALUES(data),
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, name, size.X, size.Y, size.Z, blob); err != nil {
		return fmt.Errorf("ошибка сохранения заготовки %q: %w", name, err)
	}
	return nil
}

// Load загружает заготовку.
func (r *MariaPrefabRepo) Load(ctx context.Context, name string) (*blockarea.BlockArea, bool, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM prefabs WHERE name = ?`, name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка загрузки заготовки %q: %w", name, err)
	}

	area, err := r.compressor.DecodePrefab(blob)
	if err != nil {
		return nil, false, fmt.Errorf("заготовка %q: %w", name, err)
	}
	return area, true, nil
}

// Delete удаляет заготовку.
func (r *MariaPrefabRepo) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prefabs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("ошибка удаления заготовки %q: %w", name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения количества затронутых строк: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("заготовка %q не найдена", name)
	}
	return nil
}

// List возвращает имена всех заготовок.
func (r *MariaPrefabRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM prefabs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка заготовок: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close закрывает соединение с базой данных.
func (r *MariaPrefabRepo) Close() error {
	r.compressor.Close()
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
