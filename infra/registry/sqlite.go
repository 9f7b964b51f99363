package registry

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vesselops/fueleu/core/model"
	core "github.com/vesselops/fueleu/core/registry"
)

// SQLiteStore persists vessel records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS vessels (
        id TEXT PRIMARY KEY,
        name TEXT,
        imo TEXT,
        type TEXT,
        pool TEXT,
        owner TEXT,
        fuel_consumption_mj REAL,
        ghg_intensity REAL,
        metadata TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts the vessel after validation.
func (s *SQLiteStore) Add(v model.Vessel) error {
	if v.ID == "" {
		return fmt.Errorf("vessel id is required")
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("vessel %s: %w", v.ID, err)
	}
	meta, err := encodeMetadata(v.Metadata)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO vessels (id, name, imo, type, pool, owner, fuel_consumption_mj, ghg_intensity, metadata)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.IMO, v.Type, v.Pool, v.Owner, v.FuelConsumptionMJ, v.GHGIntensity, meta)
	return err
}

// Get returns the vessel by ID.
func (s *SQLiteStore) Get(id string) (model.Vessel, error) {
	row := s.db.QueryRow(`SELECT id, name, imo, type, pool, owner, fuel_consumption_mj, ghg_intensity, metadata
        FROM vessels WHERE id = ?`, id)
	v, err := scanVessel(row.Scan)
	if err == sql.ErrNoRows {
		return model.Vessel{}, fmt.Errorf("vessel %s: %w", id, core.ErrNotFound)
	}
	return v, err
}

// Update replaces an existing vessel record.
func (s *SQLiteStore) Update(v model.Vessel) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("vessel %s: %w", v.ID, err)
	}
	meta, err := encodeMetadata(v.Metadata)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE vessels SET name = ?, imo = ?, type = ?, pool = ?, owner = ?,
        fuel_consumption_mj = ?, ghg_intensity = ?, metadata = ? WHERE id = ?`,
		v.Name, v.IMO, v.Type, v.Pool, v.Owner, v.FuelConsumptionMJ, v.GHGIntensity, meta, v.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("vessel %s: %w", v.ID, core.ErrNotFound)
	}
	return nil
}

// Delete removes the vessel by ID.
func (s *SQLiteStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM vessels WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("vessel %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// List returns vessels matching the filter ordered by ID.
func (s *SQLiteStore) List(f core.Filter) ([]model.Vessel, error) {
	rows, err := s.db.Query(`SELECT id, name, imo, type, pool, owner, fuel_consumption_mj, ghg_intensity, metadata
        FROM vessels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := make([]model.Vessel, 0)
	for rows.Next() {
		v, err := scanVessel(rows.Scan)
		if err != nil {
			return nil, err
		}
		if f.Matches(v) {
			res = append(res, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func encodeMetadata(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanVessel(scan func(dest ...any) error) (model.Vessel, error) {
	var v model.Vessel
	var meta string
	if err := scan(&v.ID, &v.Name, &v.IMO, &v.Type, &v.Pool, &v.Owner,
		&v.FuelConsumptionMJ, &v.GHGIntensity, &meta); err != nil {
		return model.Vessel{}, err
	}
	if meta != "" {
		if err := json.Unmarshal([]byte(meta), &v.Metadata); err != nil {
			return model.Vessel{}, err
		}
	}
	return v, nil
}
