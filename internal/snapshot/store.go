package snapshot

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/texpulse/internal/errors"
	"github.com/hpungsan/texpulse/internal/latex"
	"github.com/hpungsan/texpulse/internal/outline"
)

// PayloadVersion is the current snapshot payload format version. Payloads
// are decoded only when their version field matches; anything else is
// treated as corruption rather than silently reinterpreted.
const PayloadVersion = 1

// Payload is everything a day's baseline captures: the outline with word
// statistics plus the raw float and reference inventories the consistency
// reports derive from.
type Payload struct {
	Version      int                 `json:"version"`
	Outline      []outline.Node      `json:"outline"`
	Figures      []latex.FloatRecord `json:"figures"`
	Tables       []latex.FloatRecord `json:"tables"`
	References   []string            `json:"references"`
	Citations    []string            `json:"citations"`
	UsedFigures  []string            `json:"used_figures"`
	AvailFigures []string            `json:"avail_figures"`
}

// Day formats t as the snapshot day key.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// Exists reports whether a baseline has already been stored for day.
func Exists(db *sql.DB, day string) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM snapshots WHERE day = ?`, day).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// Load retrieves and decodes the baseline stored for day.
func Load(db *sql.DB, day string) (*Payload, error) {
	var raw string
	err := db.QueryRow(`SELECT payload FROM snapshots WHERE day = ?`, day).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(day)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("snapshot for %s is corrupt: %w", day, err))
	}
	if p.Version != PayloadVersion {
		return nil, errors.NewInternal(fmt.Errorf("snapshot for %s has unsupported payload version %d", day, p.Version))
	}
	return &p, nil
}

// Store writes the baseline for day, replacing any existing row for the
// same day. Concurrent writers racing on one day are benign: the day key
// is unique and the last writer wins.
func Store(db *sql.DB, day string, p *Payload) error {
	body := *p
	body.Version = PayloadVersion

	raw, err := json.Marshal(&body)
	if err != nil {
		return errors.NewInternal(err)
	}

	id, err := generateULID()
	if err != nil {
		return errors.NewInternal(err)
	}

	_, err = db.Exec(`
		INSERT OR REPLACE INTO snapshots (id, day, schema_version, created_at, payload)
		VALUES (?, ?, ?, ?, ?)`,
		id, day, PayloadVersion, time.Now().Unix(), string(raw))
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// generateULID creates a new ULID row id.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}
