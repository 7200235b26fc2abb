package app

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const DefaultDBPath = "db.sqlite3"

type database struct {
	*sql.DB
}

// OpenDB opens the sqlite database and creates the schema. Persistence
// being unavailable at startup is fatal.
func OpenDB(path string) *database {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Fatal(err)
	}

	wrapper := database{DB: db}

	_, err = wrapper.Exec(`
		CREATE TABLE IF NOT EXISTS guild_snapshots (
			guild_id TEXT PRIMARY KEY,
			snapshot TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS credentials (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		log.Fatal(err)
	}

	return &wrapper
}

// SaveSnapshot writes a guild's tracking snapshot through to disk.
func (db *database) SaveSnapshot(guildID string, snapshot []byte) error {
	exists, err := db.recordExists("guild_snapshots", "guild_id", guildID)
	if err != nil {
		return err
	}

	timeNow := time.Now().UTC().Format(time.RFC3339)

	if !exists {
		_, err = db.Exec(
			"INSERT INTO guild_snapshots (guild_id, snapshot, updated_at) VALUES (?, ?, ?)",
			guildID, string(snapshot), timeNow,
		)
	} else {
		_, err = db.Exec(
			"UPDATE guild_snapshots SET snapshot = ?, updated_at = ? WHERE guild_id = ?",
			string(snapshot), timeNow, guildID,
		)
	}
	return err
}

// LoadSnapshots reads every guild's persisted tracking snapshot.
func (db *database) LoadSnapshots() (map[string][]byte, error) {
	rows, err := db.Query("SELECT guild_id, snapshot FROM guild_snapshots")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make(map[string][]byte)
	for rows.Next() {
		var guildID, snapshot string
		if err := rows.Scan(&guildID, &snapshot); err != nil {
			return nil, err
		}
		snapshots[guildID] = []byte(snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}

func (db *database) recordExists(tableName, columnName, value string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM " + tableName + " WHERE " + columnName + " = ?)"
	err := db.QueryRow(query, value).Scan(&exists)
	return exists, err
}
