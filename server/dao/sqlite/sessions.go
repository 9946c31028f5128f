package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
)

// persisted is what actually gets rezi-encoded into the sessions table's
// state column: the live world plus whatever the Ambiguity Manager has
// suspended, so a session resumes exactly where it left off across a
// server restart.
type persisted struct {
	World *blocks.World
	Amb   *blocks.Session
}

func (p persisted) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncBinary(*p.World)...)
	data = append(data, rezi.EncBinary(*p.Amb)...)

	return data, nil
}

func (p *persisted) UnmarshalBinary(data []byte) error {
	p.World = &blocks.World{}
	readBytes, err := rezi.DecBinary(data, p.World)
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}
	data = data[readBytes:]

	p.Amb = blocks.NewSession()
	if _, err := rezi.DecBinary(data, p.Amb); err != nil {
		return fmt.Errorf("ambiguity state: %w", err)
	}

	return nil
}

type SessionsDB struct {
	db *sql.DB
}

func (repo *SessionsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS sessions (
		id TEXT NOT NULL PRIMARY KEY,
		state TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *SessionsDB) Create(ctx context.Context, s dao.Session) (dao.Session, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Session{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO sessions (id, state, created) VALUES (?, ?, ?)`)
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}
	now := time.Now()

	encState, err := encodeState(s.World, s.Amb)
	if err != nil {
		return dao.Session{}, fmt.Errorf("encode session state: %w", err)
	}

	_, err = stmt.ExecContext(ctx, newUUID.String(), encState, now.Unix())
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *SessionsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	s := dao.Session{ID: id}
	var created int64
	var encState string

	row := repo.db.QueryRowContext(ctx, `SELECT created, state FROM sessions WHERE id = ?;`, id.String())
	if err := row.Scan(&created, &encState); err != nil {
		return s, wrapDBError(err)
	}
	s.Created = time.Unix(created, 0)

	world, amb, err := decodeState(encState)
	if err != nil {
		return s, fmt.Errorf("stored session state for %s is invalid: %w", s.ID.String(), err)
	}
	s.World = world
	s.Amb = amb

	return s, nil
}

func (repo *SessionsDB) Update(ctx context.Context, id uuid.UUID, s dao.Session) (dao.Session, error) {
	encState, err := encodeState(s.World, s.Amb)
	if err != nil {
		return dao.Session{}, fmt.Errorf("encode session state: %w", err)
	}

	res, err := repo.db.ExecContext(ctx, `UPDATE sessions SET state=? WHERE id=?;`, encState, id.String())
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.Session{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, id)
}

func (repo *SessionsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String())
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *SessionsDB) Close() error {
	return nil
}

func encodeState(world *blocks.World, amb *blocks.Session) (string, error) {
	if world == nil {
		return "", fmt.Errorf("session has no world state")
	}
	if amb == nil {
		amb = blocks.NewSession()
	}
	data := rezi.EncBinary(persisted{World: world, Amb: amb})
	return base64.StdEncoding.EncodeToString(data), nil
}

func decodeState(enc string) (*blocks.World, *blocks.Session, error) {
	data, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, nil, fmt.Errorf("corrupt base64: %w", err)
	}

	var p persisted
	n, err := rezi.DecBinary(data, &p)
	if err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}
	if n != len(data) {
		return nil, nil, fmt.Errorf("trailing data after decode: consumed %d of %d bytes", n, len(data))
	}

	return p.World, p.Amb, nil
}
