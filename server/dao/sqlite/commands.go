package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
)

// responseSep joins dao.Command.Response lines in the response TEXT column;
// narrator lines never themselves contain this control character.
const responseSep = "\x1f"

type CommandsDB struct {
	db *sql.DB
}

func (repo *CommandsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS commands (
		id TEXT NOT NULL PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		utterance TEXT NOT NULL,
		response TEXT NOT NULL,
		err_msg TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *CommandsDB) Create(ctx context.Context, c dao.Command) (dao.Command, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Command{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO commands (id, session_id, utterance, response, err_msg, created) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Command{}, wrapDBError(err)
	}
	now := time.Now()

	_, err = stmt.ExecContext(ctx,
		newUUID.String(),
		c.SessionID.String(),
		c.Utterance,
		strings.Join(c.Response, responseSep),
		c.ErrMsg,
		now.Unix(),
	)
	if err != nil {
		return dao.Command{}, wrapDBError(err)
	}

	c.ID = newUUID
	c.Created = now
	return c, nil
}

func (repo *CommandsDB) GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]dao.Command, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, utterance, response, err_msg, created FROM commands WHERE session_id = ? ORDER BY created ASC, rowid ASC;`,
		sessionID.String(),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Command
	for rows.Next() {
		c := dao.Command{SessionID: sessionID}
		var id string
		var response string
		var created int64
		if err := rows.Scan(&id, &c.Utterance, &response, &c.ErrMsg, &created); err != nil {
			return nil, wrapDBError(err)
		}

		c.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid", id)
		}
		c.Created = time.Unix(created, 0)
		if response != "" {
			c.Response = strings.Split(response, responseSep)
		}

		all = append(all, c)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *CommandsDB) Close() error {
	return nil
}
