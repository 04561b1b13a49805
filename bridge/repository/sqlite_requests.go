package bridgerepo

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/MrCuPper/synapse-contracts/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteRequestsRepository persists request records in a sqlite database.
type SQLiteRequestsRepository struct {
	conn *sql.DB
}

var _ domain.RequestsRepository = &SQLiteRequestsRepository{}

// OpenSQLiteRequestsRepository opens the database at path and runs the migrations.
func OpenSQLiteRequestsRepository(path string) (*SQLiteRequestsRepository, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteRequestsRepository{conn: conn}, nil
}

// Ping checks that the database is reachable.
func (r *SQLiteRequestsRepository) Ping(ctx context.Context) error {
	return r.conn.PingContext(ctx)
}

// Close closes the database.
func (r *SQLiteRequestsRepository) Close() error {
	return r.conn.Close()
}

// StoreRequest implements domain.RequestsRepository.
func (r *SQLiteRequestsRepository) StoreRequest(ctx context.Context, record domain.RequestRecord) error {
	result, err := r.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO requests (request_id, direction, version, domain, token, amount, recipient, formatted_request)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RequestID.Hex(), record.Direction, record.Version, record.Domain,
		record.Token.Hex(), record.Amount.String(), record.Recipient.Hex(), []byte(record.FormattedRequest),
	)
	if err != nil {
		return fmt.Errorf("storing request: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storing request: %w", err)
	}
	if inserted == 0 {
		return domain.RequestAlreadyFulfilledError{RequestID: record.RequestID}
	}
	return nil
}

// GetRequest implements domain.RequestsRepository.
func (r *SQLiteRequestsRepository) GetRequest(ctx context.Context, requestID common.Hash, direction string) (domain.RequestRecord, error) {
	var (
		record    domain.RequestRecord
		token     string
		amount    string
		recipient string
		formatted []byte
	)

	err := r.conn.QueryRowContext(ctx,
		`SELECT version, domain, token, amount, recipient, formatted_request FROM requests WHERE request_id = ? AND direction = ?`,
		requestID.Hex(), direction,
	).Scan(&record.Version, &record.Domain, &token, &amount, &recipient, &formatted)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RequestRecord{}, fmt.Errorf("%s request %s: %w", direction, requestID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.RequestRecord{}, fmt.Errorf("querying request: %w", err)
	}

	record.Amount, err = domain.ParseAmount(amount)
	if err != nil {
		return domain.RequestRecord{}, err
	}

	record.RequestID = requestID
	record.Direction = direction
	record.Token = common.HexToAddress(token)
	record.Recipient = common.HexToAddress(recipient)
	record.FormattedRequest = formatted

	return record, nil
}

// IsFulfilled implements domain.RequestsRepository.
func (r *SQLiteRequestsRepository) IsFulfilled(ctx context.Context, requestID common.Hash) (bool, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM requests WHERE request_id = ? AND direction = ?`,
		requestID.Hex(), domain.RequestDirectionFulfilled,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying request: %w", err)
	}
	return count > 0, nil
}
