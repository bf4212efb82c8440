package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/arelgame/coinhouse/ledger"
	"github.com/arelgame/coinhouse/ledger/postgresengine/internal/adapters"
)

var (
	// ErrNilDatabaseConnection is returned when a Store is built without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed is returned when a SQL statement cannot be built.
	ErrBuildingQueryFailed = errors.New("failed to build sql statement")

	// ErrQueryingFailed is returned when a select statement fails to execute.
	ErrQueryingFailed = errors.New("database query execution failed")

	// ErrExecFailed is returned when a mutating statement fails to execute.
	ErrExecFailed = errors.New("database statement execution failed")

	// ErrScanningRowFailed is returned when a result row cannot be scanned.
	ErrScanningRowFailed = errors.New("failed to scan database row")

	// ErrRowsAffectedFailed is returned when the affected row count is unavailable.
	ErrRowsAffectedFailed = errors.New("failed to get rows affected count")
)

const (
	logMsgBuildQueryFailed   = "failed to build sql statement"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgAccountSaved       = "account saved"
	logMsgTransactionStored  = "transaction recorded"
	logMsgVersionConflict    = "account version conflict detected"
	logMsgSQLExecuted        = "executed sql for: "
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrAccount           = "account"
	logAttrVersion           = "version"
	logAttrDurationMS        = "duration_ms"
	logActionSelect          = "select"
	logActionExec            = "exec"

	colTag            = "tag"
	colSettlement     = "settlement"
	colEngineID       = "engine_id"
	colAccountID      = "account_id"
	colPersona        = "persona"
	colCoinhouseTag   = "coinhouse_tag"
	colDebit          = "debit"
	colCredit         = "credit"
	colOpenedAt       = "opened_at"
	colLastAccessedAt = "last_accessed_at"
	colHolders        = "holders"
	colVersion        = "version"
	colTransactionID  = "transaction_id"
	colFromPersona    = "from_persona"
	colToPersona      = "to_persona"
	colAmount         = "amount"
	colMemo           = "memo"
	colOccurredAt     = "occurred_at"
	colEntryNo        = "entry_no"

	dialectPostgres = "postgres"
)

// Store implements the ledger storage interfaces on PostgreSQL. It leverages
// a database adapter and supports customizable logging and table names.
type Store struct {
	db     adapters.DBAdapter
	tables TableNames
	logger ledger.Logger
}

// NewStoreFromPGXPool creates a new Store using a pgx pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	store := Store{
		db:     db,
		tables: defaultTableNames(),
	}

	for _, option := range options {
		if err := option(&store); err != nil {
			return Store{}, err
		}
	}

	return store, nil
}

// SeedCoinhouses upserts the coinhouse catalog. Settlement and engine id
// follow the definition data; the tag is the stable identity.
func (s Store) SeedCoinhouses(ctx context.Context, coinhouses []ledger.Coinhouse) error {
	if len(coinhouses) == 0 {
		return nil
	}

	rows := make([]any, 0, len(coinhouses))
	for _, coinhouse := range coinhouses {
		rows = append(rows, goqu.Record{
			colTag:        coinhouse.Tag.String(),
			colSettlement: coinhouse.Settlement,
			colEngineID:   coinhouse.EngineID,
		})
	}

	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		Insert(s.tables.Coinhouses).
		Rows(rows...).
		OnConflict(goqu.DoUpdate(colTag, goqu.Record{
			colSettlement: goqu.I("excluded." + colSettlement),
			colEngineID:   goqu.I("excluded." + colEngineID),
		})).
		ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	_, _, execErr := s.executeStatement(ctx, sqlQuery)

	return execErr
}

// GetCoinhouseByTag implements ledger.CoinhouseRepository.
func (s Store) GetCoinhouseByTag(ctx context.Context, tag ledger.CoinhouseTag) (ledger.Coinhouse, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		From(s.tables.Coinhouses).
		Select(colSettlement, colEngineID).
		Where(goqu.C(colTag).Eq(tag.String())).
		ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return ledger.Coinhouse{}, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return ledger.Coinhouse{}, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return ledger.Coinhouse{}, ledger.ErrCoinhouseNotFound
	}

	var settlement, engineID string

	if scanErr := rows.Scan(&settlement, &engineID); scanErr != nil {
		s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
		return ledger.Coinhouse{}, errors.Join(ErrScanningRowFailed, scanErr)
	}

	return ledger.NewCoinhouse(tag, settlement, engineID)
}

// GetAccountFor implements ledger.AccountRepository.
func (s Store) GetAccountFor(ctx context.Context, id ledger.AccountID) (ledger.Account, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		From(s.tables.Accounts).
		Select(colPersona, colCoinhouseTag, colDebit, colCredit, colOpenedAt, colLastAccessedAt, colHolders, colVersion).
		Where(goqu.C(colAccountID).Eq(id.String())).
		ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return ledger.Account{}, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return ledger.Account{}, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}

	return s.scanAccount(rows, id)
}

// SaveAccount implements ledger.AccountRepository with an optimistic
// concurrency check: version 0 means the account must not exist yet, any
// other version must match the stored row exactly. A failed check surfaces
// as ledger.ErrConcurrencyConflict so callers can retry.
func (s Store) SaveAccount(ctx context.Context, account ledger.Account) error {
	holders, encodeErr := encodeHolders(account.Holders)
	if encodeErr != nil {
		return encodeErr
	}

	var sqlQuery string
	var toSQLErr error

	if account.Version == 0 {
		sqlQuery, _, toSQLErr = goqu.Dialect(dialectPostgres).
			Insert(s.tables.Accounts).
			Rows(goqu.Record{
				colAccountID:      account.ID.String(),
				colPersona:        account.Persona.String(),
				colCoinhouseTag:   account.Coinhouse.String(),
				colDebit:          account.Debit,
				colCredit:         account.Credit,
				colOpenedAt:       account.OpenedAt,
				colLastAccessedAt: account.LastAccessedAt,
				colHolders:        holders,
				colVersion:        1,
			}).
			OnConflict(goqu.DoNothing()).
			ToSQL()
	} else {
		sqlQuery, _, toSQLErr = goqu.Dialect(dialectPostgres).
			Update(s.tables.Accounts).
			Set(goqu.Record{
				colDebit:          account.Debit,
				colCredit:         account.Credit,
				colLastAccessedAt: account.LastAccessedAt,
				colHolders:        holders,
				colVersion:        account.Version + 1,
			}).
			Where(goqu.C(colAccountID).Eq(account.ID.String()), goqu.C(colVersion).Eq(account.Version)).
			ToSQL()
	}

	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, duration, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		s.logOperation(logMsgVersionConflict,
			logAttrAccount, account.ID.String(),
			logAttrVersion, account.Version)

		return ledger.ErrConcurrencyConflict
	}

	s.logOperation(logMsgAccountSaved,
		logAttrAccount, account.ID.String(),
		logAttrVersion, account.Version+1,
		logAttrDurationMS, durationToMilliseconds(duration))

	return nil
}

// RecordTransaction implements ledger.TransactionLog. Missing ids and
// timestamps are assigned here, mirroring the in-memory engine.
func (s Store) RecordTransaction(ctx context.Context, transaction ledger.Transaction) (ledger.Transaction, error) {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}

	if transaction.OccurredAt.IsZero() {
		transaction.OccurredAt = ledger.ToOccurredAt(time.Now())
	}

	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		Insert(s.tables.Transactions).
		Rows(goqu.Record{
			colTransactionID: transaction.ID.String(),
			colAccountID:     transaction.Account.String(),
			colFromPersona:   transaction.From.String(),
			colToPersona:     transaction.To.String(),
			colAmount:        transaction.Amount,
			colMemo:          transaction.Memo,
			colOccurredAt:    transaction.OccurredAt,
		}).
		ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return ledger.Transaction{}, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	_, duration, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return ledger.Transaction{}, execErr
	}

	s.logOperation(logMsgTransactionStored,
		logAttrAccount, transaction.Account.String(),
		logAttrDurationMS, durationToMilliseconds(duration))

	return transaction, nil
}

// TransactionsFor implements ledger.TransactionLog, newest first. A limit
// of zero returns all entries.
func (s Store) TransactionsFor(ctx context.Context, account ledger.AccountID, limit int) ([]ledger.Transaction, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tables.Transactions).
		Select(colTransactionID, colFromPersona, colToPersona, colAmount, colMemo, colOccurredAt).
		Where(goqu.C(colAccountID).Eq(account.String())).
		Order(goqu.I(colEntryNo).Desc())

	if limit > 0 {
		selectStmt = selectStmt.Limit(uint(limit))
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	transactions := make([]ledger.Transaction, 0)

	for rows.Next() {
		transaction, scanErr := s.scanTransaction(rows, account)
		if scanErr != nil {
			return nil, scanErr
		}

		transactions = append(transactions, transaction)
	}

	return transactions, nil
}

func (s Store) scanAccount(rows adapters.DBRows, id ledger.AccountID) (ledger.Account, error) {
	var (
		personaToken   string
		coinhouseToken string
		debit          int64
		credit         int64
		openedAt       time.Time
		lastAccessedAt time.Time
		holdersPayload []byte
		version        int64
	)

	scanErr := rows.Scan(
		&personaToken, &coinhouseToken, &debit, &credit, &openedAt, &lastAccessedAt, &holdersPayload, &version)
	if scanErr != nil {
		s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
		return ledger.Account{}, errors.Join(ErrScanningRowFailed, scanErr)
	}

	persona, err := ledger.ParsePersonaID(personaToken)
	if err != nil {
		return ledger.Account{}, errors.Join(ErrScanningRowFailed, err)
	}

	coinhouse, err := ledger.NewCoinhouseTag(coinhouseToken)
	if err != nil {
		return ledger.Account{}, errors.Join(ErrScanningRowFailed, err)
	}

	holders, err := decodeHolders(holdersPayload)
	if err != nil {
		return ledger.Account{}, err
	}

	return ledger.Account{
		ID:             id,
		Persona:        persona,
		Coinhouse:      coinhouse,
		Debit:          debit,
		Credit:         credit,
		OpenedAt:       openedAt.UTC(),
		LastAccessedAt: lastAccessedAt.UTC(),
		Holders:        holders,
		Version:        uint(version), //nolint:gosec // version is small and non-negative
	}, nil
}

func (s Store) scanTransaction(rows adapters.DBRows, account ledger.AccountID) (ledger.Transaction, error) {
	var (
		idToken    string
		fromToken  string
		toToken    string
		amount     int64
		memo       string
		occurredAt time.Time
	)

	scanErr := rows.Scan(&idToken, &fromToken, &toToken, &amount, &memo, &occurredAt)
	if scanErr != nil {
		s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
		return ledger.Transaction{}, errors.Join(ErrScanningRowFailed, scanErr)
	}

	id, err := uuid.Parse(idToken)
	if err != nil {
		return ledger.Transaction{}, errors.Join(ErrScanningRowFailed, err)
	}

	from, err := ledger.ParsePersonaID(fromToken)
	if err != nil {
		return ledger.Transaction{}, errors.Join(ErrScanningRowFailed, err)
	}

	to, err := ledger.ParsePersonaID(toToken)
	if err != nil {
		return ledger.Transaction{}, errors.Join(ErrScanningRowFailed, err)
	}

	return ledger.Transaction{
		ID:         id,
		Account:    account,
		From:       from,
		To:         to,
		Amount:     amount,
		Memo:       memo,
		OccurredAt: occurredAt.UTC(),
	}, nil
}

func (s Store) executeQuery(ctx context.Context, sqlQuery string) (adapters.DBRows, time.Duration, error) {
	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, logActionSelect, duration)

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, duration, errors.Join(ErrQueryingFailed, queryErr)
	}

	return rows, duration, nil
}

func (s Store) executeStatement(ctx context.Context, sqlQuery string) (int64, time.Duration, error) {
	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, logActionExec, duration)

	if execErr != nil {
		s.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return 0, duration, errors.Join(ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		return 0, duration, errors.Join(ErrRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (s Store) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action,
			logAttrQuery, sqlQuery,
			logAttrDurationMS, durationToMilliseconds(duration))
	}
}

func (s Store) logOperation(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s Store) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

func durationToMilliseconds(duration time.Duration) float64 {
	return float64(duration.Microseconds()) / 1000.0
}
