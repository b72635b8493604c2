package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и обёрток над ними
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция, через которую можно выполнять запросы
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// QueryObserver получает длительность и результат каждого запроса
type QueryObserver interface {
	ObserveQuery(operation string, err error, elapsed time.Duration)
}

// DB обёртка над *sql.DB, которая снимает метрики с запросов.
// observer может быть nil - тогда обёртка прозрачна.
type DB struct {
	db       *sql.DB
	observer QueryObserver
}

// Wrap оборачивает соединение
func Wrap(db *sql.DB, observer QueryObserver) *DB {
	return &DB{db: db, observer: observer}
}

// Raw возвращает исходное соединение
func (d *DB) Raw() *sql.DB {
	return d.db
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", err, start)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", err, start)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", row.Err(), start)
	return row
}

// BeginTx начинает транзакцию, запросы внутри которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.observe("begin", err, start)
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{tx: tx, observer: d.observer}, nil
}

func (d *DB) observe(operation string, err error, start time.Time) {
	if d.observer == nil {
		return
	}
	d.observer.ObserveQuery(operation, err, time.Since(start))
}

// SqlTxWrapper обёртка над *sql.Tx с метриками
type SqlTxWrapper struct {
	tx       *sql.Tx
	observer QueryObserver
}

func (t *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.observe("tx_exec", err, start)
	return res, err
}

func (t *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.observe("tx_query", err, start)
	return rows, err
}

func (t *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.observe("tx_query_row", row.Err(), start)
	return row
}

func (t *SqlTxWrapper) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.observe("commit", err, start)
	return err
}

func (t *SqlTxWrapper) Rollback() error {
	start := time.Now()
	err := t.tx.Rollback()
	t.observe("rollback", err, start)
	return err
}

func (t *SqlTxWrapper) observe(operation string, err error, start time.Time) {
	if t.observer == nil {
		return
	}
	t.observer.ObserveQuery(operation, err, time.Since(start))
}
