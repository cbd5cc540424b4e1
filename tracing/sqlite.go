package tracing

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter is a writer that writes spans to a SQLite database.
type SQLiteTraceWriter struct {
	*sql.DB

	statement *sql.Stmt

	dbName           string
	spansToWriteToDB []Span
	batchSize        int
}

// NewSQLiteTraceWriter creates a new SQLiteTraceWriter. The database is
// created at path, with the ".sqlite3" extension appended. If path is empty,
// a unique name is generated.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	w := &SQLiteTraceWriter{
		dbName:    path,
		batchSize: 10000,
	}

	atexit.Register(func() { w.Flush() })

	return w
}

// Init creates the database and the trace table.
func (t *SQLiteTraceWriter) Init() {
	t.createDatabase()
	t.createTable()
	t.prepareStatement()
}

// FileName returns the name of the database file.
func (t *SQLiteTraceWriter) FileName() string {
	return t.dbName + ".sqlite3"
}

// Write buffers a span. The buffer is flushed once it is full.
func (t *SQLiteTraceWriter) Write(span Span) {
	t.spansToWriteToDB = append(t.spansToWriteToDB, span)
	if len(t.spansToWriteToDB) >= t.batchSize {
		t.Flush()
	}
}

// Flush writes all the buffered spans to the database in one transaction.
func (t *SQLiteTraceWriter) Flush() {
	if len(t.spansToWriteToDB) == 0 {
		return
	}

	if t.statement == nil {
		panic("trace writer is not initialized")
	}

	t.mustExecute("BEGIN TRANSACTION")
	defer t.mustExecute("COMMIT TRANSACTION")

	for _, span := range t.spansToWriteToDB {
		_, err := t.statement.Exec(
			span.ID,
			span.Kind,
			span.What,
			span.Where,
			span.StartTime,
			span.EndTime,
		)
		if err != nil {
			panic(fmt.Errorf("writing span %s: %w", span.ID, err))
		}
	}

	t.spansToWriteToDB = nil
}

func (t *SQLiteTraceWriter) createDatabase() {
	if t.dbName == "" {
		t.dbName = "steptrace_" + xid.New().String()
	}

	filename := t.FileName()
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	// The batch transaction and the prepared statement share one connection.
	db.SetMaxOpenConns(1)

	t.DB = db
}

func (t *SQLiteTraceWriter) createTable() {
	t.mustExecute(`
		create table trace
		(
			span_id    varchar(200) not null,
			kind       varchar(100) not null,
			what       varchar(100) not null,
			location   varchar(100) default '',
			start_time float        not null,
			end_time   float        not null
		);
	`)

	t.mustExecute(`
		create index trace_span_id_index
			on trace (span_id);
	`)

	t.mustExecute(`
		create index trace_kind_index
			on trace (kind);
	`)

	t.mustExecute(`
		create index trace_what_index
			on trace (what);
	`)
}

func (t *SQLiteTraceWriter) prepareStatement() {
	stmt, err := t.Prepare(`INSERT INTO trace VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}

	t.statement = stmt
}

func (t *SQLiteTraceWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		panic(fmt.Errorf("executing %q: %w", query, err))
	}

	return res
}

// SpanQuery selects spans from a trace database. Empty fields match
// everything.
type SpanQuery struct {
	Kind  string
	What  string
	Where string
}

// SQLiteTraceReader is a reader that reads spans from a SQLite database.
type SQLiteTraceReader struct {
	*sql.DB

	filename string
}

// NewSQLiteTraceReader creates a new SQLiteTraceReader.
func NewSQLiteTraceReader(filename string) *SQLiteTraceReader {
	r := &SQLiteTraceReader{
		filename: filename,
	}

	return r
}

// Init establishes a connection to the database.
func (r *SQLiteTraceReader) Init() {
	if _, err := os.Stat(r.filename); err != nil {
		panic(err)
	}

	db, err := sql.Open("sqlite3", r.filename)
	if err != nil {
		panic(err)
	}

	r.DB = db
}

// ListSpans returns the spans that match the query, ordered by start time.
func (r *SQLiteTraceReader) ListSpans(query SpanQuery) []Span {
	rows, err := r.Query(`
		SELECT span_id, kind, what, location, start_time, end_time
		FROM trace
		WHERE (? = '' OR kind = ?)
			AND (? = '' OR what = ?)
			AND (? = '' OR location = ?)
		ORDER BY start_time, span_id
	`,
		query.Kind, query.Kind,
		query.What, query.What,
		query.Where, query.Where,
	)
	if err != nil {
		panic(err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			panic(err)
		}
	}()

	spans := []Span{}
	for rows.Next() {
		var s Span

		err := rows.Scan(
			&s.ID, &s.Kind, &s.What, &s.Where, &s.StartTime, &s.EndTime)
		if err != nil {
			panic(err)
		}

		spans = append(spans, s)
	}

	if err := rows.Err(); err != nil {
		panic(err)
	}

	return spans
}
