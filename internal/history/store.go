package history

import (
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Result is the final snapshot of one finished practice run.
type Result struct {
	ID       string
	Sum      string // content hash of the score source
	Mode     string
	Hits     uint64
	Misses   uint64
	Mistakes uint64
	Elapsed  time.Duration
	Played   time.Time
}

// Store keeps finished runs in a local sqlite database.
type Store struct {
	db *sql.DB
}

func (s *Store) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists results
	  (
		  id text not null primary key,
		  sum text,
		  mode text,
		  hits integer,
		  misses integer,
		  mistakes integer,
		  elapsed_ms integer,
		  played integer
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *Store) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *Store) Save(r Result) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		"insert into results(id, sum, mode, hits, misses, mistakes, elapsed_ms, played) values(?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.Sum, r.Mode, r.Hits, r.Misses, r.Mistakes, r.Elapsed.Milliseconds(), r.Played.Unix(),
	)
	return err
}

// Load returns all recorded runs of a song, newest first. Errors are
// logged, not fatal; an empty history is a normal state.
func (s *Store) Load(sum string) []Result {
	results := []Result{}
	rows, err := s.db.Query(
		"select id, sum, mode, hits, misses, mistakes, elapsed_ms, played from results where sum = ? order by played desc",
		sum,
	)
	if nil != err {
		log.Println("unable to load history", err)
		return results
	}
	defer rows.Close()
	for rows.Next() {
		var r Result
		var elapsedMs, played int64
		if err := rows.Scan(&r.ID, &r.Sum, &r.Mode, &r.Hits, &r.Misses, &r.Mistakes, &elapsedMs, &played); nil != err {
			log.Println("unable to scan history row", err)
			continue
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.Played = time.Unix(played, 0)
		results = append(results, r)
	}
	return results
}
