package storage

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pable/go-ff-stats/internal/identity"
	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/sheet"
)

// InsertPlayers bulk-inserts merged players and their per-split snapshots in
// one transaction.
func (db *DB) InsertPlayers(players []model.MergedPlayer) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO players(
			identity_key, rank, player, team, events,
			total_kills, matches, kpg,
			headshots, knockdowns, gloowalls, gloowalls_destroyed,
			revives, allies_revived, sources
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	splitStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO split_stats(identity_key, split, kills, matches, kpg, display)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer splitStmt.Close()

	for _, p := range players {
		_, err = stmt.Exec(
			p.Key, p.Rank, p.Player, p.Team, p.Events,
			p.TotalKills, p.Matches, p.KPG,
			p.Headshots, p.Knockdowns, p.Gloowalls, p.GloowallsDestroyed,
			p.Revives, p.AlliesRevived, p.Sources,
		)
		if err != nil {
			return fmt.Errorf("insert player %s: %w", p.Key, err)
		}
		for _, s := range model.AllSplits {
			display := p.SplitDisplay.Get(s)
			stat, ok := sheet.ParseStatString(display)
			if !ok {
				continue
			}
			if _, err = splitStmt.Exec(p.Key, s.Key(), stat.Kills, stat.Matches, stat.KPG(), display); err != nil {
				return fmt.Errorf("insert split_stats for %s/%s: %w", p.Key, s.Key(), err)
			}
		}
	}
	return tx.Commit()
}

// InsertSourceRows stores one split's parsed rows as they came from the sheet.
func (db *DB) InsertSourceRows(split model.Split, recs []model.PlayerRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO source_rows(
			split, row_num, player, identity_key, team, kills, matches, headshots, knockdowns
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range recs {
		_, err = stmt.Exec(
			split.Key(), i+1, r.Player, identity.Key(r.Player), r.Team,
			r.TotalKills, r.Matches, r.Headshots, r.Knockdowns,
		)
		if err != nil {
			return fmt.Errorf("insert source_rows %s row %d: %w", split.Key(), i+1, err)
		}
	}
	return tx.Commit()
}

// InsertTeamStandings stores one stage's team table.
func (db *DB) InsertTeamStandings(season, stage string, teams []model.TeamStanding) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO team_standings(season, stage, rank, team, points, booyahs, kills, matches)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range teams {
		if _, err = stmt.Exec(season, stage, t.Rank, t.Team, t.Points, t.Booyahs, t.Kills, t.Matches); err != nil {
			return fmt.Errorf("insert team_standings %s/%s %s: %w", season, stage, t.Team, err)
		}
	}
	return tx.Commit()
}

// ListPlayers returns every stored player ordered by rank. Split fields are
// restored from split_stats.
func (db *DB) ListPlayers() ([]model.MergedPlayer, error) {
	rows, err := db.conn.Query(`
		SELECT identity_key, rank, player, team, events,
		       total_kills, matches, kpg,
		       headshots, knockdowns, gloowalls, gloowalls_destroyed,
		       revives, allies_revived, sources
		FROM players ORDER BY rank`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MergedPlayer
	index := make(map[string]int)
	for rows.Next() {
		var p model.MergedPlayer
		if err := rows.Scan(
			&p.Key, &p.Rank, &p.Player, &p.Team, &p.Events,
			&p.TotalKills, &p.Matches, &p.KPG,
			&p.Headshots, &p.Knockdowns, &p.Gloowalls, &p.GloowallsDestroyed,
			&p.Revives, &p.AlliesRevived, &p.Sources,
		); err != nil {
			return nil, err
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := db.fillSplits(out, index); err != nil {
		return nil, err
	}
	return out, nil
}

func (db *DB) fillSplits(players []model.MergedPlayer, index map[string]int) error {
	rows, err := db.conn.Query(`SELECT identity_key, split, kills, display FROM split_stats`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, splitKey, display string
		var kills int
		if err := rows.Scan(&key, &splitKey, &kills, &display); err != nil {
			return err
		}
		i, ok := index[key]
		if !ok {
			continue
		}
		s, err := model.ParseSplit(splitKey)
		if err != nil {
			return err
		}
		players[i].SplitKills.Set(s, kills)
		players[i].SplitDisplay.Set(s, display)
	}
	return rows.Err()
}

// QueryRaw runs an arbitrary read query and returns the column names and
// every row rendered as text. NULL becomes "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// Count returns the number of rows in table. Only schema tables are accepted.
func (db *DB) Count(table string) (int, error) {
	switch table {
	case "players", "split_stats", "source_rows", "team_standings":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}
