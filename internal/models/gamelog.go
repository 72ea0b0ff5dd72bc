package models

// RawGameRow is one row of a player's game log as read from a data source,
// before the stat columns have been validated. A nil stat means the source
// value could not be read as a number.
type RawGameRow struct {
	GameNumber int
	Date       string
	Opponent   string
	Points     *float64
	Assists    *float64
	Rebounds   *float64
}

// Complete reports whether all three stat columns hold a value.
func (r RawGameRow) Complete() bool {
	return r.Points != nil && r.Assists != nil && r.Rebounds != nil
}

// GameRecord is a cleaned game log row. Every stat is a finite number.
type GameRecord struct {
	GameNumber int     `json:"game_number,omitempty"`
	Date       string  `json:"date,omitempty"`
	Opponent   string  `json:"opponent"`
	Points     float64 `json:"points"`
	Assists    float64 `json:"assists"`
	Rebounds   float64 `json:"rebounds"`
}

// Stats returns the record's points/assists/rebounds as a StatLine.
func (g GameRecord) Stats() StatLine {
	return StatLine{Points: g.Points, Assists: g.Assists, Rebounds: g.Rebounds}
}

// PlayerLog is a player's cleaned game history in chronological order.
type PlayerLog struct {
	Player string       `json:"player"`
	Games  []GameRecord `json:"games"`
}

func (l PlayerLog) Len() int { return len(l.Games) }

// Last returns the most recent game. ok is false for an empty log.
func (l PlayerLog) Last() (GameRecord, bool) {
	if len(l.Games) == 0 {
		return GameRecord{}, false
	}
	return l.Games[len(l.Games)-1], true
}

// Tail returns the last n games, or the whole log when it is shorter than n.
func (l PlayerLog) Tail(n int) []GameRecord {
	if n <= 0 {
		return nil
	}
	if n > len(l.Games) {
		n = len(l.Games)
	}
	return l.Games[len(l.Games)-n:]
}

// Against returns every game played against the given opponent code.
func (l PlayerLog) Against(opponent string) []GameRecord {
	var games []GameRecord
	for _, g := range l.Games {
		if g.Opponent == opponent {
			games = append(games, g)
		}
	}
	return games
}
