package recommend

import "playnext/internal/microservices/http-api/models"

const (
	FavoriteThreshold = 8.0
	DislikeThreshold  = 4.0
)

// RatedGame is one rating row reduced to what classification needs.
type RatedGame struct {
	GameID int64
	Score  float64
}

// BacklogEntry is one backlog row reduced to what classification needs.
type BacklogEntry struct {
	GameID int64
	Status models.BacklogStatus
	Rating *float64
}

// Preferences lists liked and disliked game ids in first-seen order. A game
// can land in both lists when a rating and a backlog status disagree.
type Preferences struct {
	Favorites []int64
	Disliked  []int64
	Backlog   []int64
}

type idSet struct {
	ids  []int64
	seen map[int64]struct{}
}

func (s *idSet) add(id int64) {
	if s.seen == nil {
		s.seen = make(map[int64]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// ClassifyPreferences averages each game's ratings and treats an average at
// or above FavoriteThreshold as liked and at or below DislikeThreshold as
// disliked. Backlog entries then add completed/playing games to the liked
// list, dropped games to the disliked list, and apply the same thresholds
// to any rating stored on the entry.
func ClassifyPreferences(ratings []RatedGame, backlog []BacklogEntry) Preferences {
	type acc struct {
		sum   float64
		count int
	}
	var order []int64
	totals := make(map[int64]*acc)
	for _, r := range ratings {
		a, ok := totals[r.GameID]
		if !ok {
			a = &acc{}
			totals[r.GameID] = a
			order = append(order, r.GameID)
		}
		a.sum += r.Score
		a.count++
	}

	var fav, dis, back idSet
	for _, id := range order {
		avg := totals[id].sum / float64(totals[id].count)
		if avg >= FavoriteThreshold {
			fav.add(id)
		} else if avg <= DislikeThreshold {
			dis.add(id)
		}
	}

	for _, item := range backlog {
		back.add(item.GameID)
		switch item.Status {
		case models.StatusCompleted, models.StatusPlaying:
			fav.add(item.GameID)
		case models.StatusDropped:
			dis.add(item.GameID)
		}
		if item.Rating != nil {
			if *item.Rating >= FavoriteThreshold {
				fav.add(item.GameID)
			} else if *item.Rating <= DislikeThreshold {
				dis.add(item.GameID)
			}
		}
	}

	return Preferences{Favorites: fav.ids, Disliked: dis.ids, Backlog: back.ids}
}
