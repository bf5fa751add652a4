// Package leaderboard implements the fixed-capacity ranked board kept for every scoring period.
//
// A Board holds at most domain.LeaderboardSize entries sorted by descending score.
// Equal scores keep insertion order: whoever reached a score first stays above.
// Boards are not safe for concurrent use; the season engine owns them behind its lock.
package leaderboard

import "github.com/osse101/questledger/internal/domain"

// NotRanked is returned as the position of a player that holds no slot
const NotRanked = -1

type slot struct {
	player string
	score  uint64
}

// Board is the ranked top-N of a single period
type Board struct {
	period  uint64
	slots   [domain.LeaderboardSize]slot
	size    int
	settled bool
}

// New creates an empty board for the given period
func New(period uint64) *Board {
	return &Board{period: period}
}

// Period returns the period this board ranks
func (b *Board) Period() uint64 {
	return b.period
}

// Len returns the number of occupied slots
func (b *Board) Len() int {
	return b.size
}

// Settled reports whether the period's rewards have been paid
func (b *Board) Settled() bool {
	return b.settled
}

// MarkSettled freezes the board. The flag never goes back to false.
func (b *Board) MarkSettled() {
	b.settled = true
}

// Position returns the zero-based slot of player, or NotRanked
func (b *Board) Position(player string) int {
	for i := 0; i < b.size; i++ {
		if b.slots[i].player == player {
			return i
		}
	}
	return NotRanked
}

// Rank records newScore for player and re-ranks the board.
//
// It returns the player's position after the update (NotRanked if the score does
// not reach the board) and whether the player's position changed, which is the
// case for an insertion or a move.
func (b *Board) Rank(player string, newScore uint64) (int, bool) {
	current := NotRanked
	target := NotRanked
	for i := 0; i < len(b.slots); i++ {
		if i >= b.size {
			if target == NotRanked {
				target = i
			}
			break
		}
		if current == NotRanked && b.slots[i].player == player {
			current = i
		}
		if target == NotRanked && b.slots[i].score < newScore {
			target = i
		}
	}

	if current != NotRanked {
		return b.update(current, target, newScore)
	}

	if target == NotRanked {
		return NotRanked, false
	}

	b.insert(target, slot{player: player, score: newScore})
	return target, true
}

// update handles a player that already holds a slot
func (b *Board) update(current, target int, newScore uint64) (int, bool) {
	old := b.slots[current].score

	switch {
	case newScore == old:
		return current, false

	case newScore < old:
		// Scores only grow within a period, but a decrease must still keep the
		// board sorted: take the player out and rank them again.
		player := b.slots[current].player
		b.remove(current)
		target = b.firstBelow(newScore)
		b.insert(target, slot{player: player, score: newScore})
		return target, target != current

	case target == current || target == NotRanked:
		b.slots[current].score = newScore
		return current, false
	}

	// target < current: everything from target up to the old slot slides down one
	moved := b.slots[current]
	moved.score = newScore
	copy(b.slots[target+1:current+1], b.slots[target:current])
	b.slots[target] = moved
	return target, true
}

// insert places s at pos, shifting the tail down and dropping the last slot when full
func (b *Board) insert(pos int, s slot) {
	last := b.size
	if last == len(b.slots) {
		last--
	}
	copy(b.slots[pos+1:last+1], b.slots[pos:last])
	b.slots[pos] = s
	if b.size < len(b.slots) {
		b.size++
	}
}

func (b *Board) remove(pos int) {
	copy(b.slots[pos:b.size-1], b.slots[pos+1:b.size])
	b.size--
	b.slots[b.size] = slot{}
}

func (b *Board) firstBelow(score uint64) int {
	for i := 0; i < b.size; i++ {
		if b.slots[i].score < score {
			return i
		}
	}
	return b.size
}

// Entries returns a copy of the occupied slots in rank order
func (b *Board) Entries() []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, b.size)
	for i := 0; i < b.size; i++ {
		entries = append(entries, domain.LeaderboardEntry{
			Position: i,
			Player:   b.slots[i].player,
			Score:    b.slots[i].score,
		})
	}
	return entries
}

// Snapshot returns a read-only copy of the board
func (b *Board) Snapshot() domain.LeaderboardSnapshot {
	return domain.LeaderboardSnapshot{
		Period:  b.period,
		Settled: b.settled,
		Entries: b.Entries(),
	}
}
