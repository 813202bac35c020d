package raffle

import (
	"sort"

	"github.com/avolkovs/rafflehub/internal/repos/tickets"
)

// winningPoint maps the external seed onto the raffle's number bound:
// seed mod (upper-lower+1) + lower. Pure in (seed, bound).
func winningPoint(seed uint64, lower, upper int64) int64 {
	span := uint64(upper-lower) + 1

	return lower + int64(seed%span)
}

func distance(number, point int64) int64 {
	if number >= point {
		return number - point
	}

	return point - number
}

// rankTickets orders tickets by ascending distance from the winning point
// and returns the first k. The sort is stable, so tickets at equal
// distance keep their arrival order. The input slice is not modified.
func rankTickets(seed uint64, lower, upper int64, ts []tickets.Ticket, k int) []tickets.Ticket {
	point := winningPoint(seed, lower, upper)

	ranked := make([]tickets.Ticket, len(ts))
	copy(ranked, ts)

	sort.SliceStable(ranked, func(i, j int) bool {
		return distance(ranked[i].Number, point) < distance(ranked[j].Number, point)
	})

	if k > len(ranked) {
		k = len(ranked)
	}

	return ranked[:k]
}

// splitPool divides the pool across n ranks per the configured split.
// Integer truncation remainders, and the shares of ranks that went unfilled
// (fewer winners than shares), all land on rank 1 so the pool always pays
// out exactly once.
func splitPool(pool int64, split PayoutSplit, n int) []int64 {
	if n > len(split) {
		n = len(split)
	}

	if n <= 0 {
		return nil
	}

	payouts := make([]int64, n)

	var paid int64

	for i := 0; i < n; i++ {
		payouts[i] = pool / 100 * split[i]
		paid += payouts[i]
	}

	payouts[0] += pool - paid

	return payouts
}
