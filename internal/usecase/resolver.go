package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/kickdata/kickdata-api/internal/platform/textnorm"
)

// playerFetchFunc fetches the candidate pool for one search string.
type playerFetchFunc func(ctx context.Context, search string) ([]ProviderPlayer, error)

// resolvePlayer maps a free-text query to one provider record.
//
// The query is folded (lowercased, diacritics stripped) and sent to the
// provider as-is. While the candidate pool comes back empty, the search
// string is relaxed by dropping its first character and retried, so a
// partial or misspelled prefix still converges on the indexed suffix of
// the name. The loop runs at most len(query) iterations and honors
// context cancellation between fetches. A non-empty pool ends the loop:
// the candidate with the minimum edit distance to the current search
// string wins, ties going to the earliest candidate in provider order.
func resolvePlayer(ctx context.Context, query string, fetch playerFetchFunc) (ProviderPlayer, error) {
	search := textnorm.Fold(query)
	if search == "" {
		return ProviderPlayer{}, fmt.Errorf("%w: player name is empty", ErrInvalidInput)
	}

	for search != "" {
		if err := ctx.Err(); err != nil {
			return ProviderPlayer{}, err
		}

		pool, err := fetch(ctx, search)
		if err != nil {
			return ProviderPlayer{}, err
		}
		if len(pool) > 0 {
			return closestPlayer(search, pool), nil
		}

		// Trim a full rune: folded names can still carry multi-byte
		// letters (Hangul, Cyrillic) and a byte slice would split them.
		_, size := utf8.DecodeRuneInString(search)
		search = search[size:]
	}

	return ProviderPlayer{}, fmt.Errorf("%w: no player matched query %q", ErrNotFound, query)
}

func closestPlayer(search string, pool []ProviderPlayer) ProviderPlayer {
	best := pool[0]
	bestDistance := candidateDistance(search, best)
	for _, candidate := range pool[1:] {
		if distance := candidateDistance(search, candidate); distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best
}

func candidateDistance(search string, candidate ProviderPlayer) int {
	return levenshtein.ComputeDistance(search, textnorm.Fold(candidate.DisplayName()))
}

// splitQueryName reduces a free-text player name to the query strings the
// resolver should try. A single token is treated as a surname. Multiple
// tokens yield the full name first and the bare surname as a fallback.
func splitQueryName(name string) (primary, fallback string) {
	parts := strings.Fields(strings.TrimSpace(name))
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		surname := parts[len(parts)-1]
		return strings.Join(parts, " "), surname
	}
}
