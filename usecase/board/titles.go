package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fastygo/kanban/domain"
)

var numberSuffix = regexp.MustCompile(`\((\d+)\)$`)

// nextCardTitle picks a default title that is visibly distinct from the existing
// default-titled cards of a column: "new card", then "new card (n)" with n one past
// the highest suffix in use. A default title without a suffix counts as 0.
func nextCardTitle(cards []domain.Card) string {
	highest := -1
	for _, card := range cards {
		if !strings.HasPrefix(card.Title, domain.DefaultCardTitle) {
			continue
		}
		n := 0
		if m := numberSuffix.FindStringSubmatch(card.Title); m != nil {
			if parsed, err := strconv.Atoi(m[1]); err == nil {
				n = parsed
			}
		}
		if n > highest {
			highest = n
		}
	}
	if highest < 0 {
		return domain.DefaultCardTitle
	}
	return fmt.Sprintf("%s (%d)", domain.DefaultCardTitle, highest+1)
}
