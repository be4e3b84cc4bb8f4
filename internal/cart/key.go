package cart

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// CompositionKey derives the identity of a composed line: the product id joined
// with the sorted, deduplicated addon item ids. Two selections with the same
// product and the same set of addons are the same composition regardless of the
// order the addons were picked in.
func CompositionKey(productID uuid.UUID, addons []SelectedAddon) string {
	ids := make([]string, 0, len(addons))
	seen := map[uuid.UUID]struct{}{}
	for _, addon := range addons {
		if _, ok := seen[addon.ID]; ok {
			continue
		}
		seen[addon.ID] = struct{}{}
		ids = append(ids, addon.ID.String())
	}
	sort.Strings(ids)

	parts := append([]string{productID.String()}, ids...)
	return strings.Join(parts, "-")
}
