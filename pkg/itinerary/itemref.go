// FILE: pkg/itinerary/itemref.go
package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
)

// ItemRef is the resolved form of a trip item address. The wire format is a
// string ("vineyard-2", "restaurant"); it is parsed exactly once at the
// service boundary and only the tagged form travels through the ordering
// code.
type ItemRef struct {
	Kind  entity.ItemKind
	Index int // positional index into Trip.Vineyards; unused for restaurant
}

// ParseItemID parses the wire form of an item address.
func ParseItemID(itemId string) (ItemRef, error) {
	if itemId == string(entity.ItemKindRestaurant) {
		return ItemRef{Kind: entity.ItemKindRestaurant}, nil
	}

	prefix := string(entity.ItemKindVineyard) + "-"
	if strings.HasPrefix(itemId, prefix) {
		idx, err := strconv.Atoi(strings.TrimPrefix(itemId, prefix))
		if err != nil || idx < 0 {
			return ItemRef{}, apperror.InvalidTarget(fmt.Sprintf("malformed item id %q", itemId))
		}
		return ItemRef{Kind: entity.ItemKindVineyard, Index: idx}, nil
	}

	return ItemRef{}, apperror.InvalidTarget(fmt.Sprintf("unknown item id %q", itemId))
}

// ItemID renders the wire form.
func (r ItemRef) ItemID() string {
	if r.Kind == entity.ItemKindRestaurant {
		return string(entity.ItemKindRestaurant)
	}
	return fmt.Sprintf("%s-%d", entity.ItemKindVineyard, r.Index)
}

// Entry renders the persisted custom-order form.
func (r ItemRef) Entry() entity.OrderEntry {
	return entity.OrderEntry{ItemId: r.ItemID(), Kind: r.Kind}
}

// refFromEntry resolves a stored order entry back into a tagged ref.
func refFromEntry(e entity.OrderEntry) (ItemRef, error) {
	return ParseItemID(e.ItemId)
}
