// Package memory holds in-memory repository doubles used by service tests.
// They honor the same contracts as the GORM implementations, interpreting
// the common specifications directly instead of building SQL.
package memory

import (
	"sort"
	"time"

	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
)

// query is the interpreted form of a specification list.
type query struct {
	id         *uuid.UUID
	ids        []uuid.UUID
	ownerId    *uuid.UUID
	email      string
	token      string
	role       string
	status     string
	region     string
	search     string
	activeOnly bool
	orderBy    string
	desc       bool
	limit      int
	offset     int
}

func parseSpecs(specs []specification.Specification) query {
	q := query{limit: -1}
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			q.id = &id
		case specification.ByIDs:
			q.ids = v.IDs
		case specification.OwnedBy:
			uid := v.UserID
			q.ownerId = &uid
		case specification.ByEmail:
			q.email = v.Email
		case specification.ByToken:
			q.token = v.Token
		case specification.ByRole:
			q.role = v.Role
		case specification.ByStatus:
			q.status = v.Status
		case specification.ByRegion:
			q.region = v.Region
		case specification.UserSearch:
			q.search = v.Query
		case specification.NameSearch:
			q.search = v.Query
		case specification.ActiveOnly:
			q.activeOnly = true
		case specification.OrderBy:
			q.orderBy = v.Field
			q.desc = v.Desc
		case specification.Pagination:
			q.limit = v.Limit
			q.offset = v.Offset
		}
	}
	return q
}

func (q query) matchesID(id uuid.UUID) bool {
	if q.id != nil && *q.id != id {
		return false
	}
	if len(q.ids) > 0 {
		found := false
		for _, candidate := range q.ids {
			if candidate == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sortByCreatedAt orders a slice in place when the query's OrderBy targets
// created_at; other orderings are left as-is, tests must not depend on them.
func sortByCreatedAt[T any](items []T, createdAt func(T) time.Time, q query) {
	if q.orderBy != "created_at" {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if q.desc {
			return createdAt(items[i]).After(createdAt(items[j]))
		}
		return createdAt(items[i]).Before(createdAt(items[j]))
	})
}

func paginate[T any](items []T, q query) []T {
	if q.offset > 0 {
		if q.offset >= len(items) {
			return nil
		}
		items = items[q.offset:]
	}
	if q.limit >= 0 && q.limit < len(items) {
		items = items[:q.limit]
	}
	return items
}
