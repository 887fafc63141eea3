package complete

import "sort"

// Group ID prefixes
const (
	GroupPrefixCategory = "cat:" // Category group, e.g., "cat:tables"
	GroupPrefixSource   = "src:" // Source table group, e.g., "src:users"
)

// Predefined category group IDs
const (
	GroupCatTables   = "cat:tables"
	GroupCatViews    = "cat:views"
	GroupCatColumns  = "cat:columns"
	GroupCatKeywords = "cat:keywords"
)

// CategoryGroups contains predefined groups for schema object categories.
var CategoryGroups = map[string]CompletionGroup{
	GroupCatColumns: {
		ID:       GroupCatColumns,
		Kind:     GroupKindCategory,
		Label:    "Columns",
		Priority: -3,
	},
	GroupCatTables: {
		ID:       GroupCatTables,
		Kind:     GroupKindCategory,
		Label:    "Tables",
		Priority: -2,
	},
	GroupCatViews: {
		ID:       GroupCatViews,
		Kind:     GroupKindCategory,
		Label:    "Views",
		Priority: -1,
	},
	GroupCatKeywords: {
		ID:       GroupCatKeywords,
		Kind:     GroupKindCategory,
		Label:    "Keywords",
		Priority: 99,
	},
}

// SourceGroupID returns the group ID for a source table
func SourceGroupID(table string) string {
	return GroupPrefixSource + table
}

// NewSourceGroup creates a group for a source table
func NewSourceGroup(table string, priority int) CompletionGroup {
	return CompletionGroup{
		ID:       SourceGroupID(table),
		Kind:     GroupKindSource,
		Label:    table,
		Priority: priority,
	}
}

// GroupRegistry collects groups as completions are generated
type GroupRegistry struct {
	groups map[string]CompletionGroup
}

// NewGroupRegistry creates a new group registry
func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{
		groups: make(map[string]CompletionGroup),
	}
}

// Register adds a group to the registry (idempotent)
func (r *GroupRegistry) Register(group CompletionGroup) {
	if _, exists := r.groups[group.ID]; !exists {
		r.groups[group.ID] = group
	}
}

// RegisterSource registers a source table group
func (r *GroupRegistry) RegisterSource(table string, priority int) string {
	id := SourceGroupID(table)
	r.Register(NewSourceGroup(table, priority))
	return id
}

// RegisterCategory registers a predefined category group and returns its ID
func (r *GroupRegistry) RegisterCategory(categoryID string) string {
	if g, ok := CategoryGroups[categoryID]; ok {
		r.Register(g)
	}
	return categoryID
}

// Groups returns all registered groups sorted by priority, then ID.
func (r *GroupRegistry) Groups() []CompletionGroup {
	result := make([]CompletionGroup, 0, len(r.groups))
	for _, g := range r.groups {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return result[i].ID < result[j].ID
	})
	return result
}
