package complete

import (
	"sort"
	"strings"

	"github.com/tentacle-scylla/sqlcontext/pkg/schema"
	"github.com/tentacle-scylla/sqlcontext/pkg/tokenize"
)

// GetCompletions returns completion items for the given context.
// For group information, use GetCompletionsResult instead.
func GetCompletions(ctx *CompletionContext) []CompletionItem {
	return GetCompletionsResult(ctx).Items
}

// GetCompletionsResult returns completions with group definitions.
func GetCompletionsResult(ctx *CompletionContext) CompletionResult {
	return GetCompletionsResultWithOptions(ctx, DefaultOptions())
}

// GetCompletionsResultWithOptions returns completions with group definitions and custom options.
func GetCompletionsResultWithOptions(ctx *CompletionContext, opts *CompletionOptions) CompletionResult {
	if ctx == nil {
		return CompletionResult{Context: Unknown()}
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	registry := NewGroupRegistry()
	detected := Detect(ctx.Query, ctx.Position)

	// Nothing is suggested inside comments and string literals.
	if cursorInOpaqueToken(ctx.Query, detected.TokenEnd) {
		return CompletionResult{
			Groups:  registry.Groups(),
			Context: detected.Context,
			Prefix:  detected.Prefix,
		}
	}

	items := getCompletionsForContext(detected.Context, ctx.Metadata, opts, registry)

	if detected.Prefix != "" {
		items = filterByPrefix(items, detected.Prefix)
	}

	sortCompletions(items)

	if opts.MaxItems > 0 && len(items) > opts.MaxItems {
		items = items[:opts.MaxItems]
	}

	return CompletionResult{
		Groups:  registry.Groups(),
		Items:   items,
		Context: detected.Context,
		Prefix:  detected.Prefix,
	}
}

// getCompletionsForContext generates completions based on the resolved context.
func getCompletionsForContext(c Context, md *schema.Metadata, opts *CompletionOptions, registry *GroupRegistry) []CompletionItem {
	switch c.Kind {
	case ContextTables:
		return getTableCompletions(md, registry)

	case ContextColumns:
		tables := c.Tables
		if len(tables) == 0 {
			// No FROM yet: every table's columns are candidates.
			tables = md.TableNames()
		}
		return getColumnCompletions(md, tables, len(tables) > 1, registry)

	case ContextQualifiedColumns:
		return getColumnCompletions(md, []string{c.Table}, false, registry)

	default:
		if opts.IncludeKeywords {
			return getKeywordCompletions(registry)
		}
	}
	return nil
}

// getTableCompletions returns completions for tables and views.
func getTableCompletions(md *schema.Metadata, registry *GroupRegistry) []CompletionItem {
	if md == nil {
		return nil
	}

	items := make([]CompletionItem, 0, len(md.Tables))
	for _, tbl := range md.Tables {
		item := CompletionItem{
			Label:        tbl.Name,
			InsertText:   quoteIdentifier(tbl.Name),
			Kind:         KindTable,
			Detail:       "Table",
			SortPriority: 5,
		}
		if tbl.IsView() {
			item.Kind = KindView
			item.Detail = "View"
			item.SortPriority = 6 // Slightly lower than tables
			item.Groups = []string{registry.RegisterCategory(GroupCatViews)}
		} else {
			item.Groups = []string{registry.RegisterCategory(GroupCatTables)}
		}
		items = append(items, item)
	}
	return items
}

// getColumnCompletions returns completions for the columns of tables.
// With several source tables the detail names the table a column comes from.
func getColumnCompletions(md *schema.Metadata, tables []string, showSource bool, registry *GroupRegistry) []CompletionItem {
	if md == nil {
		return nil
	}

	var items []CompletionItem
	for priority, table := range tables {
		cols := md.Columns(table)
		if len(cols) == 0 {
			continue
		}

		colGroupID := registry.RegisterCategory(GroupCatColumns)
		srcGroupID := registry.RegisterSource(table, priority)

		for _, col := range cols {
			detail := col.Type
			if showSource {
				if detail == "" {
					detail = table
				} else {
					detail = table + " · " + detail
				}
			}
			items = append(items, CompletionItem{
				Label:        col.Name,
				InsertText:   quoteIdentifier(col.Name),
				Kind:         KindColumn,
				Detail:       detail,
				SortPriority: 10 + priority,
				Groups:       []string{colGroupID, srcGroupID},
			})
		}
	}
	return items
}

// getKeywordCompletions returns the reserved words as a low-confidence
// fallback.
func getKeywordCompletions(registry *GroupRegistry) []CompletionItem {
	groupID := registry.RegisterCategory(GroupCatKeywords)
	kws := tokenize.Keywords()
	items := make([]CompletionItem, 0, len(kws))
	for _, kw := range kws {
		items = append(items, CompletionItem{
			Label:        kw,
			Kind:         KindKeyword,
			SortPriority: 100,
			Groups:       []string{groupID},
		})
	}
	return items
}

// quoteIdentifier returns name in backticks when it cannot be typed bare:
// it is a reserved word or contains characters outside [A-Za-z0-9_]. It
// returns "" for names that need no quoting, so Label is inserted as is.
func quoteIdentifier(name string) string {
	bare := name != "" && !(name[0] >= '0' && name[0] <= '9') && !tokenize.IsKeyword(name)
	for i := 0; bare && i < len(name); i++ {
		bare = tokenize.IsWordByte(name[i])
	}
	if bare {
		return ""
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// cursorInOpaqueToken reports whether cursor sits inside a comment or an
// unterminated quoted literal.
func cursorInOpaqueToken(text string, cursor int) bool {
	raw := tokenize.TokenizeUpTo(text, cursor)
	if len(raw) == 0 {
		return false
	}

	last := raw[len(raw)-1]
	switch last.Kind {
	case tokenize.KindComment:
		if strings.HasPrefix(last.Text, "--") {
			return true
		}
		return len(last.Text) < 4 || !strings.HasSuffix(last.Text, "*/")
	case tokenize.KindString:
		return !closedLiteral(last.Text)
	}
	return false
}

// closedLiteral reports whether the quoted literal s ends with an unescaped
// closing quote.
func closedLiteral(s string) bool {
	if len(s) < 2 || s[len(s)-1] != s[0] {
		return false
	}
	backslashes := 0
	for i := len(s) - 2; i > 0 && s[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 0
}

// filterByPrefix filters completions to those matching the prefix.
func filterByPrefix(items []CompletionItem, prefix string) []CompletionItem {
	if prefix == "" {
		return items
	}

	prefix = strings.ToLower(prefix)
	var filtered []CompletionItem

	for _, item := range items {
		filterText := item.FilterText
		if filterText == "" {
			filterText = item.Label
		}
		if strings.HasPrefix(strings.ToLower(filterText), prefix) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

// sortCompletions sorts completions by priority, then alphabetically.
func sortCompletions(items []CompletionItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortPriority != items[j].SortPriority {
			return items[i].SortPriority < items[j].SortPriority
		}
		return strings.ToLower(items[i].Label) < strings.ToLower(items[j].Label)
	})
}
