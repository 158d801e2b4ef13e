package analytics

import (
	"sort"

	"github.com/soporte-insights/backend/internal/models"
)

const (
	defaultCategory    = "Sin Categoría"
	defaultSubCategory = "Sin Subcategoría"
	topCategoryLimit   = 10
)

// TreeNode is one node of the category hierarchy. Leaf value = ticket
// count; a category's value is the sum of its children.
type TreeNode struct {
	Name     string      `json:"name"`
	Value    int         `json:"value"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Treemap holds one category tree per comparison year; Previous is nil
// outside comparison mode.
type Treemap struct {
	Current  *TreeNode `json:"current"`
	Previous *TreeNode `json:"previous"`
}

// CategoryCount ranks a category in single mode.
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ComparedCategoryCount carries both years' counts for a category from the
// union of each year's top ranking; the count is zero for a year the
// category did not appear in.
type ComparedCategoryCount struct {
	Name          string `json:"name"`
	CurrentValue  int    `json:"currentValue"`
	PreviousValue int    `json:"previousValue"`
}

// TopCategories is the ranking output: exactly one of the two fields is set.
type TopCategories struct {
	Single   []CategoryCount         `json:"single,omitempty"`
	Compared []ComparedCategoryCount `json:"compared,omitempty"`
}

// Names lists the ranked category names in either mode.
func (tc TopCategories) Names() []string {
	if tc.Compared != nil {
		names := make([]string, len(tc.Compared))
		for i, c := range tc.Compared {
			names[i] = c.Name
		}
		return names
	}
	names := make([]string, len(tc.Single))
	for i, c := range tc.Single {
		names[i] = c.Name
	}
	return names
}

// Crosstab is the category-by-status count matrix over the top categories.
type Crosstab struct {
	Rows    []string                  `json:"rows"`
	Columns []string                  `json:"columns"`
	Cells   map[string]map[string]int `json:"cells"`
}

// ClassificationResult bundles the tree, the ranking and the crosstab.
type ClassificationResult struct {
	Treemap       Treemap       `json:"treemap"`
	TopCategories TopCategories `json:"topCategories"`
	Crosstab      Crosstab      `json:"crosstab"`
}

// CalculateClassification builds the two-level category hierarchy, the
// top-category ranking and the category-by-status crosstab.
func CalculateClassification(tickets []models.Ticket, compare bool, years *models.ComparisonYears) ClassificationResult {
	var res ClassificationResult

	if compare && years != nil {
		current := sliceYear(tickets, years.Current)
		previous := sliceYear(tickets, years.Previous)
		res.Treemap = Treemap{
			Current:  buildCategoryTree(current),
			Previous: buildCategoryTree(previous),
		}
		res.TopCategories = TopCategories{Compared: comparedTopCategories(current, previous)}
		// comparison mode restricts the crosstab to the current year
		res.Crosstab = buildCrosstab(current, res.TopCategories.Names())
		return res
	}

	res.Treemap = Treemap{Current: buildCategoryTree(tickets)}
	res.TopCategories = TopCategories{Single: topCategories(tickets)}
	res.Crosstab = buildCrosstab(tickets, res.TopCategories.Names())
	return res
}

func buildCategoryTree(tickets []models.Ticket) *TreeNode {
	root := &TreeNode{Name: "root"}
	categories := map[string]*TreeNode{}
	subNodes := map[string]map[string]*TreeNode{}

	for _, t := range tickets {
		category := defaultCategory
		if t.Category != nil {
			category = *t.Category
		}
		sub := defaultSubCategory
		if t.SubCategory != nil {
			sub = *t.SubCategory
		}

		catNode, ok := categories[category]
		if !ok {
			catNode = &TreeNode{Name: category}
			categories[category] = catNode
			subNodes[category] = map[string]*TreeNode{}
			root.Children = append(root.Children, catNode)
		}
		subNode, ok := subNodes[category][sub]
		if !ok {
			subNode = &TreeNode{Name: sub}
			subNodes[category][sub] = subNode
			catNode.Children = append(catNode.Children, subNode)
		}
		subNode.Value++
	}

	for _, catNode := range root.Children {
		sum := 0
		for _, child := range catNode.Children {
			sum += child.Value
		}
		catNode.Value = sum
	}
	sort.SliceStable(root.Children, func(i, j int) bool {
		return root.Children[i].Value > root.Children[j].Value
	})
	return root
}

func categoryCounts(tickets []models.Ticket) map[string]int {
	counts := map[string]int{}
	for _, t := range tickets {
		if t.Category != nil {
			counts[*t.Category]++
		}
	}
	return counts
}

func topCategories(tickets []models.Ticket) []CategoryCount {
	counts := categoryCounts(tickets)
	out := make([]CategoryCount, 0, len(counts))
	for name, value := range counts {
		out = append(out, CategoryCount{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topCategoryLimit {
		out = out[:topCategoryLimit]
	}
	return out
}

// comparedTopCategories merges the two years' top rankings into their union,
// zero-filling the count for a year a category is absent from.
func comparedTopCategories(current, previous []models.Ticket) []ComparedCategoryCount {
	currentCounts := categoryCounts(current)
	previousCounts := categoryCounts(previous)

	seen := map[string]struct{}{}
	var union []string
	for _, c := range topCategories(current) {
		if _, ok := seen[c.Name]; !ok {
			seen[c.Name] = struct{}{}
			union = append(union, c.Name)
		}
	}
	for _, c := range topCategories(previous) {
		if _, ok := seen[c.Name]; !ok {
			seen[c.Name] = struct{}{}
			union = append(union, c.Name)
		}
	}

	out := make([]ComparedCategoryCount, 0, len(union))
	for _, name := range union {
		out = append(out, ComparedCategoryCount{
			Name:          name,
			CurrentValue:  currentCounts[name],
			PreviousValue: previousCounts[name],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrentValue > out[j].CurrentValue
	})
	return out
}

func buildCrosstab(tickets []models.Ticket, topNames []string) Crosstab {
	cells := map[string]map[string]int{}
	statusSeen := map[string]struct{}{}
	var statuses []string

	for _, t := range tickets {
		if t.Category == nil || t.Status == nil {
			continue
		}
		if cells[*t.Category] == nil {
			cells[*t.Category] = map[string]int{}
		}
		cells[*t.Category][*t.Status]++
		if _, ok := statusSeen[*t.Status]; !ok {
			statusSeen[*t.Status] = struct{}{}
			statuses = append(statuses, *t.Status)
		}
	}

	top := map[string]bool{}
	for _, name := range topNames {
		top[name] = true
	}
	var rows []string
	for category := range cells {
		if top[category] {
			rows = append(rows, category)
		}
	}
	sort.Strings(rows)

	return Crosstab{Rows: rows, Columns: OrderStatuses(statuses), Cells: cells}
}
