package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/adonay-express/orderflow/internal/domain/model"
)

// BatchUntagged is the sentinel grouping key for orders placed outside any
// batch.
const BatchUntagged = "untagged"

// spanishMonths matches the es-CL month labels the storefront shows.
var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthLabel renders the archive group label for a point in time.
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", spanishMonths[t.Month()-1], t.Year())
}

// ActiveOrders filters the snapshot down to orders still in operation,
// preserving the stream's newest-first ordering.
func ActiveOrders(all []model.Order) []model.Order {
	result := make([]model.Order, 0, len(all))
	for _, o := range all {
		if !o.Status.Archived() {
			result = append(result, o)
		}
	}
	return result
}

// ArchivedOrders filters to terminal orders and groups them by the calendar
// month of placement. Groups come newest month first; orders within a group
// keep the stream's newest-first ordering.
func ArchivedOrders(all []model.Order) []model.MonthGroup {
	type bucket struct {
		label string
		year  int
		month time.Month
	}

	groups := make(map[bucket][]model.Order)
	for _, o := range all {
		if !o.Status.Archived() {
			continue
		}
		b := bucket{label: MonthLabel(o.PlacedAt), year: o.PlacedAt.Year(), month: o.PlacedAt.Month()}
		groups[b] = append(groups[b], o)
	}

	keys := make([]bucket, 0, len(groups))
	for b := range groups {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})

	result := make([]model.MonthGroup, 0, len(keys))
	for _, b := range keys {
		result = append(result, model.MonthGroup{Label: b.label, Orders: groups[b]})
	}
	return result
}

// BatchSummaries groups the snapshot by batch tag. Every member order extends
// the batch's observed time span; revenue, order count and product aggregates
// accumulate over counted orders only. Batches come newest first by last
// observed order, tag as tie-break.
func BatchSummaries(all []model.Order) []model.BatchSummary {
	summaries := make(map[string]*model.BatchSummary)
	products := make(map[string]map[string]*model.ProductSales)

	for _, o := range all {
		tag := o.BatchTag
		if tag == "" {
			tag = BatchUntagged
		}

		s, ok := summaries[tag]
		if !ok {
			s = &model.BatchSummary{Tag: tag}
			summaries[tag] = s
			products[tag] = make(map[string]*model.ProductSales)
		}

		if s.FirstOrderAt.IsZero() || o.PlacedAt.Before(s.FirstOrderAt) {
			s.FirstOrderAt = o.PlacedAt
		}
		if o.PlacedAt.After(s.LastOrderAt) {
			s.LastOrderAt = o.PlacedAt
		}

		if !o.Status.Counted() {
			continue
		}

		s.TotalRevenue += o.Total
		s.OrderCount++
		accumulate(products[tag], o.Lines)
	}

	result := make([]model.BatchSummary, 0, len(summaries))
	for tag, s := range summaries {
		s.Products = sortedSales(products[tag])
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].LastOrderAt.Equal(result[j].LastOrderAt) {
			return result[i].LastOrderAt.After(result[j].LastOrderAt)
		}
		return result[i].Tag < result[j].Tag
	})
	return result
}

// CategorySummaries flattens counted orders' lines and groups per-product
// sales by catalog category. Categories come in ascending name order.
func CategorySummaries(all []model.Order) []model.CategorySummary {
	perCategory := make(map[model.ProductCategory]map[string]*model.ProductSales)

	for _, o := range all {
		if !o.Status.Counted() {
			continue
		}
		for _, l := range o.Lines {
			cat := l.Product.Category
			if perCategory[cat] == nil {
				perCategory[cat] = make(map[string]*model.ProductSales)
			}
			accumulate(perCategory[cat], []model.OrderLine{l})
		}
	}

	categories := make([]model.ProductCategory, 0, len(perCategory))
	for cat := range perCategory {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	result := make([]model.CategorySummary, 0, len(categories))
	for _, cat := range categories {
		result = append(result, model.CategorySummary{
			Category: cat,
			Products: sortedSales(perCategory[cat]),
		})
	}
	return result
}

func accumulate(sales map[string]*model.ProductSales, lines []model.OrderLine) {
	for _, l := range lines {
		p, ok := sales[l.Product.ID]
		if !ok {
			p = &model.ProductSales{
				ProductID: l.Product.ID,
				Name:      l.Product.Name,
				Code:      l.Product.Code,
				Category:  l.Product.Category,
			}
			sales[l.Product.ID] = p
		}
		p.Quantity += l.Quantity
		p.Revenue += l.Subtotal()
	}
}

// sortedSales orders aggregates by quantity descending. Equal quantities fall
// back to ascending product ID so repeated runs over the same input produce
// identical output.
func sortedSales(sales map[string]*model.ProductSales) []model.ProductSales {
	result := make([]model.ProductSales, 0, len(sales))
	for _, p := range sales {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Quantity != result[j].Quantity {
			return result[i].Quantity > result[j].Quantity
		}
		return result[i].ProductID < result[j].ProductID
	})
	return result
}
