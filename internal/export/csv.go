package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/adonay-express/orderflow/internal/domain/model"
)

const dateLayout = "02-01-2006"

// FormatCLP renders an amount of Chilean pesos with a dot as thousands
// separator, e.g. 12500 becomes "$12.500".
func FormatCLP(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}
	return fmt.Sprintf("%s$%s", sign, string(grouped))
}

// WriteBatchSummary renders one batch settlement as CSV: a header block with
// the batch facts followed by the per-product sales table.
func WriteBatchSummary(w io.Writer, s model.BatchSummary) error {
	cw := csv.NewWriter(w)

	header := [][]string{
		{"Tanda", s.Tag},
		{"Pedidos contados", strconv.Itoa(s.OrderCount)},
		{"Recaudación", FormatCLP(s.TotalRevenue)},
	}
	if !s.FirstOrderAt.IsZero() {
		header = append(header,
			[]string{"Desde", s.FirstOrderAt.Format(dateLayout)},
			[]string{"Hasta", s.LastOrderAt.Format(dateLayout)},
		)
	}
	header = append(header, nil, []string{"Producto", "Código", "Unidades", "Recaudación"})

	for _, record := range header {
		if record == nil {
			record = []string{""}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	for _, p := range s.Products {
		record := []string{p.Name, p.Code, strconv.Itoa(p.Quantity), FormatCLP(p.Revenue)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCategorySummaries renders the per-category sales report as one flat
// CSV table.
func WriteCategorySummaries(w io.Writer, summaries []model.CategorySummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Categoría", "Producto", "Código", "Unidades Vendidas", "Recaudación"}); err != nil {
		return err
	}

	for _, s := range summaries {
		for _, p := range s.Products {
			record := []string{string(s.Category), p.Name, p.Code, strconv.Itoa(p.Quantity), FormatCLP(p.Revenue)}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
