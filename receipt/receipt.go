// Package receipt renders the customer receipt of a recorded sale, as HTML
// for the screen and as PDF for the 80mm thermal printer.
package receipt

import (
	"fmt"
	"html/template"
	"time"

	"mostrador-pos/cart"
	"mostrador-pos/models"
	"mostrador-pos/utils"
)

// StoreInfo is printed on the receipt header.
type StoreInfo struct {
	Name    string
	Address string
	TaxID   string // RUC
	Footer  string
}

// Line is a receipt row with amounts already formatted.
type Line struct {
	Description string
	Qty         int
	UnitPrice   string
	Discount    string
	Total       string
}

// Payment is a formatted tender.
type Payment struct {
	Method      string
	Destination string
	Amount      string
}

// Receipt is the printable view of a sale.
type Receipt struct {
	Store        StoreInfo
	LogoDataURI  template.URL
	Number       string
	SoldAt       string
	Cashier      string
	CustomerName string
	Lines        []Line
	Subtotal     string
	Discount     string
	HasDiscount  bool
	Tax          string
	Total        string
	Payments     []Payment
	AmountPaid   string
	ChangeDue    string
	HasChange    bool
	Notes        string
}

var methodLabels = map[string]string{
	"cash":     "Efectivo",
	"card":     "Tarjeta",
	"transfer": "Transferencia",
	"qr":       "QR",
}

// Build formats sale for printing. Times are shown in loc.
func Build(store StoreInfo, sale *models.SaleDetail, loc *time.Location) Receipt {
	if loc == nil {
		loc = time.Local
	}
	cur := cart.CurrencyFromCode(sale.Currency)
	money := func(v int64) string { return utils.FormatMoney(v, cur) }

	r := Receipt{
		Store:        store,
		Number:       fmt.Sprintf("%08d", sale.ID),
		SoldAt:       sale.SoldAt.In(loc).Format("02/01/2006 15:04"),
		Cashier:      sale.Cashier,
		CustomerName: sale.CustomerName,
		Subtotal:     money(sale.Subtotal),
		Discount:     money(sale.LineDiscount + sale.CartDiscount),
		HasDiscount:  sale.LineDiscount+sale.CartDiscount > 0,
		Tax:          money(sale.Tax),
		Total:        money(sale.Total),
		AmountPaid:   money(sale.AmountPaid),
		ChangeDue:    money(sale.ChangeDue),
		HasChange:    sale.ChangeDue > 0,
		Notes:        sale.Notes,
	}

	for _, l := range sale.Lines {
		desc := l.Name
		if l.Variant != "" {
			desc += " (" + l.Variant + ")"
		}
		line := Line{
			Description: desc,
			Qty:         l.Qty,
			UnitPrice:   money(l.UnitPrice),
			Total:       money(l.LineTotal),
		}
		if l.LineDiscount > 0 {
			line.Discount = money(-l.LineDiscount)
		}
		r.Lines = append(r.Lines, line)
	}

	for _, p := range sale.Payments {
		label, ok := methodLabels[p.Method]
		if !ok {
			label = p.Method
		}
		r.Payments = append(r.Payments, Payment{Method: label, Destination: p.Destination, Amount: money(p.Amount)})
	}
	return r
}
