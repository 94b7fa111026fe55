// Package receipt renders order tickets for 32-column thermal printers
// and splits them between the kitchen and the bar station.
package receipt

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"comanda-be/internal/menu"
	"comanda-be/internal/order"
)

const (
	StationKitchen = "cozinha"
	StationBar     = "bar"

	banner  = "********************************\n"
	divider = "--------------------------------\n"
)

// Section is the slice of an order bound for one station.
type Section struct {
	Station string
	Items   []order.Item
}

// Formatter renders tickets. It needs the catalog to recover option
// labels and category kinds from the frozen order items.
type Formatter struct {
	catalog *menu.Catalog
}

func NewFormatter(catalog *menu.Catalog) *Formatter {
	return &Formatter{catalog: catalog}
}

// Partition splits items by the kind of their category. Items of
// unknown categories go to the bar, matching the category fallback.
// Sections with no items are omitted; kitchen always precedes bar.
func (f *Formatter) Partition(items []order.Item) []Section {
	var kitchen, bar []order.Item
	for _, it := range items {
		if f.catalog.Kind(it.Category) == menu.KindKitchen {
			kitchen = append(kitchen, it)
		} else {
			bar = append(bar, it)
		}
	}

	var sections []Section
	if len(kitchen) > 0 {
		sections = append(sections, Section{Station: StationKitchen, Items: kitchen})
	}
	if len(bar) > 0 {
		sections = append(sections, Section{Station: StationBar, Items: bar})
	}
	return sections
}

// Format renders a ticket with the house header, the given sections and
// the thank-you footer. The output is deterministic for the same input.
func (f *Formatter) Format(tableID, orderID string, sections ...Section) []byte {
	var b strings.Builder

	// leading feed so the header clears the tear bar
	b.WriteString("\n\n")
	giantText(&b, "cozinha da vivi")
	bigText(&b, "mesa: "+tableID)
	bigText(&b, "pedido: "+shortID(orderID))
	b.WriteString(divider)
	b.WriteString("\n")

	for _, s := range sections {
		if len(s.Items) == 0 {
			continue
		}
		giantText(&b, s.Station)
		for _, it := range s.Items {
			f.writeItem(&b, it)
		}
	}

	b.WriteString("\n")
	giantText(&b, "obrigado")

	return []byte(b.String())
}

func (f *Formatter) writeItem(b *strings.Builder, it order.Item) {
	bigText(b, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	bigText(b, fmt.Sprintf("valor: %.2f", it.Price*float64(it.Quantity)))

	menuItem, _, known := f.catalog.Item(it.ID)
	for _, key := range sortedKeys(it.Options) {
		for _, value := range it.Options[key] {
			label := value
			if known {
				label = menu.Label(menuItem, key, value)
			}
			bigText(b, "> "+label)
		}
	}

	if it.Notes != "" {
		b.WriteString("**OBS: " + strings.ToUpper(it.Notes) + "**\n")
	}
	b.WriteString(divider)
}

// giantText prints a banner-framed, roughly centered uppercase line.
func giantText(b *strings.Builder, text string) {
	up := strings.ToUpper(text)
	padded := padStart(up, 15+utf8.RuneCountInString(up)/2)
	b.WriteString(banner)
	b.WriteString(padEnd(padded, 30))
	b.WriteString("\n")
	b.WriteString(banner)
}

func bigText(b *strings.Builder, text string) {
	b.WriteString(padEnd(strings.ToUpper(text), 35))
	b.WriteString("\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// padStart and padEnd count runes, not bytes, so accented menu names
// line up in the same columns as plain ones.
func padStart(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

func padEnd(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func sortedKeys(sel menu.Selections) []string {
	keys := make([]string, 0, len(sel))
	for k := range sel {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
