package receipt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"comanda-be/internal/menu"
	"comanda-be/internal/order"
)

func TestPartition(t *testing.T) {
	f := NewFormatter(menu.Default())

	items := []order.Item{
		{ID: 201, Name: "X-Salada", Category: "hamburgueres", Quantity: 1, Price: 6.50},
		{ID: 506, Name: "Imperial", Category: "cervejas", Quantity: 2, Price: 2.00},
		{ID: 601, Name: "Acai Pequeno", Category: "sobremesas", Quantity: 1, Price: 6.00},
	}

	t.Run("kitchen precedes bar", func(t *testing.T) {
		sections := f.Partition(items)
		assert.Len(t, sections, 2)
		assert.Equal(t, StationKitchen, sections[0].Station)
		assert.Len(t, sections[0].Items, 2)
		assert.Equal(t, StationBar, sections[1].Station)
		assert.Len(t, sections[1].Items, 1)
	})

	t.Run("empty sections are omitted", func(t *testing.T) {
		sections := f.Partition(items[1:2])
		assert.Len(t, sections, 1)
		assert.Equal(t, StationBar, sections[0].Station)
	})

	t.Run("unknown categories fall to the bar", func(t *testing.T) {
		sections := f.Partition([]order.Item{{ID: 999, Category: "mistery"}})
		assert.Len(t, sections, 1)
		assert.Equal(t, StationBar, sections[0].Station)
	})
}

func TestFormat(t *testing.T) {
	f := NewFormatter(menu.Default())

	items := []order.Item{
		{
			ID:       201,
			Name:     "X-Salada",
			Category: "hamburgueres",
			Quantity: 2,
			Price:    8.00,
			Options:  menu.Selections{"extras": {"bacon"}},
			Notes:    "sem cebola",
		},
		{ID: 506, Name: "Imperial", Category: "cervejas", Quantity: 3, Price: 2.00},
	}

	ticket := string(f.Format("12", "abcdef1234567890", f.Partition(items)...))
	lines := strings.Split(ticket, "\n")

	t.Run("header", func(t *testing.T) {
		assert.Equal(t, "", lines[0])
		assert.Equal(t, "", lines[1])
		assert.Equal(t, strings.Repeat("*", 32), lines[2])
		assert.Equal(t, "COZINHA DA VIVI", strings.TrimSpace(lines[3]))
		assert.Equal(t, strings.Repeat("*", 32), lines[4])
		assert.Equal(t, "MESA: 12", strings.TrimRight(lines[5], " "))
		assert.Equal(t, "PEDIDO: ABCDEF12", strings.TrimRight(lines[6], " "))
		assert.Equal(t, strings.Repeat("-", 32), lines[7])
	})

	t.Run("big lines pad to 35 columns", func(t *testing.T) {
		assert.Len(t, lines[5], 35)
		assert.Len(t, lines[6], 35)
	})

	t.Run("sections and items", func(t *testing.T) {
		assert.Contains(t, ticket, "COZINHA")
		assert.Contains(t, ticket, "BAR")
		assert.Contains(t, ticket, "2X X-SALADA")
		assert.Contains(t, ticket, "VALOR: 16.00")
		assert.Contains(t, ticket, "3X IMPERIAL")
		assert.Contains(t, ticket, "VALOR: 6.00")
	})

	t.Run("options print their label", func(t *testing.T) {
		assert.Contains(t, ticket, "> BACON +€1,50")
	})

	t.Run("notes are emphasized", func(t *testing.T) {
		assert.Contains(t, ticket, "**OBS: SEM CEBOLA**")
	})

	t.Run("footer", func(t *testing.T) {
		assert.Contains(t, ticket, "OBRIGADO")
		assert.True(t, strings.HasSuffix(ticket, strings.Repeat("*", 32)+"\n"))
	})

	t.Run("deterministic", func(t *testing.T) {
		again := string(f.Format("12", "abcdef1234567890", f.Partition(items)...))
		assert.Equal(t, ticket, again)
	})
}

func TestFormatAccentedNames(t *testing.T) {
	f := NewFormatter(menu.Default())

	items := []order.Item{
		{ID: 504, Name: "Água sem gás 500ml", Category: "aguas", Quantity: 1, Price: 1.50},
	}
	ticket := string(f.Format("3", "deadbeefcafe", f.Partition(items)...))

	found := false
	for _, line := range strings.Split(ticket, "\n") {
		if strings.HasPrefix(line, "1X ") {
			found = true
			assert.Equal(t, 35, utf8.RuneCountInString(line))
		}
	}
	assert.True(t, found)
}

func TestFormatShortOrderID(t *testing.T) {
	f := NewFormatter(menu.Default())
	ticket := string(f.Format("1", "abc"))
	assert.Contains(t, ticket, "PEDIDO: ABC")
}
