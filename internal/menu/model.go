// Package menu holds the static catalog (categories, items and their
// option schemas) and the option resolver that turns a customer's
// selections into a normalized option set and a price surcharge.
package menu

type OptionType string

const (
	OptionRadio    OptionType = "radio"
	OptionCheckbox OptionType = "checkbox"
)

// Category kinds decide which printer a receipt section goes to.
const (
	KindKitchen = "cozinha"
	KindBar     = "bar"
)

// ActionDeselectOthers drops every other value of the option when the
// rule's value is selected.
const ActionDeselectOthers = "desmarcarOutros"

type OptionValue struct {
	Value     string  `json:"valor"`
	Label     string  `json:"label"`
	Surcharge float64 `json:"preco,omitempty"`
	Exclusive bool    `json:"exclusivo,omitempty"`
}

type Rule struct {
	WhenSelected string `json:"valor"`
	Action       string `json:"acao"`
}

type OptionSchema struct {
	Title    string        `json:"titulo"`
	Required bool          `json:"obrigatorio"`
	Type     OptionType    `json:"tipo"`
	Min      int           `json:"minimo,omitempty"`
	Max      int           `json:"maximo,omitempty"`
	Values   []OptionValue `json:"itens"`
	Rules    []Rule        `json:"regras,omitempty"`
}

type Item struct {
	ID          int                     `json:"id"`
	Name        string                  `json:"nome"`
	Description string                  `json:"descricao,omitempty"`
	Price       float64                 `json:"preco"`
	Options     map[string]OptionSchema `json:"opcoes,omitempty"`
	MaxNoteLen  int                     `json:"-"`
}

type Category struct {
	Key   string
	Name  string
	Kind  string
	Items []Item
}

// Selections maps option key to the chosen values. Radio options carry
// exactly one value.
type Selections map[string][]string

// Catalog is the read-only menu configuration.
type Catalog struct {
	categories []Category
	index      map[int]itemRef
}

type itemRef struct {
	category int
	item     int
}

func NewCatalog(categories []Category) *Catalog {
	c := &Catalog{categories: categories, index: make(map[int]itemRef)}
	for ci := range categories {
		for ii := range categories[ci].Items {
			c.index[categories[ci].Items[ii].ID] = itemRef{category: ci, item: ii}
		}
	}
	return c
}

func (c *Catalog) Categories() []Category {
	return c.categories
}

// Item returns the menu item and its category key.
func (c *Catalog) Item(id int) (*Item, string, bool) {
	ref, ok := c.index[id]
	if !ok {
		return nil, "", false
	}
	cat := &c.categories[ref.category]
	return &cat.Items[ref.item], cat.Key, true
}

// Kind reports whether a category key belongs to the kitchen or the bar.
func (c *Catalog) Kind(categoryKey string) string {
	for i := range c.categories {
		if c.categories[i].Key == categoryKey {
			return c.categories[i].Kind
		}
	}
	return KindBar
}
