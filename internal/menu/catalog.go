package menu

// Default returns the house catalog. The content mirrors the menu
// configuration document; prices are in euros.
func Default() *Catalog {
	return NewCatalog([]Category{
		{
			Key:  "churrasco",
			Name: "Churrasco",
			Kind: KindKitchen,
			Items: []Item{
				{
					ID:          101,
					Name:        "Churrasco Misto",
					Description: "Escolha suas carnes preferidas",
					Price:       12.00,
					MaxNoteLen:  120,
					Options: map[string]OptionSchema{
						"feijao": {
							Title:    "Tipo de Feijao",
							Required: true,
							Type:     OptionRadio,
							Values: []OptionValue{
								{Value: "caldo", Label: "Feijao Caldo"},
								{Value: "tropeiro", Label: "Feijao Tropeiro"},
							},
						},
						"acompanhamentos": {
							Title:    "Acompanhamentos (Escolha 1)",
							Required: true,
							Type:     OptionRadio,
							Values: []OptionValue{
								{Value: "banana", Label: "Banana"},
								{Value: "batata Frita", Label: "Batata Frita"},
								{Value: "mandioca Frita", Label: "Mandioca Frita"},
								{Value: "mandioca Cozida", Label: "Mandioca Cozida"},
							},
						},
						"carnes": {
							Title:    "Selecione as Carnes (Max. 2)",
							Required: true,
							Type:     OptionCheckbox,
							Min:      1,
							Max:      2,
							Values: []OptionValue{
								{Value: "coracao", Label: "Coracao"},
								{Value: "costelinha de Porco", Label: "Costelina de Porco"},
								{Value: "file", Label: "File"},
								{Value: "linguica", Label: "Linguica"},
								{Value: "maminha", Label: "Maminha"},
								{Value: "torresmo", Label: "Torresmo"},
								{Value: "somente Maminha", Label: "Apenas Maminha (+1 euro)", Surcharge: 1.00, Exclusive: true},
							},
							Rules: []Rule{
								{WhenSelected: "somente Maminha", Action: ActionDeselectOthers},
							},
						},
						"salada": {
							Title: "Salada",
							Type:  OptionRadio,
							Values: []OptionValue{
								{Value: "mista", Label: "Salada Mista"},
								{Value: "vinagrete", Label: "Vinagrete"},
								{Value: "sem Salada", Label: "Sem Salada"},
							},
						},
						"pontoCarne": {
							Title:    "Ponto da Carne",
							Required: true,
							Type:     OptionRadio,
							Values: []OptionValue{
								{Value: "mal passada", Label: "Mal passada"},
								{Value: "ao ponto", Label: "Ao ponto"},
								{Value: "bem passada", Label: "Bem passada"},
							},
						},
					},
				},
				{
					ID:          102,
					Name:        "Maminha",
					Description: "Corte nobre de picanha suina",
					Price:       13.00,
					Options:     sideOptions("batata"),
				},
				{
					ID:          103,
					Name:        "Linguica Toscana",
					Description: "Linguica suina tradicional",
					Price:       12.00,
					Options:     sideOptions("batata"),
				},
				{
					ID:          104,
					Name:        "Costelinha de Porco",
					Description: "Costela suina assada",
					Price:       12.00,
					Options:     sideOptions("batata"),
				},
				{
					ID:          105,
					Name:        "Peito de Frango Grelhado",
					Description: "Frango temperado na churrasqueira",
					Price:       12.00,
					Options:     sideOptions("batata"),
				},
				{ID: 106, Name: "Fogao", Description: "Prato completo de churrasco", Price: 15.90},
				{ID: 107, Name: "Fogao Kids", Description: "Versao infantil do prato Fogao", Price: 8.00},
			},
		},
		{
			Key:  "hamburgueres",
			Name: "Hamburgueres",
			Kind: KindKitchen,
			Items: []Item{
				{
					ID:          201,
					Name:        "X-Salada",
					Description: "Pao, hamburguer, queijo, alface, tomate e maionese",
					Price:       6.50,
					Options: extrasOptions(
						OptionValue{Value: "bacon", Label: "Bacon +€1,50", Surcharge: 1.50},
						OptionValue{Value: "queijo Extra", Label: "Queijo Extra +€1,00", Surcharge: 1.00},
						OptionValue{Value: "ovo", Label: "Ovo +€0,50", Surcharge: 0.50},
					),
				},
				{
					ID:          202,
					Name:        "X-Bacon",
					Description: "Pao, hamburguer, queijo, bacon, alface e tomate",
					Price:       8.00,
					Options: extrasOptions(
						OptionValue{Value: "queijo Extra", Label: "Queijo Extra +€1,00", Surcharge: 1.00},
						OptionValue{Value: "ovo", Label: "Ovo +€0,50", Surcharge: 0.50},
					),
				},
				{
					ID:          203,
					Name:        "X-Frango",
					Description: "Pao, hamburguer de frango, queijo, alface e tomate",
					Price:       8.00,
					Options: extrasOptions(
						OptionValue{Value: "bacon", Label: "Bacon +€1,50", Surcharge: 1.50},
						OptionValue{Value: "queijo Extra", Label: "Queijo Extra +€1,00", Surcharge: 1.00},
					),
				},
				{
					ID:          204,
					Name:        "X-Especial",
					Description: "Pao, hamburguer, queijo, presunto, ovo, alface e tomate",
					Price:       7.00,
					Options: extrasOptions(
						OptionValue{Value: "bacon", Label: "Bacon +€1,50", Surcharge: 1.50},
					),
				},
				{
					ID:          205,
					Name:        "X-Tudo",
					Description: "Pao, hamburguer, queijo, presunto, bacon, ovo, alface, tomate e batata palha",
					Price:       9.00,
					Options: extrasOptions(
						OptionValue{Value: "queijo Extra", Label: "Queijo Extra +€1,00", Surcharge: 1.00},
					),
				},
			},
		},
		{
			Key:  "combos",
			Name: "Combos",
			Kind: KindKitchen,
			Items: []Item{
				{
					ID:          301,
					Name:        "Combo Frango Supreme",
					Description: "Sanduiche de frango com batata frita e bebida",
					Price:       10.00,
					Options:     comboDrinkOptions(),
				},
				{
					ID:          302,
					Name:        "Combo X-Tudo",
					Description: "Sanduiche completo com batata frita e bebida",
					Price:       12.00,
					Options:     comboDrinkOptions(),
				},
			},
		},
		{
			Key:  "porcoes",
			Name: "Porcoes",
			Kind: KindKitchen,
			Items: []Item{
				{ID: 401, Name: "Porcao de Arroz", Description: "Arroz branco soltinho", Price: 3.00},
				{ID: 402, Name: "Queijo Coalho", Description: "Queijo coalho grelhado", Price: 6.00},
				{ID: 403, Name: "Torresmo", Description: "Torresmo crocante", Price: 6.00},
				{ID: 404, Name: "Porcao de Mandioca", Description: "Mandioca frita crocante", Price: 6.00},
				{ID: 405, Name: "Porcao de Batata Frita", Description: "Batata frita crocante", Price: 3.00},
				{
					ID:          406,
					Name:        "Porcao de Carnes",
					Description: "Selecione suas carnes preferidas",
					Price:       10.00,
					Options: map[string]OptionSchema{
						"carnes": {
							Title:    "Carnes",
							Required: true,
							Type:     OptionCheckbox,
							Max:      2,
							Values: []OptionValue{
								{Value: "coracao", Label: "Coracao"},
								{Value: "costela", Label: "Costela"},
								{Value: "file", Label: "File"},
								{Value: "linguica", Label: "Linguica"},
								{Value: "maminha", Label: "Maminha"},
								{Value: "torresmo", Label: "Torresmo"},
							},
						},
					},
				},
			},
		},
		{
			Key:  "aguas",
			Name: "Aguas",
			Kind: KindBar,
			Items: []Item{
				{ID: 501, Name: "Água sem gás 500ml", Description: "Garrafa 500ml", Price: 1.00},
				{ID: 502, Name: "Água com gás Castelo", Description: "Garrafa 500ml", Price: 1.50},
				{ID: 529, Name: "Água com gás Pedras 500ml", Description: "Garrafa 500ml", Price: 1.50},
			},
		},
		{
			Key:  "cafes",
			Name: "Cafes",
			Kind: KindBar,
			Items: []Item{
				{ID: 503, Name: "Cafe", Description: "Cafe expresso", Price: 1.00},
				{ID: 504, Name: "Cafe Galao", Description: "Cafe com leite em copo alto", Price: 1.50},
			},
		},
		{
			Key:  "refrigerantes",
			Name: "Refrigerantes",
			Kind: KindBar,
			Items: []Item{
				{
					ID:          505,
					Name:        "Refrigerante",
					Description: "Lata 330ml",
					Price:       2.00,
					Options: map[string]OptionSchema{
						"sabores": {
							Title:    "Sabores",
							Required: true,
							Type:     OptionRadio,
							Values: []OptionValue{
								{Value: "coca", Label: "Coca-Cola"},
								{Value: "coca Zero", Label: "Coca-Cola Zero"},
								{Value: "seteup", Label: "7Up"},
								{Value: "fanta", Label: "Fanta Laranja"},
								{Value: "guarana", Label: "Guaraná Antarctica"},
							},
						},
					},
				},
			},
		},
		{
			Key:  "cervejas",
			Name: "Cervejas",
			Kind: KindBar,
			Items: []Item{
				{ID: 506, Name: "Imperial", Description: "Cerveja Imperial", Price: 2.00},
				{ID: 507, Name: "Sagres", Description: "Cerveja Sagres", Price: 2.00},
				{ID: 508, Name: "Super Bock", Description: "Cerveja Super Bock", Price: 2.00},
				{ID: 522, Name: "Somersby", Description: "Somersby", Price: 5.00},
				{ID: 527, Name: "Caneca", Description: "Caneca de cerveja", Price: 3.50},
				{ID: 528, Name: "Pannache", Description: "Mistura de cerveja e refrigerante", Price: 4.00},
			},
		},
		{
			Key:  "vinhos",
			Name: "Vinhos",
			Kind: KindBar,
			Items: []Item{
				{
					ID:          509,
					Name:        "Vinho da Casa",
					Description: "Vinho tinto ou branco",
					Price:       10.00,
					Options: map[string]OptionSchema{
						"tipo": {
							Title:    "Tipo",
							Required: true,
							Type:     OptionRadio,
							Values: []OptionValue{
								{Value: "tinto", Label: "Tinto"},
								{Value: "branco", Label: "Branco"},
							},
						},
					},
				},
				{ID: 510, Name: "Esporao Monitis", Description: "Vinho Esporao Monitis", Price: 15.00},
				{ID: 511, Name: "Grao Vasco", Description: "Vinho Grao Vasco", Price: 12.00},
				{ID: 512, Name: "Papa Figos", Description: "Vinho Papa Figos", Price: 15.00},
				{ID: 513, Name: "Sossego", Description: "Vinho Sossego", Price: 15.00},
				{ID: 514, Name: "Taca de Vinho", Description: "Taca de vinho da casa", Price: 3.00},
				{ID: 515, Name: "Jarra de Vinho", Description: "Jarra de vinho da casa", Price: 10.00},
				{ID: 516, Name: "Meia Jarra de Vinho", Description: "Meia jarra de vinho da casa", Price: 6.00},
			},
		},
		{
			Key:  "licores",
			Name: "Licores",
			Kind: KindBar,
			Items: []Item{
				{ID: 517, Name: "Cachaca", Description: "Dose de cachaca", Price: 1.50},
				{ID: 526, Name: "Constantino", Description: "Sumo Constantino", Price: 2.00},
			},
		},
		{
			Key:  "cocktails",
			Name: "Coqueteis",
			Kind: KindBar,
			Items: []Item{
				{ID: 518, Name: "Caipirinha", Description: "Caipirinha tradicional", Price: 6.00},
				{ID: 519, Name: "Sangria", Description: "Sangria de vinho", Price: 15.00},
				{ID: 520, Name: "Sangria 0,5L", Description: "Meia jarra de sangria", Price: 8.00},
				{ID: 521, Name: "Sangria Taca", Description: "Taca de sangria", Price: 5.00},
			},
		},
		{
			Key:  "sumos",
			Name: "Sumos",
			Kind: KindBar,
			Items: []Item{
				{
					ID:          523,
					Name:        "Sumos Naturais",
					Description: "Sumo natural de fruta",
					Price:       3.00,
					Options: map[string]OptionSchema{
						"sabores": {
							Title:    "Sabores",
							Required: true,
							Type:     OptionRadio,
							Values: []OptionValue{
								{Value: "laranja", Label: "Laranja"},
								{Value: "ananas", Label: "Ananas"},
								{Value: "maracuja", Label: "Maracuja"},
							},
						},
					},
				},
				{ID: 524, Name: "Compal", Description: "Sumo Compal", Price: 2.00},
				{ID: 525, Name: "Ice Tea", Description: "Ice Tea", Price: 2.00},
			},
		},
		{
			Key:  "sobremesas",
			Name: "Sobremesas",
			Kind: KindKitchen,
			Items: []Item{
				{
					ID:          601,
					Name:        "Acai Pequeno",
					Description: "300ml com acompanhamentos",
					Price:       6.00,
					Options:     acaiOptions(),
				},
				{
					ID:          602,
					Name:        "Acai Grande",
					Description: "500ml com acompanhamentos",
					Price:       10.00,
					Options:     acaiOptions(),
				},
				{ID: 603, Name: "Pudim Caseiro", Description: "Fatia de pudim tradicional", Price: 3.00},
			},
		},
		{
			Key:  "pratosSemana",
			Name: "Pratos da Semana",
			Kind: KindKitchen,
			Items: []Item{
				{ID: 701, Name: "Vaca Atolada (Quinta-feira)", Description: "Prato tradicional com carne e mandioca", Price: 13.00},
				{ID: 702, Name: "Feijoada (Sabado e Domingo)", Description: "Feijoada completa com todos os acompanhamentos", Price: 13.00},
			},
		},
	})
}

// sideOptions is the feijao/acompanhamento/salada trio shared by the
// grilled dishes.
func sideOptions(potatoValue string) map[string]OptionSchema {
	return map[string]OptionSchema{
		"feijao": {
			Title:    "Tipo de Feijao",
			Required: true,
			Type:     OptionRadio,
			Values: []OptionValue{
				{Value: "caldo", Label: "Feijao Caldo"},
				{Value: "tropeiro", Label: "Feijao Tropeiro"},
			},
		},
		"acompanhamentos": {
			Title:    "Acompanhamentos",
			Required: true,
			Type:     OptionRadio,
			Values: []OptionValue{
				{Value: "banana", Label: "Banana"},
				{Value: potatoValue, Label: "Batata"},
				{Value: "mandioca Frita", Label: "Mandioca Frita"},
				{Value: "mandioca Cozida", Label: "Mandioca Cozida"},
			},
		},
		"salada": {
			Title:    "Salada",
			Required: true,
			Type:     OptionRadio,
			Values: []OptionValue{
				{Value: "mista", Label: "Salada Mista"},
				{Value: "vinagrete", Label: "Vinagrete"},
				{Value: "sem Salada", Label: "Sem Salada"},
			},
		},
	}
}

func extrasOptions(values ...OptionValue) map[string]OptionSchema {
	return map[string]OptionSchema{
		"extras": {
			Title:  "Adicionais",
			Type:   OptionCheckbox,
			Values: values,
		},
	}
}

func comboDrinkOptions() map[string]OptionSchema {
	return map[string]OptionSchema{
		"bebidas": {
			Title:    "Bebida",
			Required: true,
			Type:     OptionRadio,
			Values: []OptionValue{
				{Value: "refrigerante", Label: "Refrigerante"},
				{Value: "suco", Label: "Suco Natural"},
			},
		},
	}
}

func acaiOptions() map[string]OptionSchema {
	return map[string]OptionSchema{
		"acompanhamentos": {
			Title:    "Acompanhamentos",
			Required: true,
			Type:     OptionCheckbox,
			Values: []OptionValue{
				{Value: "granola", Label: "Granola"},
				{Value: "leite Condensado", Label: "Leite Condensado"},
				{Value: "banana", Label: "Banana"},
				{Value: "morango", Label: "Morango"},
			},
		},
	}
}
