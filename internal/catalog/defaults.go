package catalog

import "fmt"

func intp(v int) *int { return &v }

// DefaultFile is the built-in catalog for a detached single-family home.
func DefaultFile() File {
	return File{
		DefaultSupplierLeadDays: 14,
		Trades: []TradeFile{
			{Key: "excavation", Color: "#8d6e63"},
			{Key: "beton", Color: "#9e9e9e"},
			{Key: "charpente", Color: "#d79921"},
			{Key: "toiture", Color: "#cc241d"},
			{Key: "menuiserie", Color: "#b16286"},
			{Key: "plomberie", Color: "#458588"},
			{Key: "electricite", Color: "#fabd2f"},
			{Key: "ventilation", Color: "#83a598"},
			{Key: "isolation", Color: "#fe8019"},
			{Key: "gypse", Color: "#ebdbb2"},
			{Key: "peinture", Color: "#d3869b"},
			{Key: "ebenisterie", Color: "#a0522d"},
			{Key: "revetement", Color: "#689d6a"},
			{Key: "amenagement", Color: "#98971a"},
			{Key: "autre", Color: "#7f8c8d"},
		},
		Steps: []StepFile{
			{ID: "planification", Title: "Planification", Phase: "preparation", DefaultDays: 10, SupplierLeadDays: intp(0),
				Tasks: []string{"Choisir les plans", "Définir le budget", "Choisir le terrain"}},
			{ID: "permis", Title: "Permis de construction", Phase: "preparation", DefaultDays: 20, SupplierLeadDays: intp(0),
				Tasks: []string{"Déposer la demande de permis", "Obtenir le certificat de localisation"}},
			{ID: "soumissions", Title: "Soumissions", Phase: "preparation", DefaultDays: 10, SupplierLeadDays: intp(0),
				Tasks: []string{"Demander les soumissions", "Comparer les entrepreneurs"}},
			{ID: "financement", Title: "Financement", Phase: "preparation", DefaultDays: 15, SupplierLeadDays: intp(0),
				Tasks: []string{"Obtenir le prêt hypothécaire", "Signer chez le notaire"}},
			{ID: "excavation", Title: "Excavation", Phase: "gros_oeuvre", DefaultDays: 3, Trade: "excavation",
				Tasks: []string{"Implanter la maison", "Creuser"}},
			{ID: "fondation", Title: "Fondation", Phase: "gros_oeuvre", DefaultDays: 5, Trade: "beton",
				Tasks: []string{"Couler les semelles", "Couler les murs", "Imperméabiliser"}},
			{ID: "structure", Title: "Structure et charpente", Phase: "gros_oeuvre", DefaultDays: 10, Trade: "charpente", FabricationLeadDays: 15,
				Tasks: []string{"Monter les murs", "Installer les fermes de toit"}},
			{ID: "toiture", Title: "Toiture", Phase: "gros_oeuvre", DefaultDays: 4, Trade: "toiture",
				Tasks: []string{"Poser la membrane", "Poser les bardeaux"}},
			{ID: "portes-fenetres", Title: "Portes et fenêtres", Phase: "gros_oeuvre", DefaultDays: 3, Trade: "menuiserie", FabricationLeadDays: 30,
				Tasks: []string{"Installer les fenêtres", "Installer les portes extérieures"}},
			{ID: "plomberie-brute", Title: "Plomberie brute", Phase: "mecanique", DefaultDays: 4, Trade: "plomberie"},
			{ID: "electricite-brute", Title: "Électricité brute", Phase: "mecanique", DefaultDays: 4, Trade: "electricite"},
			{ID: "ventilation", Title: "Ventilation", Phase: "mecanique", DefaultDays: 3, Trade: "ventilation"},
			{ID: "isolation", Title: "Isolation", Phase: "finition", DefaultDays: 3, Trade: "isolation"},
			{ID: "gypse", Title: "Gypse", Phase: "finition", DefaultDays: 8, Trade: "gypse",
				Tasks: []string{"Poser le gypse", "Tirer les joints", "Sabler"}},
			{ID: "peinture", Title: "Peinture", Phase: "finition", DefaultDays: 5, Trade: "peinture"},
			{ID: "armoires", Title: "Armoires", Phase: "finition", DefaultDays: 3, Trade: "ebenisterie", FabricationLeadDays: 25},
			{ID: "comptoirs", Title: "Comptoirs", Phase: "finition", DefaultDays: 1, Trade: "ebenisterie", FabricationLeadDays: 10},
			{ID: "revetements-sol", Title: "Revêtements de sol", Phase: "finition", DefaultDays: 4, Trade: "revetement"},
			{ID: "finition-plomberie", Title: "Finition plomberie", Phase: "finition", DefaultDays: 2, Trade: "plomberie"},
			{ID: "finition-electricite", Title: "Finition électricité", Phase: "finition", DefaultDays: 2, Trade: "electricite"},
			{ID: "amenagement-exterieur", Title: "Aménagement extérieur", Phase: "exterieur", DefaultDays: 5, Trade: "amenagement"},
			{ID: "inspection-finale", Title: "Inspection finale", Phase: "exterieur", DefaultDays: 1, SupplierLeadDays: intp(0)},
		},
		MinDelays: []MinDelayFile{
			{Step: "structure", AfterStep: "fondation", DelayCalendarDays: 21, Reason: "Cure du béton"},
			{Step: "gypse", AfterStep: "isolation", DelayCalendarDays: 1, Reason: "Inspection de l'isolation"},
			{Step: "peinture", AfterStep: "gypse", DelayCalendarDays: 2, Reason: "Séchage des joints"},
		},
		Measurements: []MeasurementFile{
			{Step: "armoires", AfterStep: "gypse", Notes: "Prendre les mesures après la pose du gypse"},
			{Step: "comptoirs", AfterStep: "armoires", Notes: "Gabarit des comptoirs après l'installation des armoires"},
		},
	}
}

// Default builds the built-in catalog. It panics if the built-in data is
// inconsistent, which only a code change can cause.
func Default() *Catalog {
	c, err := New(DefaultFile())
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	return c
}
