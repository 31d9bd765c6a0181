package entry

type Category struct {
	Key   string
	Label string
	Type  EntryType
}

// Catalog is the closed set of categories allowed for each entry type.
// Category keys are unique across all types.
type Catalog struct {
	byType map[EntryType][]Category
	byKey  map[string]Category
}

func NewCatalog(categories []Category) *Catalog {
	c := &Catalog{
		byType: make(map[EntryType][]Category),
		byKey:  make(map[string]Category),
	}
	for _, category := range categories {
		if _, exists := c.byKey[category.Key]; exists {
			continue
		}
		c.byType[category.Type] = append(c.byType[category.Type], category)
		c.byKey[category.Key] = category
	}
	return c
}

func DefaultCatalog() *Catalog {
	return NewCatalog([]Category{
		{"salaire", "Salaire", Revenus},
		{"freelance", "Freelance", Revenus},
		{"primes", "Primes", Revenus},
		{"dividendes", "Dividendes", Revenus},
		{"autres_revenus", "Autres revenus", Revenus},

		{"loyer", "Loyer", DepensesFixes},
		{"electricite", "Électricité", DepensesFixes},
		{"internet", "Internet", DepensesFixes},
		{"telephone", "Téléphone", DepensesFixes},
		{"assurance", "Assurance", DepensesFixes},
		{"abonnements", "Abonnements", DepensesFixes},
		{"transport", "Transport", DepensesFixes},
		{"credit", "Crédit", DepensesFixes},

		{"courses", "Courses", DepensesVariables},
		{"restaurants", "Restaurants", DepensesVariables},
		{"loisirs", "Loisirs", DepensesVariables},
		{"shopping", "Shopping", DepensesVariables},
		{"sante", "Santé", DepensesVariables},
		{"voyages", "Voyages", DepensesVariables},
		{"cadeaux", "Cadeaux", DepensesVariables},
		{"divers", "Divers", DepensesVariables},

		{"livret_a", "Livret A", Epargne},
		{"ldds", "LDDS", Epargne},
		{"pel", "PEL", Epargne},
		{"precaution", "Épargne de précaution", Epargne},

		{"pea", "PEA", Investissements},
		{"assurance_vie", "Assurance vie", Investissements},
		{"crypto", "Crypto", Investissements},
		{"immobilier", "Immobilier", Investissements},
		{"compte_titres", "Compte-titres", Investissements},
	})
}

// Categories returns the categories of a type in declaration order.
func (c *Catalog) Categories(t EntryType) []Category {
	return append([]Category(nil), c.byType[t]...)
}

func (c *Catalog) Contains(t EntryType, key string) bool {
	category, ok := c.byKey[key]
	return ok && category.Type == t
}

// Label returns the human label of a category key, or the key itself when unknown.
func (c *Catalog) Label(key string) string {
	if category, ok := c.byKey[key]; ok {
		return category.Label
	}
	return key
}

func (c *Catalog) TypeOf(key string) (EntryType, bool) {
	category, ok := c.byKey[key]
	return category.Type, ok
}
