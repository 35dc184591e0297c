package recipe

// seedRecipes is the reference dataset the tools start from.
var seedRecipes = []Recipe{
	{Name: "Carbonara", Ingredients: []string{"Pasta", "Uova", "Pecorino", "Parmigiano", "Pepe Nero", "Guanciale"}, DurationMinutes: 30},
	{Name: "Matriciana", Ingredients: []string{"Pasta", "Sugo di Pomodoro", "Pecorino", "Pepe Nero", "Guanciale"}, DurationMinutes: 45},
	{Name: "Pesto", Ingredients: []string{"Aglio", "Basilico", "Pinoli", "Olio", "Sale"}, DurationMinutes: 10},
	{Name: "Polpetta", Ingredients: []string{"Carne Macinata", "Uova", "Pane", "Pepe Nero", "Sale", "Parmigiano"}, DurationMinutes: 20},
	{Name: "Margherita", Ingredients: []string{"Sugo di Pomodoro", "Mozzarella", "Basilico", "Olioo"}, DurationMinutes: 15},
	{Name: "Lasagna", Ingredients: []string{"Pasta", "Carne Macinata", "Sugo di Pomodoro", "Besciamella", "Mozzarella", "Parmigiano"}, DurationMinutes: 90},
	{Name: "Risotto ai Funghi", Ingredients: []string{"Riso", "Funghi", "Brodo Vegetale", "Vino Bianco", "Cipolla", "Parmigiano"}, DurationMinutes: 40},
	{Name: "Tiramisu", Ingredients: []string{"Mascarpone", "Uova", "Caffè", "Savoiardi", "Zucchero", "Cacao in Polvere"}, DurationMinutes: 30},
	{Name: "Cacciatora", Ingredients: []string{"Pollo", "Pomodoro", "Cipolla", "Olive", "Vino Rosso", "Rosmarino"}, DurationMinutes: 60},
	{Name: "Frittata di Patate", Ingredients: []string{"Uova", "Patate", "Cipolla", "Parmigiano", "Sale", "Pepe"}, DurationMinutes: 30},
	{Name: "Caprese", Ingredients: []string{"Mozzarella", "Pomodoro", "Basilico", "Olio d'Oliva", "Sale"}, DurationMinutes: 10},
	{Name: "Zuppa di Legumi", Ingredients: []string{"Legumi Misti", "Brodo Vegetale", "Carota", "Cipolla", "Sedano", "Pomodoro"}, DurationMinutes: 50},
	{Name: "Pollo al Limone", Ingredients: []string{"Pollo", "Limone", "Olio d'Oliva", "Aglio", "Rosmarino", "Sale", "Pepe"}, DurationMinutes: 40},
	{Name: "Pancakes", Ingredients: []string{"Farina", "Latte", "Uova", "Zucchero", "Lievito in Polvere", "Burro"}, DurationMinutes: 20},
	{Name: "Couscous alle Verdure", Ingredients: []string{"Couscous", "Zucchine", "Peperoni", "Pomodorini", "Cipolla", "Olio d'Oliva"}, DurationMinutes: 30},
	{Name: "Spaghetti Aglio e Olio", Ingredients: []string{"Spaghetti", "Aglio", "Peperoncino", "Olio d'Oliva", "Prezzemolo"}, DurationMinutes: 20},
	{Name: "Sgombro al Forno", Ingredients: []string{"Sgombro", "Limone", "Rosmarino", "Olio d'Oliva", "Sale", "Pepe"}, DurationMinutes: 25},
	{Name: "Involtini di Melanzane", Ingredients: []string{"Melanzane", "Ricotta", "Pomodoro", "Mozzarella", "Basilico"}, DurationMinutes: 45},
	{Name: "Torta di Mele", Ingredients: []string{"Mele", "Farina", "Zucchero", "Uova", "Burro", "Lievito in Polvere"}, DurationMinutes: 60},
	{Name: "Gnocchi al Pesto", Ingredients: []string{"Gnocchi di Patate", "Pesto", "Parmigiano"}, DurationMinutes: 20},
	{Name: "Boeuf Bourguignon", Ingredients: []string{"Manzo", "Vino Rosso", "Carota", "Cipolla", "Funghi", "Bacon", "Brodo di Carne"}, DurationMinutes: 120},
	{Name: "Falafel", Ingredients: []string{"Ceci", "Aglio", "Cipolla", "Prezzemolo", "Coriandolo", "Cumino", "Farina"}, DurationMinutes: 45},
	{Name: "Moussaka", Ingredients: []string{"Melanzane", "Carne Macinata", "Pomodoro", "Cipolla", "Besciamella", "Parmigiano"}, DurationMinutes: 90},
	{Name: "Chili con Carne", Ingredients: []string{"Carne Macinata", "Fagioli", "Pomodoro", "Peperoni", "Cipolla", "Spezie"}, DurationMinutes: 60},
	{Name: "Zuppa di Cipolle", Ingredients: []string{"Cipolla", "Brodo di Carne", "Pane", "Formaggio Gruyère", "Burro"}, DurationMinutes: 50},
	{Name: "Insalata di Tonno", Ingredients: []string{"Tonno in scatola", "Pomodori", "Cetrioli", "Olive", "Cipolla", "Olio d'Oliva"}, DurationMinutes: 15},
	{Name: "Tacos", Ingredients: []string{"Tortillas", "Carne Macinata", "Lattuga", "Pomodoro", "Formaggio", "Salsa"}, DurationMinutes: 30},
	{Name: "Pasta al Pesto di Rucola", Ingredients: []string{"Pasta", "Rucola", "Noci", "Parmigiano", "Olio d'Oliva", "Aglio"}, DurationMinutes: 20},
	{Name: "Ratatouille", Ingredients: []string{"Melanzane", "Zucchine", "Peperoni", "Pomodoro", "Cipolla", "Aglio", "Olio d'Oliva"}, DurationMinutes: 60},
	{Name: "Polpette di Ricotta", Ingredients: []string{"Ricotta", "Farina", "Uova", "Parmigiano", "Prezzemolo", "Sale"}, DurationMinutes: 30},
	{Name: "Pancetta alla Griglia", Ingredients: []string{"Pancetta", "Sale", "Pepe", "Rosmarino", "Olio d'Oliva"}, DurationMinutes: 20},
	{Name: "Frittelle di Zucchine", Ingredients: []string{"Zucchine", "Farina", "Uova", "Parmigiano", "Aglio", "Prezzemolo"}, DurationMinutes: 25},
	{Name: "Crostini al Pomodoro", Ingredients: []string{"Pane", "Pomodori", "Aglio", "Basilico", "Olio d'Oliva", "Sale"}, DurationMinutes: 15},
	{Name: "Quiche Lorraine", Ingredients: []string{"Pasta Brisè", "Panna", "Uova", "Bacon", "Formaggio Gruyère", "Cipolla"}, DurationMinutes: 50},
	{Name: "Sgombro alla Griglia", Ingredients: []string{"Sgombro", "Limone", "Rosmarino", "Olio d'Oliva", "Sale", "Pepe"}, DurationMinutes: 25},
	{Name: "Torta Salata con Spinaci e Ricotta", Ingredients: []string{"Pasta Brisè", "Spinaci", "Ricotta", "Parmigiano", "Uova", "Noce Moscata"}, DurationMinutes: 45},
}

// Seed returns a fresh collection holding the reference dataset. Each recipe
// goes through Add, so the dataset obeys the same rules as user input.
func Seed() (*Collection, error) {
	c := NewCollection()
	for _, r := range seedRecipes {
		if _, err := c.Add(r.Name, r.Ingredients, r.DurationMinutes); err != nil {
			return nil, err
		}
	}
	return c, nil
}
