package postgres

import (
	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedGames is the starter catalog loaded into an empty database.
// A zero price falls back to catalog.DefaultPrice.
var seedGames = []catalog.Game{
	{
		Title:         "The Witcher 3: Wild Hunt",
		Description:   "Open-world fantasy RPG following the monster hunter Geralt of Rivia.",
		Price:         price("39.99"),
		Genre:         "RPG",
		Platform:      "PC",
		Developer:     "CD Projekt Red",
		ReleaseDate:   "2015-05-19",
		PlaytimeHours: 100,
		Rating:        price("4.90"),
	},
	{
		Title:         "Elden Ring",
		Description:   "Action RPG set in the Lands Between.",
		Genre:         "RPG",
		Platform:      "PC",
		Developer:     "FromSoftware",
		ReleaseDate:   "2022-02-25",
		PlaytimeHours: 90,
		Rating:        price("4.80"),
	},
	{
		Title:         "Hades",
		Description:   "Roguelike dungeon crawler through the Greek underworld.",
		Price:         price("24.99"),
		Genre:         "Roguelike",
		Platform:      "PC",
		Developer:     "Supergiant Games",
		ReleaseDate:   "2020-09-17",
		PlaytimeHours: 40,
		Rating:        price("4.70"),
	},
	{
		Title:         "Stardew Valley",
		Description:   "Farming and life simulation in Pelican Town.",
		Price:         price("14.99"),
		Genre:         "Simulation",
		Platform:      "PC",
		Developer:     "ConcernedApe",
		ReleaseDate:   "2016-02-26",
		PlaytimeHours: 60,
		Rating:        price("4.60"),
	},
	{
		Title:         "Cyberpunk 2077",
		Description:   "Open-world action RPG in Night City.",
		Price:         price("49.99"),
		Genre:         "RPG",
		Platform:      "PC",
		Developer:     "CD Projekt Red",
		ReleaseDate:   "2020-12-10",
		PlaytimeHours: 60,
		Rating:        price("4.10"),
	},
	{
		Title:         "Celeste",
		Description:   "Precision platformer about climbing a mountain.",
		Price:         price("19.99"),
		Genre:         "Platformer",
		Platform:      "PC",
		Developer:     "Maddy Makes Games",
		ReleaseDate:   "2018-01-25",
		PlaytimeHours: 12,
		Rating:        price("4.50"),
	},
	{
		Title:         "Hollow Knight",
		Description:   "Hand-drawn metroidvania in the ruined kingdom of Hallownest.",
		Price:         price("14.99"),
		Genre:         "Platformer",
		Platform:      "PC",
		Developer:     "Team Cherry",
		ReleaseDate:   "2017-02-24",
		PlaytimeHours: 35,
		Rating:        price("4.70"),
	},
	{
		Title:         "Forza Horizon 5",
		Description:   "Open-world racing across Mexico.",
		Genre:         "Racing",
		Platform:      "Xbox",
		Developer:     "Playground Games",
		ReleaseDate:   "2021-11-09",
		PlaytimeHours: 30,
		Rating:        price("4.40"),
	},
	{
		Title:         "God of War",
		Description:   "Kratos and Atreus journey through the Norse realms.",
		Price:         price("49.99"),
		Genre:         "Action",
		Platform:      "PlayStation",
		Developer:     "Santa Monica Studio",
		ReleaseDate:   "2018-04-20",
		PlaytimeHours: 25,
		Rating:        price("4.80"),
	},
	{
		Title:         "Civilization VI",
		Description:   "Turn-based strategy: build an empire to stand the test of time.",
		Price:         price("29.99"),
		Genre:         "Strategy",
		Platform:      "PC",
		Developer:     "Firaxis Games",
		ReleaseDate:   "2016-10-21",
		PlaytimeHours: 80,
		Rating:        price("4.20"),
	},
	{
		Title:         "Among Us",
		Description:   "Social deduction party game aboard a spaceship.",
		Price:         price("4.99"),
		Genre:         "Party",
		Platform:      "Mobile",
		Developer:     "Innersloth",
		ReleaseDate:   "2018-06-15",
		PlaytimeHours: 10,
		Rating:        price("3.90"),
	},
	{
		Title:         "Red Dead Redemption 2",
		Description:   "Outlaw epic set at the end of the American frontier.",
		Price:         price("59.99"),
		Genre:         "Action",
		Platform:      "PlayStation",
		Developer:     "Rockstar Games",
		ReleaseDate:   "2018-10-26",
		PlaytimeHours: 50,
		Rating:        price("4.90"),
	},
}
