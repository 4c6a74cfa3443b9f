package categorizer

import "kopilka/bank-import/internal/models"

// Per-bank keyword tables. The tables overlap but are not identical: each
// bank's statement phrasing was tuned separately, and the ordering within a
// table is load-bearing (first match wins).

// SberRules covers the merchant and operation phrasing seen in Sberbank
// exports.
var SberRules = []Rule{
	{Category: models.CategoryGroceries, Keywords: []string{
		"пятёрочка", "пятерочка", "перекрёсток", "перекресток", "магнит",
		"лента", "ашан", "дикси", "супермаркет", "продукты", "вкусвилл",
	}},
	{Category: models.CategoryRestaurants, Keywords: []string{
		"ресторан", "кафе", "кофейня", "столовая", "бар", "пицц", "суши",
		"макдоналдс", "вкусно и точка", "kfc", "бургер",
	}},
	{Category: models.CategoryTransport, Keywords: []string{
		"такси", "яндекс.такси", "метро", "автобус", "проезд", "транспорт",
		"азс", "заправка", "лукойл", "газпромнефть",
	}},
	{Category: models.CategoryHealth, Keywords: []string{
		"аптека", "аптечн", "клиника", "медицин", "стоматолог", "анализы",
	}},
	{Category: models.CategoryCommunication, Keywords: []string{
		"мтс", "мегафон", "билайн", "теле2", "связь", "интернет",
	}},
	{Category: models.CategoryHome, Keywords: []string{
		"жкх", "квартплата", "коммунальн", "леруа", "икеа", "hoff",
	}},
	{Category: models.CategoryClothes, Keywords: []string{
		"одежда", "обувь", "zara", "ostin", "спортмастер", "wildberries",
	}},
	{Category: models.CategoryEntertainment, Keywords: []string{
		"кино", "театр", "концерт", "музей", "развлечен",
	}},
	{Category: models.CategoryCash, Keywords: []string{
		"снятие", "банкомат", "atm", "наличные",
	}},
	{Category: models.CategoryTransfers, Keywords: []string{
		"перевод", "сбп",
	}},
	{Category: models.CategorySalary, Keywords: []string{
		"зарплата", "заработн", "аванс",
	}},
}

// TinkoffRules covers the phrasing seen in Tinkoff/T-Bank exports.
var TinkoffRules = []Rule{
	{Category: models.CategoryGroceries, Keywords: []string{
		"пятёрочка", "пятерочка", "перекрёсток", "перекресток", "магнит",
		"лента", "вкусвилл", "супермаркеты", "продукты",
	}},
	{Category: models.CategoryRestaurants, Keywords: []string{
		"рестораны", "ресторан", "кафе", "фастфуд", "бургер", "кофе",
	}},
	{Category: models.CategoryTransport, Keywords: []string{
		"такси", "транспорт", "метро", "каршеринг", "азс", "топливо",
	}},
	{Category: models.CategorySubscriptions, Keywords: []string{
		"подписка", "яндекс плюс", "netflix", "spotify", "кинопоиск",
	}},
	{Category: models.CategoryHealth, Keywords: []string{
		"аптеки", "аптека", "медицина", "клиника",
	}},
	{Category: models.CategoryCommunication, Keywords: []string{
		"связь", "мобильн", "интернет",
	}},
	{Category: models.CategoryEntertainment, Keywords: []string{
		"развлечения", "кино", "игры",
	}},
	{Category: models.CategoryCash, Keywords: []string{
		"снятие наличных", "банкомат",
	}},
	{Category: models.CategoryCashback, Keywords: []string{
		"кэшбэк", "кешбэк", "cashback",
	}},
	{Category: models.CategoryTransfers, Keywords: []string{
		"перевод", "пополнение",
	}},
}

// AlfaRules covers Alfa-Bank exports, which rarely carry a native category
// column, so the keyword table leans on merchant names.
var AlfaRules = []Rule{
	{Category: models.CategoryGroceries, Keywords: []string{
		"пятёрочка", "пятерочка", "магнит", "перекресток", "лента", "ашан",
		"дикси", "продукт",
	}},
	{Category: models.CategoryRestaurants, Keywords: []string{
		"ресторан", "кафе", "бар", "пицц", "кофе",
	}},
	{Category: models.CategoryTransport, Keywords: []string{
		"такси", "метро", "азс", "заправ",
	}},
	{Category: models.CategoryHealth, Keywords: []string{
		"аптека", "клиника",
	}},
	{Category: models.CategoryCash, Keywords: []string{
		"снятие", "банкомат", "atm",
	}},
	{Category: models.CategoryTransfers, Keywords: []string{
		"перевод", "п2п", "p2p",
	}},
	{Category: models.CategorySalary, Keywords: []string{
		"зарплата", "заработн",
	}},
}

// GazpromRules covers Gazprombank exports.
var GazpromRules = []Rule{
	{Category: models.CategoryGroceries, Keywords: []string{
		"пятёрочка", "пятерочка", "магнит", "перекресток", "лента",
		"супермаркет",
	}},
	{Category: models.CategoryTransport, Keywords: []string{
		"азс", "газпромнефть", "такси", "метро",
	}},
	{Category: models.CategoryRestaurants, Keywords: []string{
		"ресторан", "кафе",
	}},
	{Category: models.CategoryHome, Keywords: []string{
		"жкх", "коммунальн",
	}},
	{Category: models.CategoryCash, Keywords: []string{
		"снятие", "банкомат",
	}},
	{Category: models.CategoryTransfers, Keywords: []string{
		"перевод",
	}},
}

// OzonRules covers Ozon Bank exports. Ozon marketplace purchases dominate,
// so the shopping keywords come first and shadow the rest.
var OzonRules = []Rule{
	{Category: models.CategoryClothes, Keywords: []string{
		"ozon", "озон", "wildberries",
	}},
	{Category: models.CategoryGroceries, Keywords: []string{
		"пятёрочка", "пятерочка", "магнит", "продукт",
	}},
	{Category: models.CategoryRestaurants, Keywords: []string{
		"ресторан", "кафе",
	}},
	{Category: models.CategoryTransport, Keywords: []string{
		"такси", "метро",
	}},
	{Category: models.CategoryTransfers, Keywords: []string{
		"перевод", "сбп",
	}},
	{Category: models.CategoryCashback, Keywords: []string{
		"кэшбэк", "баллы",
	}},
}

// VTBRules covers VTB exports.
var VTBRules = []Rule{
	{Category: models.CategoryGroceries, Keywords: []string{
		"пятёрочка", "пятерочка", "магнит", "перекресток", "лента", "ашан",
	}},
	{Category: models.CategoryRestaurants, Keywords: []string{
		"ресторан", "кафе", "бар",
	}},
	{Category: models.CategoryTransport, Keywords: []string{
		"такси", "метро", "азс",
	}},
	{Category: models.CategoryHealth, Keywords: []string{
		"аптека",
	}},
	{Category: models.CategoryCash, Keywords: []string{
		"снятие", "банкомат", "atm",
	}},
	{Category: models.CategoryTransfers, Keywords: []string{
		"перевод", "сбп",
	}},
	{Category: models.CategorySalary, Keywords: []string{
		"зарплата",
	}},
}

// GenericRules is the neutral table used by the generic CSV parser when a
// row carries no category of its own.
var GenericRules = []Rule{
	{Category: models.CategoryGroceries, Keywords: []string{
		"продукт", "супермаркет", "магазин", "пятёрочка", "пятерочка",
		"магнит",
	}},
	{Category: models.CategoryRestaurants, Keywords: []string{
		"ресторан", "кафе", "обед",
	}},
	{Category: models.CategoryTransport, Keywords: []string{
		"такси", "метро", "проезд", "бензин",
	}},
	{Category: models.CategoryHealth, Keywords: []string{
		"аптека", "врач",
	}},
	{Category: models.CategoryTransfers, Keywords: []string{
		"перевод",
	}},
	{Category: models.CategorySalary, Keywords: []string{
		"зарплата",
	}},
}
