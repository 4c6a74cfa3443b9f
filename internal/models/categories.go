package models

// Application categories. The keyword tables in the categorizer and the
// bank-native lookup tables all resolve to this closed set.
const (
	CategoryGroceries     = "Продукты"
	CategoryRestaurants   = "Кафе и рестораны"
	CategoryTransport     = "Транспорт"
	CategoryHome          = "Дом"
	CategoryHealth        = "Здоровье"
	CategoryClothes       = "Одежда"
	CategoryEntertainment = "Развлечения"
	CategoryCommunication = "Связь"
	CategorySubscriptions = "Подписки"
	CategoryTransfers     = "Переводы"
	CategoryCash          = "Наличные"
	CategoryTravel        = "Путешествия"
	CategoryEducation     = "Образование"
	CategoryPets          = "Питомцы"
	CategorySalary        = "Зарплата"
	CategoryCashback      = "Кэшбэк"
	CategoryOther         = "Другое"
	CategoryIncome        = "Доход"
)
