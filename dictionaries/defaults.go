package dictionaries

// NewDefaultStore создает хранилище со встроенными словарями.
// Внешние YAML-файлы (LoadDir) дополняют и переопределяют эти данные.
func NewDefaultStore() *Store {
	s := newEmptyStore()
	s.fillGivenNames()
	s.fillDiminutives()
	s.fillStopWords()
	s.fillConjunctionsAndParticles()
	s.fillTitles()
	s.fillLegalForms()
	return s
}

func (s *Store) fillGivenNames() {
	ruMale := []string{
		"Александр", "Алексей", "Анатолий", "Андрей", "Антон", "Аркадий", "Артём",
		"Борис", "Вадим", "Валентин", "Валерий", "Василий", "Виктор", "Виталий",
		"Владимир", "Владислав", "Вячеслав", "Геннадий", "Георгий", "Григорий",
		"Даниил", "Денис", "Дмитрий", "Евгений", "Егор", "Иван", "Игорь", "Илья",
		"Кирилл", "Константин", "Леонид", "Максим", "Михаил", "Никита", "Николай",
		"Олег", "Павел", "Пётр", "Роман", "Семён", "Сергей", "Станислав", "Степан",
		"Фёдор", "Юрий", "Ярослав",
	}
	ruFemale := []string{
		"Александра", "Алла", "Анастасия", "Анна", "Валентина", "Вера", "Виктория",
		"Галина", "Дарья", "Евгения", "Екатерина", "Елена", "Жанна", "Зинаида",
		"Инна", "Ирина", "Ксения", "Лариса", "Лидия", "Любовь", "Людмила",
		"Маргарита", "Марина", "Мария", "Надежда", "Наталья", "Нина", "Оксана",
		"Ольга", "Полина", "Раиса", "Светлана", "София", "Тамара", "Татьяна",
		"Юлия", "Яна",
	}
	ukMale := []string{
		"Андрій", "Богдан", "Василь", "Віктор", "Володимир", "Григорій", "Дмитро",
		"Іван", "Ігор", "Максим", "Микола", "Михайло", "Олег", "Олександр",
		"Олексій", "Павло", "Петро", "Роман", "Сергій", "Степан", "Тарас",
		"Юрій", "Ярослав",
	}
	ukFemale := []string{
		"Галина", "Ганна", "Дарина", "Ірина", "Катерина", "Людмила", "Марія",
		"Надія", "Наталія", "Оксана", "Олена", "Ольга", "Світлана", "Софія",
		"Тетяна", "Юлія",
	}
	enMale := []string{
		"Alexander", "Andrew", "Anthony", "Charles", "Christopher", "Daniel",
		"David", "Edward", "George", "Henry", "James", "John", "Joseph",
		"Michael", "Nicholas", "Patrick", "Paul", "Peter", "Richard", "Robert",
		"Thomas", "William",
	}
	enFemale := []string{
		"Alice", "Anna", "Barbara", "Catherine", "Elizabeth", "Emily", "Emma",
		"Jane", "Jennifer", "Jessica", "Linda", "Margaret", "Maria", "Mary",
		"Patricia", "Sarah", "Susan", "Victoria",
	}

	for _, n := range ruMale {
		s.addGivenName("ru", n, GenderMale)
	}
	for _, n := range ruFemale {
		s.addGivenName("ru", n, GenderFemale)
	}
	for _, n := range ukMale {
		s.addGivenName("uk", n, GenderMale)
	}
	for _, n := range ukFemale {
		s.addGivenName("uk", n, GenderFemale)
	}
	for _, n := range enMale {
		s.addGivenName("en", n, GenderMale)
	}
	for _, n := range enFemale {
		s.addGivenName("en", n, GenderFemale)
	}
}

func (s *Store) fillDiminutives() {
	ru := map[string]string{
		"Вова": "Владимир", "Вовка": "Владимир", "Володя": "Владимир",
		"Дима": "Дмитрий", "Димка": "Дмитрий",
		"Саша": "Александр", "Шура": "Александр",
		"Лёша": "Алексей", "Алёша": "Алексей", "Леша": "Алексей",
		"Женя": "Евгений",
		"Петя": "Пётр",
		"Ваня": "Иван",
		"Коля": "Николай",
		"Миша": "Михаил",
		"Серёжа": "Сергей", "Сережа": "Сергей",
		"Юра":   "Юрий",
		"Костя": "Константин",
		"Слава": "Вячеслав",
		"Толя":  "Анатолий",
		"Боря":  "Борис",
		"Гена":  "Геннадий",
		"Стёпа": "Степан",
		"Лена":  "Елена",
		"Наташа": "Наталья",
		"Катя":  "Екатерина",
		"Маша":  "Мария",
		"Оля":   "Ольга",
		"Таня":  "Татьяна",
		"Света": "Светлана",
		"Ира":   "Ирина",
		"Аня":   "Анна",
		"Настя": "Анастасия",
		"Люда":  "Людмила",
		"Даша":  "Дарья",
		"Юля":   "Юлия",
		// Канонические формы, совпадающие со своей краткой формой
		"Вера": "Вера",
		"Нина": "Нина",
	}
	uk := map[string]string{
		"Сашко":   "Олександр",
		"Петрусь": "Петро",
		"Іванко":  "Іван",
		"Миколка": "Микола",
		"Володя":  "Володимир",
		"Михась":  "Михайло",
		"Оленка":  "Олена",
		"Наталка": "Наталія",
		"Катруся": "Катерина",
		"Ганнуся": "Ганна",
	}
	en := map[string]string{
		"Bill": "William", "Billy": "William", "Will": "William", "Willie": "William",
		"Bob": "Robert", "Bobby": "Robert", "Rob": "Robert",
		"Mike": "Michael", "Mikey": "Michael",
		"Jim": "James", "Jimmy": "James",
		"Jack": "John", "Johnny": "John",
		"Dave": "David",
		"Dan":  "Daniel", "Danny": "Daniel",
		"Chris": "Christopher",
		"Nick":  "Nicholas",
		"Tom":   "Thomas", "Tommy": "Thomas",
		"Dick": "Richard", "Rick": "Richard",
		"Ed": "Edward", "Eddie": "Edward", "Ted": "Edward",
		"Tony": "Anthony",
		"Pete": "Peter",
		"Alex": "Alexander", "Sasha": "Alexander",
		"Liz": "Elizabeth", "Beth": "Elizabeth", "Betty": "Elizabeth",
		"Peggy": "Margaret", "Maggie": "Margaret",
		"Kate": "Catherine", "Cathy": "Catherine", "Katie": "Catherine",
		"Sue": "Susan", "Susie": "Susan",
		"Jen": "Jennifer", "Jenny": "Jennifer",
		"Patty": "Patricia",
		// Самостоятельные канонические формы
		"Anna": "Anna",
		"Emma": "Emma",
	}

	for nick, canonical := range ru {
		s.addDiminutive("ru", nick, canonical)
	}
	for nick, canonical := range uk {
		s.addDiminutive("uk", nick, canonical)
	}
	for nick, canonical := range en {
		s.addDiminutive("en", nick, canonical)
	}
}

func (s *Store) fillStopWords() {
	s.addStopWords("ru",
		"и", "в", "на", "с", "по", "из", "к", "от", "о", "об", "у", "за",
		"для", "при", "не", "же", "то", "а", "но", "или",
	)
	s.addStopWords("uk",
		"і", "та", "й", "у", "в", "на", "з", "із", "до", "від", "о", "об",
		"про", "за", "для", "при", "не", "ж", "а", "але", "або",
	)
	s.addStopWords("en",
		"and", "or", "the", "a", "an", "of", "in", "on", "at", "to",
		"for", "with", "by", "from",
	)

	// Однобуквенные предлоги и союзы: без точки такие токены считаются
	// служебными словами, с точкой — кандидатами в инициалы.
	s.addLetterWords("ru", "а", "и", "в", "к", "о", "с", "у", "я")
	s.addLetterWords("uk", "а", "і", "й", "о", "у", "в", "з", "є")
	s.addLetterWords("en", "a", "i")
}

func (s *Store) fillConjunctionsAndParticles() {
	s.addConjunctions("ru", "и")
	s.addConjunctions("uk", "та", "і", "й")
	s.addConjunctions("en", "and")

	s.addParticles("ru", "де", "ван", "фон", "дер", "дю", "аль", "бен")
	s.addParticles("uk", "де", "ван", "фон", "дер", "дю", "аль", "бен")
	s.addParticles("en", "de", "van", "von", "der", "da", "du", "la", "le", "al", "bin", "el")
}

func (s *Store) fillTitles() {
	s.addTitle("ru", "господин", GenderMale)
	s.addTitle("ru", "госпожа", GenderFemale)
	s.addTitle("ru", "гражданин", GenderMale)
	s.addTitle("ru", "гражданка", GenderFemale)
	s.addTitle("uk", "пан", GenderMale)
	s.addTitle("uk", "пані", GenderFemale)
	s.addTitle("uk", "добродій", GenderMale)
	s.addTitle("uk", "добродійка", GenderFemale)
	s.addTitle("en", "mr", GenderMale)
	s.addTitle("en", "mister", GenderMale)
	s.addTitle("en", "sir", GenderMale)
	s.addTitle("en", "mrs", GenderFemale)
	s.addTitle("en", "ms", GenderFemale)
	s.addTitle("en", "miss", GenderFemale)
	s.addTitle("en", "madam", GenderFemale)
}

func (s *Store) fillLegalForms() {
	forms := map[string]string{
		// Российские ОПФ
		"ООО": "ООО", "ЗАО": "ЗАО", "ОАО": "ОАО", "ПАО": "ПАО", "АО": "АО",
		"НАО": "НАО", "АОЗТ": "АОЗТ", "ИП": "ИП", "ГУП": "ГУП", "МУП": "МУП",
		"ФГУП": "ФГУП", "ПК": "ПК", "СПК": "СПК", "НКО": "НКО", "ЧП": "ЧП",
		// Украинские ОПФ
		"ТОВ": "ТОВ", "ПП": "ПП", "ФОП": "ФОП", "ПРАТ": "ПрАТ", "ПАТ": "ПАТ",
		"КП": "КП", "ДП": "ДП", "ТДВ": "ТДВ",
		// Казахстан и прочие СНГ
		"ТОО": "ТОО",
		// Международные
		"LLC": "LLC", "LTD": "LTD", "INC": "INC", "CORP": "CORP", "CO": "CO",
		"PLC": "PLC", "LLP": "LLP", "JSC": "JSC", "GMBH": "GMBH", "AG": "AG",
		"SA": "SA", "OY": "OY", "AB": "AB", "BV": "BV", "NV": "NV", "SARL": "SARL",
	}
	for alias, canonical := range forms {
		s.addLegalForm(alias, canonical)
	}
}
