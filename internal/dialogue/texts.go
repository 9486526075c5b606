package dialogue

const (
	ButtonSkip = "Пропустить"
	ButtonBack = "Назад в меню"
)

var (
	navigationWords = []string{"назад", "меню", "главная", "выход"}
	skipWords       = []string{"пропустить", "следующий", "дальше", "skip", "next"}
	helpPhrases     = []string{"помощь", "help", "что делать", "правила"}
)

const (
	textGreeting  = "Привет! Выберите тему для тестирования:"
	textMenu      = "Вы вернулись в главное меню. Выберите тему:"
	textChoose    = "Пожалуйста, выберите тему из предложенных ниже."
	textExhausted = "Вопросы в этой теме закончились."
	textApology   = "Произошла ошибка. Пожалуйста, попробуйте еще раз."
	textEmptyBody = "Пустой запрос"

	textHelpMenu      = "Я помогу вам подготовиться к экзамену. Выберите тему для тестирования или скажите 'назад' в любой момент. Во время тестирования можно пропускать вопросы командой 'пропустить'."
	textHelpQuestion  = "Вы в режиме вопроса по теме '%s'. Произнесите номер ответа (1-6) или букву (А-Е). Можно несколько ответов через пробел. Скажите 'пропустить' для перехода к следующему вопросу. Или скажите 'назад' для возврата в меню."
	textNotUnderstood = "Не понял ответ '%s'. Используйте цифры 1-6 или буквы А-Е. Пример: '1', 'а', '1 2', 'а б'. Скажите 'пропустить' для перехода к следующему вопросу. Или скажите 'назад' для возврата в меню."
	textEmptyTopic    = "В теме '%s' нет вопросов."

	textTopicTitle  = "Тема: %s"
	textTopicHeader = "Тема: \"%s\""
	textSeeCard     = "Смотрите вопрос на картинке. %s"
	textSkipped     = "Вопрос пропущен."
	textSkippedCard = "Вопрос пропущен. Смотрите картинку с вопросом выше."
	textNextHeader  = "Следующий вопрос:"
	textNextCard    = "Следующий вопрос: смотрите на картинке выше."

	textCorrect     = "Верно!"
	textMissingSome = "Частично верно! Вы выбрали правильные ответы, но не хватает: %s"
	textMixed       = "Частично верно! Правильные: %s, неправильные: %s"
	textIncorrect   = "Неверно.\nПравильный ответ: %s"
)
