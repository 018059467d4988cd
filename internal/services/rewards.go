package services

// Размеры наград за действия пользователей.
// Ключи идемпотентности живут на самих записях (coin_awarded),
// комментарии намеренно награждаются каждый раз.
const (
	CoinsPerVideoWatched  = 1 // первый просмотр видео
	CoinsPerCorrectAnswer = 1 // за каждый правильный ответ теста
	CoinsPerHomeworkGrade = 5 // первая проверка домашнего задания
	CoinsPerPostLike      = 1 // лайк поста, возвращается при снятии
	CoinsPerComment       = 1 // каждый комментарий
	CoinsPerCommentLike   = 1 // автору комментария за лайк
	CoinsPerProductLike   = 1 // лайк товара, только первый раз
)
