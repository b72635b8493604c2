package release_expired_holds

// Request модель запроса на освобождение истекших удержаний
type Request struct {
	Limit int // Максимум удержаний за один проход
}

// Response итог одного прохода
type Response struct {
	Released int // Резерв переведен в abandoned
	Skipped  int // Резерв уже подтвержден или удален, удержание просто убрано
	Failed   int // Ошибка, удержание оставлено до следующего прохода
}
