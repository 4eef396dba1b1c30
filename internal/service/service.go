package service

// Credentials — источник токена и e-mail текущего менеджера. Читается
// в момент каждого вызова; реализуется session.Session.
type Credentials interface {
	Token() string
	LoginEmail() string
}

// ListResult — результат загрузки списка. Skipped — сколько элементов
// ответа не удалось разобрать (они отброшены и залогированы).
type ListResult[T any] struct {
	Items   []T
	Skipped int
}
