package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - *gorm.DB запроса (пул или транзакция)
	DBContextKey = contextKey("db")
	// CallerContextKey - auth.Caller, выставляется AuthMiddleware
	CallerContextKey = contextKey("caller")
)
