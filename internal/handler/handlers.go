package handler

// Handlers groups every HTTP handler the servers register.
type Handlers struct {
	Health *HealthHandler
	Moods  *MoodHandler
	Chat   *ChatHandler
}
