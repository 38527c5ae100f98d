package identity

// User es la cuenta tal como la ve el servicio de identidad.
// Metadata guarda lo que se adjuntó al registrarse (name, role).
type User struct {
	ID        string
	Email     string
	Confirmed bool
	Metadata  map[string]string
}

// Session es una sesión emitida por el servicio de identidad.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         User
}

// SignUpInput es el alta de cuenta.
// RedirectTo es la URL donde aterriza el link de confirmación por email.
type SignUpInput struct {
	Email      string
	Password   string
	Metadata   map[string]string
	RedirectTo string
}
