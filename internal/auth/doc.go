// Package auth handles member credentials.
//
// Passwords are stored as bcrypt hashes and compared in constant time by
// bcrypt itself. The Service wraps a user store with registration, login,
// password reset and profile changes.
//
// # Configuration
//
//	AUTH_BCRYPT_COST=12          # bcrypt cost factor
//	AUTH_MIN_PASSWORD_LENGTH=6   # shortest accepted password
//
// # Usage
//
//	authService := auth.NewService(userRepo, cfg.Auth)
//	user, err := authService.Register(auth.RegisterRequest{
//	    Name:     "Maria",
//	    Email:    "maria@email.com",
//	    Password: "segredo123",
//	})
//	user, err = authService.Login("maria@email.com", "segredo123")
package auth
