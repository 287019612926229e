package auth

// Config holds the authentication settings loaded from the environment.
type Config struct {
	// SuperadminEmail is the only email that authenticates in the global
	// realm. The account has no persisted record.
	SuperadminEmail string `env:"SUPERADMIN_EMAIL" envDefault:"superadmin@novatech.com"`

	// SuperadminPassword is hashed at resolution time on every superadmin
	// login attempt.
	SuperadminPassword string `env:"SUPERADMIN_PASSWORD,required"`

	// BcryptCost controls the work factor of the default hasher.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}
