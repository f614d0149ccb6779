package repoargs

type CreateUser struct {
	Name         string
	Email        string
	PasswordHash string
	RoleID       int64
}
