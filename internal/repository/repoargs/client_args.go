package repoargs

type CreateClient struct {
	Name  string
	Email string
	Phone string
}

type UpdateClient struct {
	Name     string
	Email    string
	Phone    string
	IsActive bool
}
